/*

SPDX-Copyright: Copyright (c) Brad Rydzewski, project contributors, Capital One Services, LLC
SPDX-License-Identifier: Apache-2.0
Copyright 2017 Brad Rydzewski, project contributors, Capital One Services, LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and limitations under the License.

*/
package middleware

import (
	"github.com/capitalone/repohost/cache"
	"github.com/capitalone/repohost/store"

	"github.com/gin-gonic/gin"
)

// Store is a middleware function that initializes the Datastore and attaches
// to the context of every http.Request.
func Store(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.ToContext(c, s)
		c.Next()
	}
}

// Cache is a middleware function that attaches a short lived cache shared
// by every http.Request.
func Cache(cc cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		cache.ToContext(c, cc)
		c.Next()
	}
}

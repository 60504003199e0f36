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
package api

import (
	"github.com/capitalone/repohost/router/middleware/session"
	"github.com/capitalone/repohost/version"

	"github.com/gin-gonic/gin"
)

// GetUser gets the currently authenticated user.
func GetUser(c *gin.Context) {
	IndentedJSON(c, 200, session.User(c))
}

// Version returns a response body
// with the version number of the service.
func Version(c *gin.Context) {
	c.String(200, version.Version)
}

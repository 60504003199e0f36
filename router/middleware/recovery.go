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
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Recovery turns panics into 500 responses. With sunlight enabled the stack
// trace is included in the response body.
func Recovery(sunlight bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				log.Errorf("Panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, r, stack)
				body := http.StatusText(http.StatusInternalServerError)
				if sunlight {
					body = fmt.Sprintf("%v\n%s", r, stack)
				}
				c.String(http.StatusInternalServerError, body)
				c.Abort()
			}
		}()
		c.Next()
	}
}

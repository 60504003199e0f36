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
package session

import (
	"net/http"

	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/shared/token"
	"github.com/capitalone/repohost/store"
	"github.com/capitalone/repohost/usage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func User(c *gin.Context) *model.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	u, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return u
}

// Viewer returns the authenticated user, or the anonymous viewer when the
// request carries no valid token.
func Viewer(c *gin.Context) *model.User {
	if user := User(c); user != nil {
		return user
	}
	return model.Anonymous()
}

// Source describes the request for audit records.
func Source(c *gin.Context) model.ContentSource {
	return model.ContentSource{
		Source:    model.SourceWeb,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func UserMust(c *gin.Context) {
	user := User(c)
	switch {
	case user == nil:
		c.String(http.StatusUnauthorized,
			"You must be logged in and authorized to use this endpoint")
		c.Abort()
	default:
		c.Next()
	}
}

func SetUser(c *gin.Context) {
	var user *model.User

	// authenticates the user via an authentication cookie
	// or an auth token.
	t, err := token.ParseRequest(c.Request, func(t *token.Token) (string, error) {
		var err error
		user, err = store.GetUserLogin(c, t.Text)
		if err != nil {
			return "", err
		}
		return user.Secret, nil
	})

	if err == nil {
		c.Set("user", user)
		usage.RecordApiRequest(user.Login)

		// if this is a session token (ie not the API token)
		// this means the user is accessing with a web browser,
		// so we should implement CSRF protection measures.
		if t.Kind == token.SessToken {
			err = token.CheckCsrf(c.Request, func(t *token.Token) (string, error) {
				return user.Secret, nil
			})
			// if csrf token validation fails, exit immediately
			// with a not authorized error.
			if err != nil {
				log.Debugf("Rejecting %s %s for %s, bad csrf token", c.Request.Method, c.Request.URL.Path, user.Login)
				c.String(http.StatusUnauthorized,
					"You must be logged in and authorized to use this endpoint")
				c.Abort()
				return
			}
		}
	}
	c.Next()
}

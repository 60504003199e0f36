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
	"net/http"

	"github.com/capitalone/repohost/envvars"
	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/router/middleware/session"
	"github.com/capitalone/repohost/store"
	"github.com/capitalone/repohost/usage"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const notAdmin = "user is not an administrator"

func unauthorizedError() error {
	status := http.StatusUnauthorized
	return exterror.Create(status, errors.New(notAdmin))
}

// CheckAdmin lets through users flagged as admins or listed in ADMIN_USERS.
func CheckAdmin(c *gin.Context) {
	user := session.User(c)
	if user == nil || !(user.Admin || envvars.AdminUsers().Contains(user.Login)) {
		c.Error(unauthorizedError())
		c.Abort()
		return
	}
	c.Next()
}

type adminStats struct {
	Usage  usage.Usage `json:"usage"`
	Repos  int         `json:"repos"`
	Builds int         `json:"builds"`
}

// AdminStats reports usage since the last hourly summary and object counts.
func AdminStats(c *gin.Context) {
	s := store.FromContext(c)
	repos, err := s.GetAllRepos()
	if err != nil {
		c.Error(exterror.Append(err, "Counting repositories"))
		return
	}
	builds, err := s.CountBuilds()
	if err != nil {
		c.Error(exterror.Append(err, "Counting builds"))
		return
	}
	IndentedJSON(c, http.StatusOK, &adminStats{
		Usage:  usage.GetStats(),
		Repos:  len(repos),
		Builds: builds,
	})
}

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
package router

import (
	"net/http"
	"net/http/pprof"
	rpprof "runtime/pprof"
	"time"

	"github.com/capitalone/repohost/api"
	"github.com/capitalone/repohost/cache"
	"github.com/capitalone/repohost/envvars"
	"github.com/capitalone/repohost/router/middleware"
	"github.com/capitalone/repohost/router/middleware/header"
	"github.com/capitalone/repohost/router/middleware/session"
	"github.com/capitalone/repohost/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Load creates a new HTTP handler
func Load(s store.Store) http.Handler {
	e := gin.New()
	sunlight := envvars.Env.Monitor.Sunlight
	e.Use(middleware.Recovery(sunlight))

	e.Use(header.NoCache)
	e.Use(header.Options)
	e.Use(header.Secure)
	e.Use(middleware.Ginrus(logrus.StandardLogger(), time.RFC3339, true))
	e.Use(middleware.Store(s))
	e.Use(middleware.Cache(cache.Default()))
	e.Use(middleware.ExtError())
	if sunlight {
		e.Use(middleware.Version)
	}
	e.Use(session.SetUser)

	adminGroup := e.Group("/admin", session.UserMust, api.CheckAdmin)
	adminGroup.GET("stats", api.AdminStats)

	e.GET("/api/user", session.UserMust, api.GetUser)

	e.GET("/api/repos/:id", api.GetRepo)
	e.GET("/api/repos/:id/edit", session.UserMust, api.GetRepoEdit)
	e.GET("/api/repos/:id/edit/hosting", session.UserMust, api.EditHosting(false))
	e.POST("/api/repos/:id/edit/hosting", session.UserMust, api.EditHosting(false))
	e.GET("/api/repos/:id/edit/serve", session.UserMust, api.EditHosting(true))
	e.POST("/api/repos/:id/edit/serve", session.UserMust, api.EditHosting(true))
	e.GET("/api/repos/:id/transactions", api.GetRepoTransactions)

	e.GET("/api/builds", api.GetBuilds)

	e.GET("/version", api.Version)
	if sunlight {
		e.GET("/debug/pprof/", gin.WrapF(pprof.Index))
		e.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
		e.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
		e.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
		e.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
		for _, p := range rpprof.Profiles() {
			e.GET("/debug/pprof/"+p.Name(), gin.WrapH(pprof.Handler(p.Name())))
		}
	}

	return e
}

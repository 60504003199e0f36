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
	"strconv"

	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/logstats"
	"github.com/capitalone/repohost/query"
	"github.com/capitalone/repohost/router/middleware/session"
	"github.com/capitalone/repohost/usage"

	"github.com/gin-gonic/gin"
	"github.com/mspiegel/go-multierror"
	"github.com/pkg/errors"
)

// GetBuilds lists one page of builds visible to the viewer.
func GetBuilds(c *gin.Context) {
	var errs error
	q := &query.BuildQuery{
		Viewer:         session.Viewer(c),
		PHIDs:          c.QueryArray("phid"),
		BuildablePHIDs: c.QueryArray("buildable"),
		BuildPlanPHIDs: c.QueryArray("plan"),
	}
	for _, raw := range c.QueryArray("id") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = multierror.Append(errs, errors.Errorf("Invalid build id %q", raw))
			continue
		}
		q.IDs = append(q.IDs, id)
	}
	if raw := c.Query("plans"); raw != "" {
		plans, err := strconv.ParseBool(raw)
		if err != nil {
			errs = multierror.Append(errs, errors.Errorf("Invalid plans flag %q", raw))
		}
		q.NeedBuildPlans = plans
	}
	pager := query.Pager{After: c.Query("after"), Before: c.Query("before")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			errs = multierror.Append(errs, errors.Errorf("Invalid limit %q", raw))
		}
		pager.Limit = limit
	}
	if errs != nil {
		c.Error(exterror.Invalid(errs))
		return
	}

	page, err := q.Execute(c, pager)
	if err != nil {
		c.Error(exterror.Append(err, "Listing builds"))
		return
	}
	usage.RecordQuery("builds")
	logstats.RecordBuildPage()
	IndentedJSON(c, http.StatusOK, page)
}

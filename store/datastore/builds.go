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
package datastore

import (
	"fmt"
	"time"

	"github.com/capitalone/repohost/model"

	"github.com/russross/meddler"
)

func (db *datastore) GetBuildPage(filter model.BuildFilter, page model.PageRange) ([]*model.Build, error) {
	var builds = []*model.Build{}
	w := db.where()
	w.in("build_id", intArgs(filter.IDs))
	w.in("build_phid", strArgs(filter.PHIDs))
	w.in("build_buildable_phid", strArgs(filter.BuildablePHIDs))
	w.in("build_plan_phid", strArgs(filter.BuildPlanPHIDs))

	order := "ASC"
	if page.Reverse {
		order = "DESC"
	}
	if page.AfterID > 0 {
		w.add("build_id > %s", page.AfterID)
	}
	if page.BeforeID > 0 {
		w.add("build_id < %s", page.BeforeID)
	}
	stmt := fmt.Sprintf(buildPageQuery, w, order)
	if page.Limit > 0 {
		stmt += fmt.Sprintf("LIMIT %d", page.Limit)
	}
	var err = meddler.QueryAll(db, &builds, stmt, w.args...)
	return builds, err
}

func (db *datastore) CreateBuild(build *model.Build) error {
	if build.PHID == "" {
		build.PHID = model.NewPHID(model.PHIDTypeBuild)
	}
	if build.Status == "" {
		build.Status = model.BuildPending
	}
	now := time.Now().Unix()
	build.Created, build.Modified = now, now
	return meddler.Insert(db, buildTable, build)
}

func (db *datastore) DeleteBuild(build *model.Build) error {
	w := db.where()
	w.add("build_id = %s", build.ID)
	var _, err = db.Exec("DELETE FROM builds "+w.String(), w.args...)
	return err
}

func (db *datastore) CountBuilds() (int, error) {
	var count int
	var err = db.QueryRow(buildCountQuery).Scan(&count)
	return count, err
}

func (db *datastore) GetBuildablePHIDs(phids ...string) ([]*model.Buildable, error) {
	var buildables = []*model.Buildable{}
	var err = db.byPHIDs(&buildables, buildableTable, "buildable_phid", phids)
	return buildables, err
}

func (db *datastore) CreateBuildable(buildable *model.Buildable) error {
	if buildable.PHID == "" {
		buildable.PHID = model.NewPHID(model.PHIDTypeBuildable)
	}
	buildable.Created = time.Now().Unix()
	return meddler.Insert(db, buildableTable, buildable)
}

func (db *datastore) DeleteBuildable(buildable *model.Buildable) error {
	w := db.where()
	w.add("buildable_id = %s", buildable.ID)
	var _, err = db.Exec("DELETE FROM buildables "+w.String(), w.args...)
	return err
}

func (db *datastore) GetPlanPHIDs(phids ...string) ([]*model.BuildPlan, error) {
	var plans = []*model.BuildPlan{}
	var err = db.byPHIDs(&plans, planTable, "plan_phid", phids)
	return plans, err
}

func (db *datastore) CreatePlan(plan *model.BuildPlan) error {
	if plan.PHID == "" {
		plan.PHID = model.NewPHID(model.PHIDTypePlan)
	}
	if plan.Status == "" {
		plan.Status = model.PlanActive
	}
	plan.Created = time.Now().Unix()
	return meddler.Insert(db, planTable, plan)
}

func (db *datastore) DeletePlan(plan *model.BuildPlan) error {
	w := db.where()
	w.add("plan_id = %s", plan.ID)
	var _, err = db.Exec("DELETE FROM build_plans "+w.String(), w.args...)
	return err
}

const (
	buildTable     = "builds"
	buildableTable = "buildables"
	planTable      = "build_plans"
)

const buildPageQuery = `
SELECT *
FROM builds
%s
ORDER BY build_id %s
`

const buildCountQuery = `
SELECT count(1)
FROM builds
`

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
	"testing"

	"github.com/capitalone/repohost/model"

	"github.com/franela/goblin"
)

func Test_buildstore(t *testing.T) {
	db, ids, driver := openTest()
	defer db.Close()
	s := From(db, ids, driver)

	g := goblin.Goblin(t)
	g.Describe("Build", func() {

		var builds []*model.Build

		g.BeforeEach(func() {
			db.Exec("DELETE FROM builds")
			db.Exec("DELETE FROM buildables")
			db.Exec("DELETE FROM build_plans")
			builds = nil
			for _, b := range []*model.Build{
				{BuildablePHID: "PHID-HMBB-a", BuildPlanPHID: "PHID-HMCP-x"},
				{BuildablePHID: "PHID-HMBB-b", BuildPlanPHID: "PHID-HMCP-x"},
				{BuildablePHID: "PHID-HMBB-a"},
				{},
			} {
				s.CreateBuild(b)
				builds = append(builds, b)
			}
		})

		g.It("Should page in primary key order", func() {
			page, err := s.GetBuildPage(model.BuildFilter{}, model.PageRange{Limit: 2})
			g.Assert(err == nil).IsTrue()
			g.Assert(len(page)).Equal(2)
			g.Assert(page[0].ID).Equal(builds[0].ID)
			g.Assert(page[1].ID).Equal(builds[1].ID)

			page, _ = s.GetBuildPage(model.BuildFilter{}, model.PageRange{AfterID: page[1].ID, Limit: 2})
			g.Assert(len(page)).Equal(2)
			g.Assert(page[0].ID).Equal(builds[2].ID)
			g.Assert(page[1].ID).Equal(builds[3].ID)
		})

		g.It("Should page backwards when reversed", func() {
			page, err := s.GetBuildPage(model.BuildFilter{}, model.PageRange{BeforeID: builds[3].ID, Limit: 2, Reverse: true})
			g.Assert(err == nil).IsTrue()
			g.Assert(len(page)).Equal(2)
			g.Assert(page[0].ID).Equal(builds[2].ID)
			g.Assert(page[1].ID).Equal(builds[1].ID)
		})

		g.It("Should combine filters with AND", func() {
			page, _ := s.GetBuildPage(model.BuildFilter{
				BuildablePHIDs: []string{"PHID-HMBB-a"},
			}, model.PageRange{})
			g.Assert(len(page)).Equal(2)

			page, _ = s.GetBuildPage(model.BuildFilter{
				BuildablePHIDs: []string{"PHID-HMBB-a"},
				BuildPlanPHIDs: []string{"PHID-HMCP-x"},
			}, model.PageRange{})
			g.Assert(len(page)).Equal(1)
			g.Assert(page[0].ID).Equal(builds[0].ID)

			page, _ = s.GetBuildPage(model.BuildFilter{
				IDs:   []int64{builds[1].ID, builds[3].ID},
				PHIDs: []string{builds[3].PHID},
			}, model.PageRange{})
			g.Assert(len(page)).Equal(1)
			g.Assert(page[0].ID).Equal(builds[3].ID)
		})

		g.It("Should store missing relations as empty", func() {
			page, _ := s.GetBuildPage(model.BuildFilter{IDs: []int64{builds[3].ID}}, model.PageRange{})
			g.Assert(len(page)).Equal(1)
			g.Assert(page[0].BuildablePHID).Equal("")
			g.Assert(page[0].BuildPlanPHID).Equal("")
			g.Assert(page[0].Status).Equal(model.BuildPending)
		})

		g.It("Should count and delete builds", func() {
			count, err := s.CountBuilds()
			g.Assert(err == nil).IsTrue()
			g.Assert(count).Equal(4)
			s.DeleteBuild(builds[0])
			count, _ = s.CountBuilds()
			g.Assert(count).Equal(3)
		})

		g.It("Should load buildables and plans by PHID", func() {
			buildable := &model.Buildable{RepoPHID: "PHID-REPO-1", Ref: "rABC1234"}
			plan := &model.BuildPlan{Name: "unit tests", ViewPolicy: model.PolicyUsers}
			g.Assert(s.CreateBuildable(buildable) == nil).IsTrue()
			g.Assert(s.CreatePlan(plan) == nil).IsTrue()

			buildables, err := s.GetBuildablePHIDs(buildable.PHID, "PHID-HMBB-gone")
			g.Assert(err == nil).IsTrue()
			g.Assert(len(buildables)).Equal(1)
			g.Assert(buildables[0].Ref).Equal("rABC1234")

			plans, err := s.GetPlanPHIDs(plan.PHID)
			g.Assert(err == nil).IsTrue()
			g.Assert(len(plans)).Equal(1)
			g.Assert(plans[0].Status).Equal(model.PlanActive)

			s.DeletePlan(plan)
			plans, _ = s.GetPlanPHIDs(plan.PHID)
			g.Assert(len(plans)).Equal(0)

			s.DeleteBuildable(buildable)
			buildables, _ = s.GetBuildablePHIDs(buildable.PHID)
			g.Assert(len(buildables)).Equal(0)
		})
	})
}

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
package model

const (
	BuildPending  = "pending"
	BuildBuilding = "building"
	BuildPassed   = "passed"
	BuildFailed   = "failed"
	BuildAborted  = "aborted"
)

const (
	PlanActive   = "active"
	PlanDisabled = "disabled"
)

// Build is one execution of a build plan against a buildable.
type Build struct {
	ID            int64  `json:"id"                   meddler:"build_id,pk"`
	PHID          string `json:"phid"                 meddler:"build_phid"`
	BuildablePHID string `json:"buildable_phid"       meddler:"build_buildable_phid,zeroisnull"`
	BuildPlanPHID string `json:"build_plan_phid"      meddler:"build_plan_phid,zeroisnull"`
	Status        string `json:"status"               meddler:"build_status"`
	Created       int64  `json:"created"              meddler:"build_created"`
	Modified      int64  `json:"modified"             meddler:"build_modified"`

	Buildable *Buildable `json:"buildable,omitempty"  meddler:"-"`
	Plan      *BuildPlan `json:"plan,omitempty"       meddler:"-"`
}

// Buildable is the thing a build builds, such as a commit in a repository.
// It has no policy of its own: it is visible when its repository is.
type Buildable struct {
	ID       int64  `json:"id"                   meddler:"buildable_id,pk"`
	PHID     string `json:"phid"                 meddler:"buildable_phid"`
	RepoPHID string `json:"repo_phid"            meddler:"buildable_repo_phid"`
	Ref      string `json:"ref"                  meddler:"buildable_ref"`
	Manual   bool   `json:"manual"               meddler:"buildable_manual"`
	Created  int64  `json:"created"              meddler:"buildable_created"`

	Repo *Repo `json:"repo,omitempty"          meddler:"-"`
}

// BuildPlan is a reusable description of how to run a build.
type BuildPlan struct {
	ID         int64  `json:"id"                   meddler:"plan_id,pk"`
	PHID       string `json:"phid"                 meddler:"plan_phid"`
	Name       string `json:"name"                 meddler:"plan_name"`
	Status     string `json:"status"               meddler:"plan_status"`
	ViewPolicy string `json:"view_policy"          meddler:"plan_view_policy"`
	EditPolicy string `json:"edit_policy"          meddler:"plan_edit_policy"`
	Created    int64  `json:"created"              meddler:"plan_created"`
}

func (p *BuildPlan) GetPolicy(c Capability) string {
	switch c {
	case CanView:
		return p.ViewPolicy
	case CanEdit:
		return p.EditPolicy
	}
	return PolicyNoOne
}

// BuildFilter restricts a build page. Empty slices do not constrain.
type BuildFilter struct {
	IDs            []int64
	PHIDs          []string
	BuildablePHIDs []string
	BuildPlanPHIDs []string
}

// PageRange selects one raw page of rows by primary key. With Reverse set
// rows are returned in descending order below BeforeID.
type PageRange struct {
	AfterID  int64
	BeforeID int64
	Limit    int
	Reverse  bool
}

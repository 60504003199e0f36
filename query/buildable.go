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
package query

import (
	"context"

	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/policy"
	"github.com/capitalone/repohost/set"
	"github.com/capitalone/repohost/store"

	log "github.com/sirupsen/logrus"
)

// BuildableQuery loads buildables by PHID. A buildable is visible when the
// viewer can see its repository; the repository is attached to each result.
type BuildableQuery struct {
	Viewer *model.User
	PHIDs  []string
}

func (q *BuildableQuery) Execute(c context.Context) ([]*model.Buildable, error) {
	buildables, err := store.GetBuildablePHIDs(c, q.PHIDs...)
	if err != nil {
		return nil, err
	}
	if len(buildables) == 0 {
		return buildables, nil
	}

	repoPHIDs := set.Empty()
	for _, b := range buildables {
		repoPHIDs.Add(b.RepoPHID)
	}
	rq := &RepoQuery{Viewer: q.Viewer, PHIDs: repoPHIDs.Sorted()}
	repos, err := rq.Execute(c)
	if err != nil {
		return nil, err
	}
	byPHID := make(map[string]*model.Repo, len(repos))
	for _, repo := range repos {
		byPHID[repo.PHID] = repo
	}

	visible := []*model.Buildable{}
	for _, b := range buildables {
		repo, ok := byPHID[b.RepoPHID]
		if !ok {
			log.Debugf("Buildable %s filtered for %s", b.PHID, q.Viewer.Login)
			continue
		}
		b.Repo = repo
		visible = append(visible, b)
	}
	return visible, nil
}

// BuildPlanQuery loads build plans by PHID, keeping the visible ones.
type BuildPlanQuery struct {
	Viewer *model.User
	PHIDs  []string
}

func (q *BuildPlanQuery) Execute(c context.Context) ([]*model.BuildPlan, error) {
	plans, err := store.GetPlanPHIDs(c, q.PHIDs...)
	if err != nil {
		return nil, err
	}
	visible := []*model.BuildPlan{}
	for _, plan := range plans {
		if !policy.Has(q.Viewer, plan, model.CanView) {
			continue
		}
		visible = append(visible, plan)
	}
	return visible, nil
}

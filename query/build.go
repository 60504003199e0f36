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
	"github.com/capitalone/repohost/set"
	"github.com/capitalone/repohost/store"

	log "github.com/sirupsen/logrus"
)

// BuildQuery lists builds visible to the viewer. A build is visible exactly
// when its buildable is, so builds without a loadable buildable are never
// returned. Build plans are attached only when NeedBuildPlans is set and may
// be nil.
type BuildQuery struct {
	Viewer         *model.User
	IDs            []int64
	PHIDs          []string
	BuildablePHIDs []string
	BuildPlanPHIDs []string
	NeedBuildPlans bool
}

// BuildPage is one page of builds with the cursors of its neighbours.
type BuildPage struct {
	Builds []*model.Build `json:"builds"`
	Next   string         `json:"next,omitempty"`
	Prev   string         `json:"prev,omitempty"`
}

func (q *BuildQuery) filter() model.BuildFilter {
	return model.BuildFilter{
		IDs:            q.IDs,
		PHIDs:          q.PHIDs,
		BuildablePHIDs: q.BuildablePHIDs,
		BuildPlanPHIDs: q.BuildPlanPHIDs,
	}
}

// Execute loads one page. Raw rows are fetched in rounds until one more
// visible build than the page size has been found or the rows run out, so
// pages stay full even when many rows are filtered.
func (q *BuildQuery) Execute(c context.Context, p Pager) (*BuildPage, error) {
	after, before, err := p.bounds()
	if err != nil {
		return nil, err
	}
	limit := p.limit()
	want := limit + 1

	filter := q.filter()
	rng := model.PageRange{AfterID: after, BeforeID: before, Reverse: before > 0}
	builds := []*model.Build{}
	for len(builds) < want {
		rng.Limit = want - len(builds)
		raw, err := store.GetBuildPage(c, filter, rng)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			break
		}
		visible, err := q.attachBuildables(c, raw)
		if err != nil {
			return nil, err
		}
		builds = append(builds, visible...)
		if len(raw) < rng.Limit {
			break
		}
		last := raw[len(raw)-1].ID
		if rng.Reverse {
			rng.BeforeID = last
		} else {
			rng.AfterID = last
		}
	}

	more := len(builds) > limit
	if more {
		builds = builds[:limit]
	}
	if rng.Reverse {
		for i, j := 0, len(builds)-1; i < j; i, j = i+1, j-1 {
			builds[i], builds[j] = builds[j], builds[i]
		}
	}

	if q.NeedBuildPlans {
		if err := q.attachBuildPlans(c, builds); err != nil {
			return nil, err
		}
	}

	page := &BuildPage{Builds: builds}
	if len(builds) == 0 {
		return page, nil
	}
	first, last := builds[0].ID, builds[len(builds)-1].ID
	if rng.Reverse {
		page.Next = encodeCursor(last)
		if more {
			page.Prev = encodeCursor(first)
		}
	} else {
		if more {
			page.Next = encodeCursor(last)
		}
		if after > 0 {
			page.Prev = encodeCursor(first)
		}
	}
	return page, nil
}

// attachBuildables resolves the buildable of every build and drops builds
// whose buildable is unset, deleted or invisible to the viewer.
func (q *BuildQuery) attachBuildables(c context.Context, page []*model.Build) ([]*model.Build, error) {
	phids := set.Empty()
	for _, build := range page {
		if build.BuildablePHID != "" {
			phids.Add(build.BuildablePHID)
		}
	}

	buildables := map[string]*model.Buildable{}
	if len(phids) > 0 {
		bq := &BuildableQuery{Viewer: q.Viewer, PHIDs: phids.Sorted()}
		found, err := bq.Execute(c)
		if err != nil {
			return nil, err
		}
		for _, buildable := range found {
			buildables[buildable.PHID] = buildable
		}
	}

	kept := make([]*model.Build, 0, len(page))
	for _, build := range page {
		buildable, ok := buildables[build.BuildablePHID]
		if !ok {
			log.Debugf("Build %d dropped, buildable %q is unavailable to %s",
				build.ID, build.BuildablePHID, q.Viewer.Login)
			continue
		}
		build.Buildable = buildable
		kept = append(kept, build)
	}
	return kept, nil
}

// attachBuildPlans resolves the build plan of every build. Builds are never
// dropped here: a missing or invisible plan leaves Plan nil.
func (q *BuildQuery) attachBuildPlans(c context.Context, page []*model.Build) error {
	phids := set.Empty()
	for _, build := range page {
		if build.BuildPlanPHID != "" {
			phids.Add(build.BuildPlanPHID)
		}
	}
	if len(phids) == 0 {
		return nil
	}

	pq := &BuildPlanQuery{Viewer: q.Viewer, PHIDs: phids.Sorted()}
	found, err := pq.Execute(c)
	if err != nil {
		return err
	}
	plans := make(map[string]*model.BuildPlan, len(found))
	for _, plan := range found {
		plans[plan.PHID] = plan
	}
	for _, build := range page {
		build.Plan = plans[build.BuildPlanPHID]
	}
	return nil
}

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
// Package query loads objects on behalf of a viewer, filtering out
// everything the viewer's policies do not allow.
package query

import (
	"context"
	"fmt"

	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/policy"
	"github.com/capitalone/repohost/set"
	"github.com/capitalone/repohost/store"

	log "github.com/sirupsen/logrus"
)

// RepoQuery loads repositories the viewer holds every listed capability on.
// View is always required. IDs and PHIDs combine with AND; with neither set
// every repository is considered.
type RepoQuery struct {
	Viewer       *model.User
	IDs          []int64
	PHIDs        []string
	Capabilities []model.Capability
}

func (q *RepoQuery) capabilities() []model.Capability {
	for _, cap := range q.Capabilities {
		if cap == model.CanView {
			return q.Capabilities
		}
	}
	return append([]model.Capability{model.CanView}, q.Capabilities...)
}

// Execute returns the matching repositories ordered by ID.
func (q *RepoQuery) Execute(c context.Context) ([]*model.Repo, error) {
	var (
		repos []*model.Repo
		err   error
	)
	switch {
	case len(q.IDs) > 0:
		repos, err = store.GetRepoIDs(c, q.IDs...)
	case len(q.PHIDs) > 0:
		repos, err = store.GetRepoPHIDs(c, q.PHIDs...)
	default:
		repos, err = store.GetAllRepos(c)
	}
	if err != nil {
		return nil, err
	}

	var phids set.Set
	if len(q.IDs) > 0 && len(q.PHIDs) > 0 {
		phids = set.New(q.PHIDs...)
	}
	caps := q.capabilities()
	visible := []*model.Repo{}
	for _, repo := range repos {
		if phids != nil && !phids.Contains(repo.PHID) {
			continue
		}
		if !policy.HasAll(q.Viewer, repo, caps) {
			log.Debugf("Repository %d filtered for %s", repo.ID, q.Viewer.Login)
			continue
		}
		visible = append(visible, repo)
	}
	return visible, nil
}

// ExecuteOne returns the single matching repository. A repository that does
// not exist and one the viewer may not use both yield the same NotFound.
func (q *RepoQuery) ExecuteOne(c context.Context) (*model.Repo, error) {
	repos, err := q.Execute(c)
	if err != nil {
		return nil, err
	}
	switch len(repos) {
	case 0:
		return nil, exterror.NotFound()
	case 1:
		return repos[0], nil
	}
	return nil, fmt.Errorf("expected a single repository, query matched %d", len(repos))
}

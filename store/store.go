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
package store

import (
	"context"

	"github.com/capitalone/repohost/cache"
	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/set"
)

// Store defines a data storage abstraction for managing structured data
// in the system.
type Store interface {
	// GetMigrations gets the set of migrations that were applied when service started
	GetMigrations() set.Set
	// AssignPHIDs gives a PHID to every user and repository created
	// before PHIDs existed. It returns the number of rows updated.
	AssignPHIDs() (int, error)

	// GetUser gets a user by unique ID.
	GetUser(int64) (*model.User, error)
	// GetUserLogin gets a user by unique Login name.
	GetUserLogin(string) (*model.User, error)
	// GetUserPHIDs gets the users with the given PHIDs.
	GetUserPHIDs(...string) ([]*model.User, error)
	// CreateUser creates a new user account.
	CreateUser(*model.User) error
	// UpdateUser updates a user account.
	UpdateUser(*model.User) error

	// GetRepo gets a repo by unique ID.
	GetRepo(int64) (*model.Repo, error)
	// GetRepoIDs gets the repos with the given IDs.
	GetRepoIDs(...int64) ([]*model.Repo, error)
	// GetRepoPHIDs gets the repos with the given PHIDs.
	GetRepoPHIDs(...string) ([]*model.Repo, error)
	// GetAllRepos gets a list of all repositories.
	GetAllRepos() ([]*model.Repo, error)
	// CreateRepo creates a new repository.
	CreateRepo(*model.Repo) error
	// ApplyRepoTransactions writes the repository row and appends the
	// transactions to its audit log in one database transaction.
	ApplyRepoTransactions(*model.Repo, []*model.Transaction) error
	// GetRepoTransactions lists the audit log of a repository, oldest first.
	GetRepoTransactions(repoPHID string) ([]*model.Transaction, error)

	// GetBuildPage gets one raw page of builds matching the filter.
	GetBuildPage(model.BuildFilter, model.PageRange) ([]*model.Build, error)
	// CreateBuild creates a new build.
	CreateBuild(*model.Build) error
	// DeleteBuild deletes a build.
	DeleteBuild(*model.Build) error
	// CountBuilds counts every stored build.
	CountBuilds() (int, error)

	// GetBuildablePHIDs gets the buildables with the given PHIDs.
	GetBuildablePHIDs(...string) ([]*model.Buildable, error)
	// CreateBuildable creates a new buildable.
	CreateBuildable(*model.Buildable) error
	// DeleteBuildable deletes a buildable.
	DeleteBuildable(*model.Buildable) error

	// GetPlanPHIDs gets the build plans with the given PHIDs.
	GetPlanPHIDs(...string) ([]*model.BuildPlan, error)
	// CreatePlan creates a new build plan.
	CreatePlan(*model.BuildPlan) error
	// DeletePlan deletes a build plan.
	DeletePlan(*model.BuildPlan) error
}

// GetUser gets a user by unique ID.
func GetUser(c context.Context, id int64) (*model.User, error) {
	return FromContext(c).GetUser(id)
}

// GetUserLogin gets a user by unique Login name.
func GetUserLogin(c context.Context, login string) (*model.User, error) {
	return FromContext(c).GetUserLogin(login)
}

// GetUserPHIDs gets the users with the given PHIDs.
func GetUserPHIDs(c context.Context, phids ...string) ([]*model.User, error) {
	return FromContext(c).GetUserPHIDs(phids...)
}

// GetRepoIDs gets the repos with the given IDs.
func GetRepoIDs(c context.Context, ids ...int64) ([]*model.Repo, error) {
	return FromContext(c).GetRepoIDs(ids...)
}

// GetRepoPHIDs gets the repos with the given PHIDs.
func GetRepoPHIDs(c context.Context, phids ...string) ([]*model.Repo, error) {
	return FromContext(c).GetRepoPHIDs(phids...)
}

// GetAllRepos gets a list of all repositories.
func GetAllRepos(c context.Context) ([]*model.Repo, error) {
	return FromContext(c).GetAllRepos()
}

// ApplyRepoTransactions persists a repository and its new audit records.
func ApplyRepoTransactions(c context.Context, repo *model.Repo, xactions []*model.Transaction) error {
	return FromContext(c).ApplyRepoTransactions(repo, xactions)
}

// GetRepoTransactions lists the audit log of a repository.
func GetRepoTransactions(c context.Context, repo *model.Repo) ([]*model.Transaction, error) {
	return FromContext(c).GetRepoTransactions(repo.PHID)
}

// GetBuildPage gets one raw page of builds.
func GetBuildPage(c context.Context, filter model.BuildFilter, page model.PageRange) ([]*model.Build, error) {
	return FromContext(c).GetBuildPage(filter, page)
}

// GetBuildablePHIDs gets the buildables with the given PHIDs.
func GetBuildablePHIDs(c context.Context, phids ...string) ([]*model.Buildable, error) {
	return FromContext(c).GetBuildablePHIDs(phids...)
}

// GetPlanPHIDs gets the build plans with the given PHIDs.
func GetPlanPHIDs(c context.Context, phids ...string) ([]*model.BuildPlan, error) {
	return FromContext(c).GetPlanPHIDs(phids...)
}

// GetUserLogins maps user PHIDs to login names. Lookups are served from
// the cache when possible; unknown PHIDs are absent from the result.
func GetUserLogins(c context.Context, phids ...string) (map[string]string, error) {
	logins := map[string]string{}
	var missing []string
	for _, phid := range set.NonEmpty(phids...).Sorted() {
		//error is of no use on Get, nil coming back is what matters
		login, _ := cache.Get(c, "login:"+phid)
		if login == nil {
			missing = append(missing, phid)
			continue
		}
		logins[phid] = login.(string)
	}
	if len(missing) == 0 {
		return logins, nil
	}
	users, err := FromContext(c).GetUserPHIDs(missing...)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		logins[user.PHID] = user.Login
		cache.Set(c, "login:"+user.PHID, user.Login)
	}
	return logins, nil
}

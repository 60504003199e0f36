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
package migration

import (
	"errors"
	"io/ioutil"
	"testing"

	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/set"
	"github.com/capitalone/repohost/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type mockStore struct {
	store.Store
	migrations set.Set
	repos      []*model.Repo
	assigned   int
	applied    map[string][]*model.Transaction
}

func (ms *mockStore) GetMigrations() set.Set {
	return ms.migrations
}

func (ms *mockStore) AssignPHIDs() (int, error) {
	ms.assigned++
	return 3, nil
}

func (ms *mockStore) GetAllRepos() ([]*model.Repo, error) {
	return ms.repos, nil
}

func (ms *mockStore) ApplyRepoTransactions(repo *model.Repo, xactions []*model.Transaction) error {
	if repo.Callsign == "BAD" {
		return errors.New("locked")
	}
	ms.applied[repo.Callsign] = xactions
	return nil
}

func TestMigrate(t *testing.T) {
	logrus.SetOutput(ioutil.Discard)
	ms := &mockStore{
		migrations: set.New("002_phid.sql", "003_hosting.sql"),
		applied:    map[string][]*model.Transaction{},
		repos: []*model.Repo{
			{Callsign: "A", Hosted: true, ServeSSH: model.ServeReadWrite, ServeHTTP: model.ServeOff},
			{Callsign: "B", Hosted: false, ServeSSH: model.ServeReadWrite, ServeHTTP: model.ServeReadWrite},
			{Callsign: "C", Hosted: false, ServeSSH: model.ServeReadOnly, ServeHTTP: model.ServeOff},
			{Callsign: "BAD", Hosted: false, ServeSSH: model.ServeReadWrite, ServeHTTP: model.ServeOff},
		},
	}
	assert.NoError(t, Migrate(ms))
	assert.Equal(t, 1, ms.assigned)

	assert.Len(t, ms.applied, 1)
	assert.Len(t, ms.applied["B"], 2)
	assert.Equal(t, model.ServeReadOnly, ms.repos[1].ServeSSH)
	assert.Equal(t, model.ServeReadOnly, ms.repos[1].ServeHTTP)
	assert.Equal(t, model.ServeReadWrite, ms.repos[3].ServeSSH)
}

func TestMigrateNothingToDo(t *testing.T) {
	ms := &mockStore{migrations: set.Empty()}
	assert.NoError(t, Migrate(ms))
	assert.Equal(t, 0, ms.assigned)
}

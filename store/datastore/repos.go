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
	"database/sql"
	"time"

	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/set"

	"github.com/pkg/errors"
	"github.com/russross/meddler"
)

func (db *datastore) GetMigrations() set.Set {
	return db.Migrations
}

func (db *datastore) GetRepo(id int64) (*model.Repo, error) {
	var repo = new(model.Repo)
	var err = meddler.Load(db, repoTable, repo, id)
	if err == sql.ErrNoRows {
		return repo, exterror.NotFound()
	}
	return repo, err
}

func (db *datastore) GetRepoIDs(ids ...int64) ([]*model.Repo, error) {
	var repos = []*model.Repo{}
	if len(ids) == 0 {
		return repos, nil
	}
	w := db.where()
	w.in("repo_id", intArgs(set.NewInt64(ids...).Sorted()))
	var err = meddler.QueryAll(db, &repos, repoSelect+w.String()+repoOrder, w.args...)
	return repos, err
}

func (db *datastore) GetRepoPHIDs(phids ...string) ([]*model.Repo, error) {
	var repos = []*model.Repo{}
	var err = db.byPHIDs(&repos, repoTable, "repo_phid", phids)
	return repos, err
}

func (db *datastore) GetAllRepos() ([]*model.Repo, error) {
	var repos = []*model.Repo{}
	var err = meddler.QueryAll(db, &repos, repoSelect+repoOrder)
	return repos, err
}

func (db *datastore) CreateRepo(repo *model.Repo) error {
	if repo.PHID == "" {
		repo.PHID = model.NewPHID(model.PHIDTypeRepo)
	}
	if repo.ServeSSH == "" {
		repo.ServeSSH = model.ServeOff
	}
	if repo.ServeHTTP == "" {
		repo.ServeHTTP = model.ServeOff
	}
	now := time.Now().Unix()
	repo.Created, repo.Modified = now, now
	return meddler.Insert(db, repoTable, repo)
}

func (db *datastore) ApplyRepoTransactions(repo *model.Repo, xactions []*model.Transaction) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().Unix()
	repo.Modified = now
	if err = meddler.Update(tx, repoTable, repo); err != nil {
		return errors.Wrapf(err, "updating repository %s", repo.PHID)
	}
	for _, x := range xactions {
		if x.PHID == "" {
			x.PHID = model.NewPHID(model.PHIDTypeTransaction)
		}
		x.ObjectPHID = repo.PHID
		x.Created = now
		if err = meddler.Insert(tx, xactionTable, x); err != nil {
			return errors.Wrapf(err, "recording %s transaction", x.Type)
		}
	}
	return tx.Commit()
}

func (db *datastore) GetRepoTransactions(repoPHID string) ([]*model.Transaction, error) {
	var xactions = []*model.Transaction{}
	w := db.where()
	w.add("xaction_object_phid = %s", repoPHID)
	var err = meddler.QueryAll(db, &xactions, xactionSelect+w.String()+xactionOrder, w.args...)
	return xactions, err
}

const (
	repoTable    = "repos"
	xactionTable = "repo_transactions"
)

const repoSelect = `
SELECT *
FROM repos
`

const repoOrder = `
ORDER BY repo_id
`

const xactionSelect = `
SELECT *
FROM repo_transactions
`

const xactionOrder = `
ORDER BY xaction_id
`

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

	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/model"

	"github.com/russross/meddler"
)

func (db *datastore) GetUser(id int64) (*model.User, error) {
	var usr = new(model.User)
	var err = meddler.Load(db, userTable, usr, id)
	if err == sql.ErrNoRows {
		return usr, exterror.NotFound()
	}
	return usr, err
}

func (db *datastore) GetUserLogin(login string) (*model.User, error) {
	var usr = new(model.User)
	w := db.where()
	w.add("user_login = %s", login)
	var err = meddler.QueryRow(db, usr, userSelect+w.String()+" LIMIT 1", w.args...)
	if err == sql.ErrNoRows {
		return usr, exterror.NotFound()
	}
	return usr, err
}

func (db *datastore) GetUserPHIDs(phids ...string) ([]*model.User, error) {
	var users = []*model.User{}
	var err = db.byPHIDs(&users, userTable, "user_phid", phids)
	return users, err
}

func (db *datastore) CreateUser(user *model.User) error {
	if user.PHID == "" {
		user.PHID = model.NewPHID(model.PHIDTypeUser)
	}
	if user.Secret == "" {
		user.Secret = model.Rand()
	}
	return meddler.Insert(db, userTable, user)
}

func (db *datastore) UpdateUser(user *model.User) error {
	return meddler.Update(db, userTable, user)
}

const userTable = "users"

const userSelect = `
SELECT *
FROM users
`

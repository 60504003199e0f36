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

	"github.com/capitalone/repohost/model"
)

var phidColumns = []struct {
	table, id, phid, kind string
}{
	{userTable, "user_id", "user_phid", model.PHIDTypeUser},
	{repoTable, "repo_id", "repo_phid", model.PHIDTypeRepo},
}

func (db *datastore) AssignPHIDs() (int, error) {
	count := 0
	for _, c := range phidColumns {
		ids, err := db.missingPHIDs(c.table, c.id, c.phid)
		if err != nil {
			return count, err
		}
		for _, id := range ids {
			w := db.where()
			set := fmt.Sprintf("UPDATE %s SET %s = %s ", c.table, c.phid, w.param(model.NewPHID(c.kind)))
			w.add(c.id+" = %s", id)
			if _, err = db.Exec(set+w.String(), w.args...); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (db *datastore) missingPHIDs(table, id, phid string) ([]int64, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NULL OR %s = ''", id, table, phid, phid)
	rows, err := db.Query(stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var v int64
		if err = rows.Scan(&v); err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	return ids, rows.Err()
}

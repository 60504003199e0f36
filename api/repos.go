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
package api

import (
	"fmt"
	"net/http"

	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/query"
	"github.com/capitalone/repohost/router/middleware/session"
	"github.com/capitalone/repohost/set"
	"github.com/capitalone/repohost/store"

	"github.com/gin-gonic/gin"
)

// RepoEdit is the root of the repository edit wizard.
type RepoEdit struct {
	Repo  *model.Repo       `json:"repo"`
	Links map[string]string `json:"links"`
}

// TransactionView is an audit record with its author resolved.
type TransactionView struct {
	*model.Transaction
	Author string `json:"author,omitempty"`
}

// GetRepo gets a repository the viewer can see.
func GetRepo(c *gin.Context) {
	id, err := repoID(c)
	if err != nil {
		c.Error(err)
		return
	}
	q := &query.RepoQuery{Viewer: session.Viewer(c), IDs: []int64{id}}
	repo, err := q.ExecuteOne(c)
	if err != nil {
		c.Error(exterror.Append(err, fmt.Sprintf("Getting repository %d", id)))
		return
	}
	IndentedJSON(c, http.StatusOK, repo)
}

// GetRepoEdit gets the edit root of a repository the viewer can edit.
func GetRepoEdit(c *gin.Context) {
	id, err := repoID(c)
	if err != nil {
		c.Error(err)
		return
	}
	repo, err := editableRepo(c, session.Viewer(c), id)
	if err != nil {
		c.Error(exterror.Append(err, fmt.Sprintf("Getting repository %d", id)))
		return
	}
	IndentedJSON(c, http.StatusOK, &RepoEdit{
		Repo: repo,
		Links: map[string]string{
			"hosting":      editURI(repo, "hosting"),
			"serve":        editURI(repo, "serve"),
			"transactions": fmt.Sprintf("/api/repos/%d/transactions", repo.ID),
		},
	})
}

// GetRepoTransactions lists the audit log of a repository, oldest first.
func GetRepoTransactions(c *gin.Context) {
	id, err := repoID(c)
	if err != nil {
		c.Error(err)
		return
	}
	q := &query.RepoQuery{Viewer: session.Viewer(c), IDs: []int64{id}}
	repo, err := q.ExecuteOne(c)
	if err != nil {
		c.Error(exterror.Append(err, fmt.Sprintf("Getting repository %d", id)))
		return
	}
	xactions, err := store.GetRepoTransactions(c, repo)
	if err != nil {
		c.Error(exterror.Append(err, "Getting transactions"))
		return
	}
	authors := set.Empty()
	for _, x := range xactions {
		authors.Add(x.AuthorPHID)
	}
	logins, err := store.GetUserLogins(c, authors.Keys()...)
	if err != nil {
		c.Error(exterror.Append(err, "Getting transaction authors"))
		return
	}
	views := make([]*TransactionView, len(xactions))
	for i, x := range xactions {
		views[i] = &TransactionView{Transaction: x, Author: logins[x.AuthorPHID]}
	}
	IndentedJSON(c, http.StatusOK, views)
}

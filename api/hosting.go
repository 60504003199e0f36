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
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/capitalone/repohost/editor"
	"github.com/capitalone/repohost/envvars"
	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/query"
	"github.com/capitalone/repohost/router/middleware/session"
	"github.com/capitalone/repohost/usage"

	"github.com/gin-gonic/gin"
)

// Choice is one option of a radio control.
type Choice struct {
	Value       interface{} `json:"value"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Disabled    bool        `json:"disabled,omitempty"`
}

// HostingForm is the display state of the hosting screen.
type HostingForm struct {
	Title        string   `json:"title"`
	Instructions string   `json:"instructions"`
	Hosting      bool     `json:"hosting"`
	Choices      []Choice `json:"choices"`
	Submit       string   `json:"submit"`
	NextURI      string   `json:"next_uri"`
	CancelURI    string   `json:"cancel_uri"`
	Errors       []string `json:"errors,omitempty"`
}

// ProtocolField is the display state of one protocol control.
type ProtocolField struct {
	Name    string          `json:"name"`
	Label   string          `json:"label"`
	Value   model.ServeMode `json:"value"`
	Choices []Choice        `json:"choices"`
}

// ProtocolsForm is the display state of the protocols screen.
type ProtocolsForm struct {
	Title        string        `json:"title"`
	Instructions string        `json:"instructions"`
	SSH          ProtocolField `json:"ssh"`
	HTTP         ProtocolField `json:"http"`
	Submit       string        `json:"submit"`
	EditURI      string        `json:"edit_uri"`
	BackURI      string        `json:"back_uri"`
	Errors       []string      `json:"errors,omitempty"`
}

func editURI(repo *model.Repo, step string) string {
	uri := fmt.Sprintf("/api/repos/%d/edit", repo.ID)
	if step != "" {
		uri += "/" + step
	}
	return uri
}

// repoID parses the route id. Anything but a positive integer is reported
// like a repository that does not exist.
func repoID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, exterror.NotFound()
	}
	return id, nil
}

// editableRepo re-resolves the repository, requiring view and edit.
func editableRepo(c context.Context, viewer *model.User, id int64) (*model.Repo, error) {
	q := &query.RepoQuery{
		Viewer:       viewer,
		IDs:          []int64{id},
		Capabilities: model.ViewEdit(),
	}
	return q.ExecuteOne(c)
}

func recordMutations(applied []*model.Transaction) {
	for _, x := range applied {
		usage.RecordMutation(x.Type)
	}
}

// SetHosting changes whether the repository is hosted here.
func SetHosting(c context.Context, viewer *model.User, id int64, hosted bool, source model.ContentSource) (*model.Repo, error) {
	repo, err := editableRepo(c, viewer, id)
	if err != nil {
		return nil, err
	}
	return repo, applyHosting(c, viewer, repo, hosted, source)
}

// SetProtocols changes the SSH and HTTP serve modes together.
func SetProtocols(c context.Context, viewer *model.User, id int64, sshMode, httpMode string, source model.ContentSource) (*model.Repo, error) {
	repo, err := editableRepo(c, viewer, id)
	if err != nil {
		return nil, err
	}
	return repo, applyProtocols(c, viewer, repo, sshMode, httpMode, source)
}

func applyHosting(c context.Context, viewer *model.User, repo *model.Repo, hosted bool, source model.ContentSource) error {
	e := &editor.Repo{Actor: viewer, ContentSource: source, ContinueOnNoEffect: true}
	applied, err := e.Apply(c, repo, []*model.Transaction{
		model.NewTransaction(model.TxHosting, hosted),
	})
	recordMutations(applied)
	return err
}

func applyProtocols(c context.Context, viewer *model.User, repo *model.Repo, sshMode, httpMode string, source model.ContentSource) error {
	e := &editor.Repo{Actor: viewer, ContentSource: source, ContinueOnNoEffect: true}
	applied, err := e.Apply(c, repo, []*model.Transaction{
		model.NewTransaction(model.TxProtocolHTTP, httpMode),
		model.NewTransaction(model.TxProtocolSSH, sshMode),
	})
	recordMutations(applied)
	return err
}

// invalid reports whether err should be shown to the user next to the form.
func invalid(err error) bool {
	ext, ok := err.(exterror.ExtError)
	return ok && ext.Status == http.StatusBadRequest
}

// EditHosting serves the hosting screen, or the protocols screen when serve
// is set.
func EditHosting(serve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := session.Viewer(c)
		id, err := repoID(c)
		if err != nil {
			c.Error(err)
			return
		}
		repo, err := editableRepo(c, viewer, id)
		if err != nil {
			c.Error(err)
			return
		}
		if serve {
			handleProtocols(c, viewer, repo)
		} else {
			handleHosting(c, viewer, repo)
		}
	}
}

func handleHosting(c *gin.Context, viewer *model.User, repo *model.Repo) {
	form := hostingForm(repo, repo.Hosted)
	if c.Request.Method == "POST" {
		// a missing or malformed value means hosted elsewhere
		hosted, _ := strconv.ParseBool(c.PostForm("hosting"))
		err := applyHosting(c, viewer, repo, hosted, session.Source(c))
		switch {
		case err == nil:
			c.Redirect(http.StatusFound, form.NextURI)
		case invalid(err):
			form.Hosting = hosted
			form.Errors = exterror.Messages(err)
			IndentedJSON(c, http.StatusBadRequest, form)
		default:
			c.Error(exterror.Append(err, fmt.Sprintf("Editing hosting of repository %d", repo.ID)))
		}
		return
	}
	IndentedJSON(c, http.StatusOK, form)
}

func handleProtocols(c *gin.Context, viewer *model.User, repo *model.Repo) {
	form := protocolsForm(repo, repo.ServeSSH, repo.ServeHTTP)
	if c.Request.Method == "POST" {
		sshMode, httpMode := c.PostForm("ssh"), c.PostForm("http")
		err := applyProtocols(c, viewer, repo, sshMode, httpMode, session.Source(c))
		switch {
		case err == nil:
			c.Redirect(http.StatusFound, form.EditURI)
		case invalid(err):
			form.SSH.Value = model.ServeMode(sshMode)
			form.HTTP.Value = model.ServeMode(httpMode)
			form.Errors = exterror.Messages(err)
			IndentedJSON(c, http.StatusBadRequest, form)
		default:
			c.Error(exterror.Append(err, fmt.Sprintf("Editing protocols of repository %d", repo.ID)))
		}
		return
	}
	IndentedJSON(c, http.StatusOK, form)
}

func hostingForm(repo *model.Repo, hosted bool) *HostingForm {
	brand := envvars.Env.Branding.Name
	return &HostingForm{
		Title: fmt.Sprintf("Edit Hosting (%s)", repo.Name),
		Instructions: fmt.Sprintf("%s can host repositories, or it can track "+
			"repositories hosted elsewhere (like on GitHub or Bitbucket).", brand),
		Hosting: hosted,
		Choices: []Choice{
			{
				Value: true,
				Name:  fmt.Sprintf("Host Repository on %s", brand),
				Description: fmt.Sprintf("%s will host this repository. Users will be able "+
					"to push commits to %s. %s will not pull changes from elsewhere.",
					brand, brand, brand),
			},
			{
				Value: false,
				Name:  "Host Repository Elsewhere",
				Description: fmt.Sprintf("%s will pull updates to this repository from a "+
					"master repository elsewhere (for example, on GitHub or Bitbucket). "+
					"Users will not be able to push commits to this repository.", brand),
			},
		},
		Submit:    "Save and Continue",
		NextURI:   editURI(repo, "serve"),
		CancelURI: editURI(repo, ""),
	}
}

func protocolsForm(repo *model.Repo, sshMode, httpMode model.ServeMode) *ProtocolsForm {
	brand := envvars.Env.Branding.Name
	return &ProtocolsForm{
		Title: fmt.Sprintf("Edit Protocols (%s)", repo.Name),
		Instructions: fmt.Sprintf("%s can serve repositories over various protocols. "+
			"You can configure server protocols here.", brand),
		SSH:     protocolField(repo, "ssh", "SSH", sshMode),
		HTTP:    protocolField(repo, "http", "HTTP", httpMode),
		Submit:  "Save Changes",
		EditURI: editURI(repo, ""),
		BackURI: editURI(repo, "hosting"),
	}
}

func protocolField(repo *model.Repo, name, label string, value model.ServeMode) ProtocolField {
	brand := envvars.Env.Branding.Name
	descriptions := map[model.ServeMode]string{
		model.ServeOff:      fmt.Sprintf("%s will not serve this repository.", brand),
		model.ServeReadOnly: fmt.Sprintf("%s will serve a read-only copy of this repository.", brand),
	}
	if repo.Hosted {
		descriptions[model.ServeReadWrite] = fmt.Sprintf(
			"%s will serve a read-write copy of this repository.", brand)
	} else {
		descriptions[model.ServeReadWrite] = fmt.Sprintf(
			"This repository is hosted elsewhere, so %s can not perform writes.", brand)
	}

	field := ProtocolField{Name: name, Label: label, Value: value}
	for _, mode := range model.ServeModes {
		field.Choices = append(field.Choices, Choice{
			Value:       mode,
			Name:        mode.Name(),
			Description: descriptions[mode],
			Disabled:    model.CheckServeMode(repo.Hosted, mode) != nil,
		})
	}
	return field
}

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
package router

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/shared/token"
	"github.com/capitalone/repohost/store/datastore"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(ioutil.Discard)

	db, migrations := datastore.Open("sqlite3", ":memory:")
	s := datastore.From(db, migrations, "sqlite3")
	user := &model.User{Login: "john"}
	require.NoError(t, s.CreateUser(user))
	repo := &model.Repo{Name: "repo", Callsign: "R", ViewPolicy: model.PolicyPublic, EditPolicy: user.PHID}
	require.NoError(t, s.CreateRepo(repo))
	h := Load(s)

	do := func(r *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	r, _ := http.NewRequest("GET", "/api/user", nil)
	assert.Equal(t, 401, do(r).Code)

	api, _ := token.New(token.UserToken, user.Login).Sign(user.Secret)
	r, _ = http.NewRequest("GET", "/api/user", nil)
	r.Header.Set("Authorization", "Bearer "+api)
	w := do(r)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"login": "john"`)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	r, _ = http.NewRequest("GET", "/api/repos/1", nil)
	assert.Equal(t, 200, do(r).Code)

	sess, _ := token.New(token.SessToken, user.Login).Sign(user.Secret)
	form := url.Values{"hosting": {"true"}}
	r, _ = http.NewRequest("POST", "/api/repos/1/edit/hosting", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: token.SessCookie, Value: sess})
	assert.Equal(t, 401, do(r).Code)

	csrf, _ := token.New(token.CsrfToken, user.Login).Sign(user.Secret)
	r, _ = http.NewRequest("POST", "/api/repos/1/edit/hosting", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("X-CSRF-TOKEN", csrf)
	r.AddCookie(&http.Cookie{Name: token.SessCookie, Value: sess})
	w = do(r)
	assert.Equal(t, 302, w.Code)
	assert.Equal(t, "/api/repos/1/edit/serve", w.Header().Get("Location"))

	r, _ = http.NewRequest("GET", "/version", nil)
	assert.Equal(t, 200, do(r).Code)
}

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
package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func serve(h gin.HandlerFunc, mw ...gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(ioutil.Discard)
	e := gin.New()
	e.Use(mw...)
	e.GET("/", h)
	w := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", "/", nil)
	e.ServeHTTP(w, r)
	return w
}

func TestExtError(t *testing.T) {
	w := serve(func(c *gin.Context) {
		c.Error(exterror.NotFound())
	}, ExtError())
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())

	w = serve(func(c *gin.Context) {
		c.Error(errors.New("boom"))
	}, ExtError())
	assert.Equal(t, 500, w.Code)

	w = serve(func(c *gin.Context) {
		c.Error(errors.New("one"))
		c.Error(errors.New("two"))
	}, ExtError())
	assert.Equal(t, 500, w.Code)
}

func TestRecovery(t *testing.T) {
	w := serve(func(c *gin.Context) {
		panic("oops")
	}, Recovery(false))
	assert.Equal(t, 500, w.Code)
	assert.Equal(t, "Internal Server Error", w.Body.String())

	w = serve(func(c *gin.Context) {
		panic("oops")
	}, Recovery(true))
	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "oops")
}

func TestVersion(t *testing.T) {
	w := serve(func(c *gin.Context) {
		c.String(200, "")
	}, Version)
	assert.NotEmpty(t, w.Header().Get("X-REPOHOST-VERSION"))
}

func TestGinrus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := logrus.New()
	logger.Out = &buf
	logger.Formatter = &logrus.JSONFormatter{}

	e := gin.New()
	e.Use(func(c *gin.Context) {
		c.Set("user", &model.User{ID: 1, Login: "john"})
	})
	e.Use(Ginrus(logger, "2006-01-02", true))
	e.GET("/api/repos/:id", func(c *gin.Context) {
		c.Error(exterror.NotFound())
		c.String(404, "Not Found")
	})
	w := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", "/api/repos/7", nil)
	e.ServeHTTP(w, r)

	entry := map[string]interface{}{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "john", entry["viewer"])
	assert.Equal(t, "7", entry["repo"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, float64(404), entry["status"])
}

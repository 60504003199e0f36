/*

SPDX-Copyright: Copyright (c) Capital One Services, LLC
SPDX-License-Identifier: Apache-2.0
Copyright 2017 Capital One Services, LLC

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
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// IndentedJSON renders obj as indented JSON without HTML escaping.
func IndentedJSON(c *gin.Context, code int, obj interface{}) {
	var buf bytes.Buffer
	e := json.NewEncoder(&buf)
	e.SetEscapeHTML(false)
	e.SetIndent("", "    ")
	if err := e.Encode(obj); err != nil {
		log.Errorf("Unable to encode response for %s %s: %s", c.Request.Method, c.Request.URL.Path, err)
		c.String(http.StatusInternalServerError, "JSON encoding error")
		return
	}
	c.Data(code, "application/json; charset=utf-8", buf.Bytes())
}

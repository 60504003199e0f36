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
package query

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/capitalone/repohost/envvars"
	"github.com/capitalone/repohost/exterror"

	"github.com/pkg/errors"
)

// Pager selects one page of a cursor paged query. After and Before are
// cursor tokens handed out with a previous page; at most one may be set.
type Pager struct {
	Limit  int
	After  string
	Before string
}

// limit clamps the requested page size to the configured bounds.
func (p Pager) limit() int {
	switch {
	case p.Limit <= 0:
		return envvars.Env.Paging.DefaultLimit
	case p.Limit > envvars.Env.Paging.MaxLimit:
		return envvars.Env.Paging.MaxLimit
	}
	return p.Limit
}

// bounds decodes the cursors into exclusive primary key bounds.
func (p Pager) bounds() (after, before int64, err error) {
	if p.After != "" && p.Before != "" {
		return 0, 0, badCursor(errors.New("only one of after and before may be given"))
	}
	if after, err = decodeCursor(p.After); err != nil {
		return 0, 0, err
	}
	if before, err = decodeCursor(p.Before); err != nil {
		return 0, 0, err
	}
	return after, before, nil
}

func encodeCursor(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

func decodeCursor(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, badCursor(err)
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, badCursor(errors.Errorf("cursor %q does not name a row", token))
	}
	return id, nil
}

func badCursor(err error) error {
	return exterror.Create(http.StatusBadRequest, errors.Wrap(err, "Invalid paging cursor"))
}

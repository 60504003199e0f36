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
package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// ServeMode describes how a repository is served over a protocol.
type ServeMode string

const (
	ServeOff       ServeMode = "off"
	ServeReadOnly  ServeMode = "readonly"
	ServeReadWrite ServeMode = "readwrite"
)

// ServeModes lists every mode in display order.
var ServeModes = []ServeMode{ServeOff, ServeReadOnly, ServeReadWrite}

// Valid reports whether m is a known serve mode.
func (m ServeMode) Valid() bool {
	switch m {
	case ServeOff, ServeReadOnly, ServeReadWrite:
		return true
	}
	return false
}

// Name is the human readable availability name of the mode.
func (m ServeMode) Name() string {
	switch m {
	case ServeOff:
		return "Off"
	case ServeReadOnly:
		return "Read Only"
	case ServeReadWrite:
		return "Read/Write"
	}
	return fmt.Sprintf("Unknown (%s)", string(m))
}

// ErrWriteNotHosted is returned when read-write serving is requested for a
// repository that is hosted elsewhere.
var ErrWriteNotHosted = errors.New("read/write serving is only available for hosted repositories")

// CheckServeMode is the single rule relating the hosting flag to a protocol
// serve mode. Both SSH and HTTP are checked with it.
func CheckServeMode(hosted bool, mode ServeMode) error {
	if !mode.Valid() {
		return errors.Errorf("unknown serve mode %q, expected one of off, readonly, readwrite", string(mode))
	}
	if mode == ServeReadWrite && !hosted {
		return ErrWriteNotHosted
	}
	return nil
}

type Repo struct {
	ID         int64     `json:"id,omitempty"        meddler:"repo_id,pk"`
	PHID       string    `json:"phid"                meddler:"repo_phid"`
	Name       string    `json:"name"                meddler:"repo_name"`
	Callsign   string    `json:"callsign"            meddler:"repo_callsign"`
	OwnerPHID  string    `json:"owner_phid"          meddler:"repo_owner_phid"`
	Hosted     bool      `json:"hosted"              meddler:"repo_hosted"`
	ServeSSH   ServeMode `json:"serve_ssh"           meddler:"repo_serve_ssh"`
	ServeHTTP  ServeMode `json:"serve_http"          meddler:"repo_serve_http"`
	ViewPolicy string    `json:"view_policy"         meddler:"repo_view_policy"`
	EditPolicy string    `json:"edit_policy"         meddler:"repo_edit_policy"`
	Created    int64     `json:"created"             meddler:"repo_created"`
	Modified   int64     `json:"modified"            meddler:"repo_modified"`
}

// GetPolicy returns the policy guarding the capability.
func (r *Repo) GetPolicy(c Capability) string {
	switch c {
	case CanView:
		return r.ViewPolicy
	case CanEdit:
		return r.EditPolicy
	}
	return PolicyNoOne
}

// Copy returns a shallow copy that can be mutated independently.
func (r *Repo) Copy() *Repo {
	cp := *r
	return &cp
}

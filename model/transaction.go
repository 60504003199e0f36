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

// Transaction types understood by the repository editor.
const (
	TxHosting      = "repo:hosting"
	TxProtocolSSH  = "repo:protocol-ssh"
	TxProtocolHTTP = "repo:protocol-http"
)

// Content source kinds.
const (
	SourceWeb     = "web"
	SourceConsole = "console"
)

// ContentSource records where a change came from.
type ContentSource struct {
	Source    string `json:"source"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Transaction is a single field change against one object. It is built per
// request, applied once by an editor and then stored as an audit record.
type Transaction struct {
	ID            int64         `json:"id"                meddler:"xaction_id,pk"`
	PHID          string        `json:"phid"              meddler:"xaction_phid"`
	ObjectPHID    string        `json:"object_phid"       meddler:"xaction_object_phid"`
	AuthorPHID    string        `json:"author_phid"       meddler:"xaction_author_phid"`
	Type          string        `json:"type"              meddler:"xaction_type"`
	OldValue      interface{}   `json:"old_value"         meddler:"xaction_old_value,json"`
	NewValue      interface{}   `json:"new_value"         meddler:"xaction_new_value,json"`
	ContentSource ContentSource `json:"content_source"    meddler:"xaction_content_source,json"`
	Implicit      bool          `json:"implicit"          meddler:"xaction_implicit"`
	Created       int64         `json:"created"           meddler:"xaction_created"`
}

// NewTransaction returns an unapplied transaction of the given type.
func NewTransaction(kind string, value interface{}) *Transaction {
	return &Transaction{Type: kind, NewValue: value}
}

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

// Capability is an action a viewer may be allowed to take on an object.
type Capability string

const (
	CanView Capability = "view"
	CanEdit Capability = "edit"
)

// Policy values. Anything else is interpreted as the PHID of the single
// user who satisfies the policy.
const (
	PolicyPublic = "public"
	PolicyUsers  = "users"
	PolicyAdmin  = "admin"
	PolicyNoOne  = "no-one"
)

// PolicyObject is implemented by everything with its own policies.
type PolicyObject interface {
	GetPolicy(Capability) string
}

// ViewEdit is the capability set required to open an edit screen.
func ViewEdit() []Capability {
	return []Capability{CanView, CanEdit}
}

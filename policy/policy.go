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
// Package policy evaluates capability policies for a viewer.
package policy

import (
	"github.com/capitalone/repohost/model"

	log "github.com/sirupsen/logrus"
)

// Passes reports whether the viewer satisfies a single policy value.
func Passes(viewer *model.User, value string) bool {
	if viewer.IsOmnipotent() {
		return true
	}
	switch value {
	case model.PolicyPublic:
		return true
	case model.PolicyUsers:
		return viewer.IsLoggedIn()
	case model.PolicyAdmin:
		return viewer.IsLoggedIn() && viewer.Admin
	case model.PolicyNoOne, "":
		return false
	default:
		return viewer.IsLoggedIn() && viewer.PHID == value
	}
}

// Has reports whether the viewer holds the capability on the object.
func Has(viewer *model.User, obj model.PolicyObject, cap model.Capability) bool {
	ok := Passes(viewer, obj.GetPolicy(cap))
	if !ok {
		log.Debugf("User %s lacks %s capability (policy %q)", viewer.Login, cap, obj.GetPolicy(cap))
	}
	return ok
}

// HasAll reports whether the viewer holds every capability on the object.
func HasAll(viewer *model.User, obj model.PolicyObject, caps []model.Capability) bool {
	for _, cap := range caps {
		if !Has(viewer, obj, cap) {
			return false
		}
	}
	return true
}

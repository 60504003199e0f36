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
	"strings"

	"github.com/google/uuid"
)

const (
	PHIDTypeUser        = "USER"
	PHIDTypeRepo        = "REPO"
	PHIDTypeTransaction = "XACT"
	PHIDTypeBuild       = "HMBD"
	PHIDTypeBuildable   = "HMBB"
	PHIDTypePlan        = "HMCP"
)

const phidRandomLen = 20

// NewPHID generates a fresh object identifier of the given type.
func NewPHID(kind string) string {
	r := strings.Replace(uuid.New().String(), "-", "", -1)
	return "PHID-" + kind + "-" + r[:phidRandomLen]
}

// PHIDType extracts the type from a PHID, or "" when it is malformed.
func PHIDType(phid string) string {
	parts := strings.SplitN(phid, "-", 3)
	if len(parts) != 3 || parts[0] != "PHID" {
		return ""
	}
	return parts[1]
}

// Rand returns a random secret suitable for signing tokens.
func Rand() string {
	return strings.Replace(uuid.New().String(), "-", "", -1)
}

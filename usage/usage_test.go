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
package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStatsCopies(t *testing.T) {
	resetStats()
	RecordApiRequest("john")
	RecordApiRequest("john")
	RecordMutation("repo:hosting")
	RecordQuery("builds")

	stats := GetStats()
	assert.Equal(t, 2, stats.Users["john"])
	assert.Equal(t, 1, stats.Mutations["repo:hosting"])
	assert.Equal(t, 1, stats.Queries["builds"])

	stats.Users["john"] = 10
	assert.Equal(t, 2, GetStats().Users["john"])
}

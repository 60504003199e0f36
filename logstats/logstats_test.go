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
package logstats

import (
	"testing"

	"github.com/capitalone/repohost/model"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	resetStats()
	RecordEdit("PHID-REPO-a", "PHID-USER-a")
	RecordEdit("PHID-REPO-a", "PHID-USER-b")
	RecordEdit("PHID-REPO-b", "")
	RecordBuildPage()

	assert.Len(t, edited, 2)
	assert.Len(t, editors, 2)
	assert.Equal(t, 1, pages)

	resetStats()
	assert.Empty(t, edited)
	assert.Equal(t, 0, pages)
}

func TestHostedAndMirrored(t *testing.T) {
	hosted, mirrored := hostedAndMirrored([]*model.Repo{
		{Hosted: true}, {Hosted: false}, {Hosted: true},
	})
	assert.Equal(t, 2, hosted)
	assert.Equal(t, 1, mirrored)
}

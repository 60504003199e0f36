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
package set

import (
	"reflect"
	"testing"
)

func TestAddContains(t *testing.T) {
	s := Empty()
	s.Add("foo")
	s.Add("bar")
	s.Add("foo")
	if !s.Contains("foo") {
		t.Error("Set is missing value 'foo'")
	}
	if !s.Contains("bar") {
		t.Error("Set is missing value 'bar'")
	}
	if s.Contains("baz") {
		t.Error("Set is not missing value 'baz'")
	}
}

func TestNonEmpty(t *testing.T) {
	s := NonEmpty("PHID-HMBB-1", "", "PHID-HMBB-1", "PHID-HMBB-2")
	if len(s) != 2 {
		t.Errorf("Expected 2 elements, got %v", s.Keys())
	}
	if s.Contains("") {
		t.Error("Set should not contain the empty string")
	}
}

func TestSorted(t *testing.T) {
	s := New("foo", "bar", "baz")
	if !reflect.DeepEqual(s.Sorted(), []string{"bar", "baz", "foo"}) {
		t.Error("Set keys are not sorted", s.Sorted())
	}
	if s.Print(",") != "bar,baz,foo" {
		t.Error("Unexpected print output", s.Print(","))
	}
	if Empty().Sorted() != nil {
		t.Error("Empty set should have nil keys")
	}
}

func TestInt64Sorted(t *testing.T) {
	s := NewInt64(3, 1, 2, 3)
	if !reflect.DeepEqual(s.Sorted(), []int64{1, 2, 3}) {
		t.Error("Int set is not sorted", s.Sorted())
	}
	if NewInt64().Sorted() != nil {
		t.Error("Empty int set should have nil keys")
	}
}

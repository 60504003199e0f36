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
	"sort"
	"strings"
)

// Set is a collection of unique strings
type Set map[string]bool

// Empty creates an empty set
func Empty() Set {
	return make(map[string]bool)
}

// New creates a new set with the provided values
func New(keys ...string) Set {
	set := Empty()
	for _, k := range keys {
		set.Add(k)
	}
	return set
}

// NonEmpty creates a set of the provided values, skipping empty strings.
func NonEmpty(keys ...string) Set {
	set := Empty()
	for _, k := range keys {
		if k != "" {
			set.Add(k)
		}
	}
	return set
}

// Add inserts an element into the set
func (s Set) Add(key string) {
	s[key] = true
}

// Contains tests whether an element is a member of the set
func (s Set) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

func (s Set) Keys() []string {
	l := len(s)
	if l == 0 {
		return nil
	}
	lst := make([]string, 0, l)
	for k := range s {
		lst = append(lst, k)
	}
	return lst
}

// Sorted returns the keys in ascending order.
func (s Set) Sorted() []string {
	lst := s.Keys()
	sort.Strings(lst)
	return lst
}

func (s Set) Print(sep string) string {
	return strings.Join(s.Sorted(), sep)
}

// Int64 is a collection of unique integers
type Int64 map[int64]bool

// NewInt64 creates a new integer set with the provided values
func NewInt64(keys ...int64) Int64 {
	set := make(Int64, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// Sorted returns the values in ascending order.
func (s Int64) Sorted() []int64 {
	if len(s) == 0 {
		return nil
	}
	lst := make([]int64, 0, len(s))
	for k := range s {
		lst = append(lst, k)
	}
	sort.Slice(lst, func(i, j int) bool {
		return lst[i] < lst[j]
	})
	return lst
}

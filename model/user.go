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

type User struct {
	ID     int64  `json:"id"          meddler:"user_id,pk"`
	PHID   string `json:"phid"        meddler:"user_phid"`
	Login  string `json:"login"       meddler:"user_login"`
	Secret string `json:"-"           meddler:"user_secret"`
	Admin  bool   `json:"admin"       meddler:"user_admin"`
	System bool   `json:"-"           meddler:"-"`
}

// Anonymous returns the viewer used for requests without a session.
func Anonymous() *User {
	return &User{Login: "anonymous"}
}

// Omnipotent returns a viewer that passes every policy check. It is only
// handed to maintenance tasks, never to request handlers.
func Omnipotent() *User {
	return &User{Login: "system", System: true}
}

// IsOmnipotent reports whether the viewer bypasses policy.
func (u *User) IsOmnipotent() bool {
	return u != nil && u.System
}

// IsLoggedIn reports whether the viewer is a real, persisted account.
func (u *User) IsLoggedIn() bool {
	return u != nil && u.ID != 0
}

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
package token

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func secret(s string) SecretFunc {
	return func(*Token) (string, error) { return s, nil }
}

func TestSignParse(t *testing.T) {
	raw, err := New(UserToken, "john").Sign("s3cr3t")
	require.NoError(t, err)

	tok, err := Parse(raw, secret("s3cr3t"))
	require.NoError(t, err)
	assert.Equal(t, UserToken, tok.Kind)
	assert.Equal(t, "john", tok.Text)

	_, err = Parse(raw, secret("other"))
	assert.Error(t, err)

	expired, _ := New(UserToken, "john").SignExpires("s3cr3t", time.Now().Add(-time.Hour).Unix())
	_, err = Parse(expired, secret("s3cr3t"))
	assert.Error(t, err)
}

func TestParseRequest(t *testing.T) {
	raw, _ := New(UserToken, "john").Sign("s3cr3t")

	r, _ := http.NewRequest("GET", "/api/user", nil)
	r.Header.Set("Authorization", "Bearer "+raw)
	tok, err := ParseRequest(r, secret("s3cr3t"))
	require.NoError(t, err)
	assert.Equal(t, "john", tok.Text)

	r, _ = http.NewRequest("GET", "/api/user?access_token="+raw, nil)
	tok, err = ParseRequest(r, secret("s3cr3t"))
	require.NoError(t, err)
	assert.Equal(t, "john", tok.Text)

	sess, _ := New(SessToken, "john").Sign("s3cr3t")
	r, _ = http.NewRequest("GET", "/api/user", nil)
	r.AddCookie(&http.Cookie{Name: SessCookie, Value: sess})
	tok, err = ParseRequest(r, secret("s3cr3t"))
	require.NoError(t, err)
	assert.Equal(t, SessToken, tok.Kind)

	r, _ = http.NewRequest("GET", "/api/user", nil)
	_, err = ParseRequest(r, secret("s3cr3t"))
	assert.Error(t, err)
}

func TestCheckCsrf(t *testing.T) {
	csrf, _ := New(CsrfToken, "john").Sign("s3cr3t")
	user, _ := New(UserToken, "john").Sign("s3cr3t")

	r, _ := http.NewRequest("GET", "/", nil)
	assert.NoError(t, CheckCsrf(r, secret("s3cr3t")))

	r, _ = http.NewRequest("POST", "/", nil)
	assert.Error(t, CheckCsrf(r, secret("s3cr3t")))

	r.Header.Set("X-CSRF-TOKEN", user)
	assert.Error(t, CheckCsrf(r, secret("s3cr3t")))

	r.Header.Set("X-CSRF-TOKEN", csrf)
	assert.NoError(t, CheckCsrf(r, secret("s3cr3t")))
}

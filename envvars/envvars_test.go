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
package envvars

import (
	"flag"
	"os"
	"testing"

	"github.com/ianschenck/envflag"
	"github.com/mspiegel/go-multierror"
)

var driver, source string

func setup() {
	envflag.EnvironmentFlags = flag.NewFlagSet("environment", flag.ExitOnError)
	driver = os.Getenv("DB_DRIVER")
	source = os.Getenv("DB_SOURCE")

	os.Unsetenv("DB_DRIVER")
	os.Unsetenv("DB_SOURCE")
}

func required() {
	os.Setenv("DB_DRIVER", "sqlite3")
	os.Setenv("DB_SOURCE", "repohost.sqlite")
}

func teardown() {
	envflag.EnvironmentFlags = flag.NewFlagSet("environment", flag.ExitOnError)
	os.Setenv("DB_DRIVER", driver)
	os.Setenv("DB_SOURCE", source)
}

func TestRequiredVars(t *testing.T) {

	setup()
	configure()

	errs, ok := Validate().(*multierror.Error)

	if !ok {
		t.Error("Validation did not return a multierror")
	}
	if len(errs.Errors) != 2 {
		t.Errorf("Expected 2 errors and %d were generated: %s", len(errs.Errors), errs.Error())
	}

	teardown()
	configure()
}

func TestUnknownDriver(t *testing.T) {
	setup()
	required()
	os.Setenv("DB_DRIVER", "oracle")
	configure()

	err := Validate()
	exp := "Environment variable DB_DRIVER 'oracle' must be one of: mysql, postgres, sqlite3"
	if err == nil || err.Error() != exp {
		t.Errorf("Driver error incorrect %v", err)
	}

	teardown()
	configure()
}

func TestSSL(t *testing.T) {

	setup()
	required()
	cert := os.Getenv("SERVER_CERT")
	key := os.Getenv("SERVER_KEY")
	os.Setenv("SERVER_CERT", "foobar")
	os.Unsetenv("SERVER_KEY")
	configure()

	err := Validate()

	if err.Error() != "Both server SSL certificate and SSL must be specified for SSL." {
		t.Error("SSL error not reported ", err.Error())
	}

	teardown()
	os.Setenv("SERVER_CERT", cert)
	os.Setenv("SERVER_KEY", key)
	configure()
}

func TestPaging(t *testing.T) {
	setup()
	required()
	os.Setenv("PAGE_DEFAULT_LIMIT", "50")
	os.Setenv("PAGE_MAX_LIMIT", "10")
	configure()

	err := Validate()
	exp := "PAGE_MAX_LIMIT 10 is smaller than PAGE_DEFAULT_LIMIT 50"
	if err == nil || err.Error() != exp {
		t.Errorf("Paging error incorrect %v", err)
	}

	os.Unsetenv("PAGE_DEFAULT_LIMIT")
	os.Unsetenv("PAGE_MAX_LIMIT")
	teardown()
	configure()
}

func TestAdminUsers(t *testing.T) {
	prev := Env.Access.AdminUsers
	Env.Access.AdminUsers = "john: paul::"
	admins := AdminUsers()
	if len(admins) != 2 || !admins.Contains("john") || !admins.Contains("paul") {
		t.Errorf("Unexpected admin set %v", admins.Keys())
	}
	Env.Access.AdminUsers = prev
}

func TestLogLevel(t *testing.T) {
	setup()
	required()
	logLevel := os.Getenv("LOG_LEVEL")
	os.Setenv("LOG_LEVEL", "foobar")
	configure()

	err := Validate()
	exp := "Environment variable LOG_LEVEL 'foobar' must be one of: 'debug', 'info', 'warn', 'error', 'fatal', 'panic'"
	if err.Error() != exp {
		t.Error("Log level error incorrect ", err.Error())
	}

	teardown()
	os.Setenv("LOG_LEVEL", logLevel)
	configure()
}

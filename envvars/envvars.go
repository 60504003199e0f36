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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/capitalone/repohost/set"

	"github.com/ianschenck/envflag"
	"github.com/mspiegel/go-multierror"
)

type EnvValues struct {
	// Server configuration
	Server struct {
		Addr string
		Cert string
		Key  string
	}
	// Database configuration
	Db struct {
		Driver     string
		Datasource string
	}
	// External (user-facing) customization
	Branding struct {
		Name      string
		ShortName string
	}
	// Logging/debug config
	Monitor struct {
		LogLevel  string
		Sunlight  bool
		UaList    string
		LogPeriod time.Duration
	}
	// Caching config
	Cache struct {
		CacheTTL time.Duration
	}
	// Build listing page sizes
	Paging struct {
		DefaultLimit int
		MaxLimit     int
	}
	// Access config
	Access struct {
		AdminUsers string
	}
}

var Env EnvValues

var logLevels = set.New("debug", "info", "warn", "error", "fatal", "panic")

var drivers = set.New("sqlite3", "postgres", "mysql")

func init() {
	configure()
}

func configure() {
	envflag.StringVar(&Env.Server.Addr, "SERVER_ADDR", ":8000", "Server ip address and port")
	envflag.StringVar(&Env.Server.Cert, "SERVER_CERT", "", "Path to SSL certificate")
	envflag.StringVar(&Env.Server.Key, "SERVER_KEY", "", "SSL certificate key")

	envflag.StringVar(&Env.Db.Driver, "DB_DRIVER", "", "One of sqlite3|postgres|mysql. Required")
	envflag.StringVar(&Env.Db.Datasource, "DB_SOURCE", "", "Database data source. Required")

	envflag.StringVar(&Env.Branding.Name, "BRANDING_NAME", "repohost", "Branding of this service")
	envflag.StringVar(&Env.Branding.ShortName, "BRANDING_SHORT_NAME", "repohost", "Abbreviated branding of this service")

	envflag.StringVar(&Env.Monitor.LogLevel, "LOG_LEVEL", "info", "One of debug|info|warn|error|fatal|panic")
	envflag.BoolVar(&Env.Monitor.Sunlight, "REPOHOST_SUNLIGHT", false, "Exposes additional endpoints")
	envflag.StringVar(&Env.Monitor.UaList, "BLACKLIST_USER_AGENTS", "", "Skip logging of these agents")
	envflag.DurationVar(&Env.Monitor.LogPeriod, "LOG_STATS_PERIOD", 0, "Period logging of statistics")

	envflag.DurationVar(&Env.Cache.CacheTTL, "CACHE_TTL", time.Minute*15, "Cache length for short lived entries")

	envflag.IntVar(&Env.Paging.DefaultLimit, "PAGE_DEFAULT_LIMIT", 100, "Default number of builds per page")
	envflag.IntVar(&Env.Paging.MaxLimit, "PAGE_MAX_LIMIT", 1000, "Largest accepted number of builds per page")

	envflag.StringVar(&Env.Access.AdminUsers, "ADMIN_USERS", "", "Colon separated logins allowed on the admin endpoints")

	envflag.Parse()

	Env.Monitor.LogLevel = strings.ToLower(Env.Monitor.LogLevel)
	Env.Db.Driver = strings.ToLower(Env.Db.Driver)
}

func Usage() {
	envflag.EnvironmentFlags.PrintDefaults()
}

// AdminUsers returns the set of logins listed in ADMIN_USERS.
func AdminUsers() set.Set {
	admins := set.Empty()
	for _, login := range strings.Split(Env.Access.AdminUsers, ":") {
		if login = strings.TrimSpace(login); login != "" {
			admins.Add(login)
		}
	}
	return admins
}

func Validate() error {
	var errs error
	if Env.Db.Driver == "" {
		err := errors.New("Missing required environment variable DB_DRIVER")
		errs = multierror.Append(errs, err)
	} else if !drivers.Contains(Env.Db.Driver) {
		err := fmt.Errorf("Environment variable DB_DRIVER '%s' must be one of: %s",
			Env.Db.Driver, drivers.Print(", "))
		errs = multierror.Append(errs, err)
	}
	if Env.Db.Datasource == "" {
		err := errors.New("Missing required environment variable DB_SOURCE")
		errs = multierror.Append(errs, err)
	}
	if (Env.Server.Cert != "" && Env.Server.Key == "") || (Env.Server.Cert == "" && Env.Server.Key != "") {
		err := errors.New("Both server SSL certificate and SSL must be specified for SSL.")
		errs = multierror.Append(errs, err)
	}
	if !logLevels.Contains(Env.Monitor.LogLevel) {
		err := fmt.Errorf("Environment variable LOG_LEVEL '%s' must be one of: %s",
			Env.Monitor.LogLevel,
			"'debug', 'info', 'warn', 'error', 'fatal', 'panic'")
		errs = multierror.Append(errs, err)
	}
	if Env.Paging.DefaultLimit < 1 {
		err := errors.New("PAGE_DEFAULT_LIMIT must be at least 1")
		errs = multierror.Append(errs, err)
	}
	if Env.Paging.MaxLimit < Env.Paging.DefaultLimit {
		err := fmt.Errorf("PAGE_MAX_LIMIT %d is smaller than PAGE_DEFAULT_LIMIT %d",
			Env.Paging.MaxLimit, Env.Paging.DefaultLimit)
		errs = multierror.Append(errs, err)
	}
	return errs
}

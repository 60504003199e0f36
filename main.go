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
package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/capitalone/repohost/envvars"
	"github.com/capitalone/repohost/logstats"
	"github.com/capitalone/repohost/migration"
	"github.com/capitalone/repohost/router"
	"github.com/capitalone/repohost/seed"
	"github.com/capitalone/repohost/shared/token"
	"github.com/capitalone/repohost/store"
	"github.com/capitalone/repohost/store/datastore"
	"github.com/capitalone/repohost/usage"
	"github.com/capitalone/repohost/version"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func setLogLevel(level string) {
	switch level {
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.Fatal("Unrecognized log level ", level)
	}
}

// setup validates the environment and opens the migrated datastore.
func setup() store.Store {
	err := envvars.Validate()
	if err != nil {
		logrus.Fatal(err)
	}

	setLogLevel(envvars.Env.Monitor.LogLevel)

	ds := datastore.Get()
	err = migration.Migrate(ds)
	if err != nil {
		logrus.Fatal(err)
	}
	return ds
}

func startService(ds store.Store) {
	logstats.Start()
	usage.Start()

	handler := router.Load(ds)

	logrus.Infof("Starting %s service on %s", envvars.Env.Branding.ShortName, time.Now().Format(time.RFC1123))

	if envvars.Env.Server.Cert != "" {
		logrus.Fatal(
			http.ListenAndServeTLS(envvars.Env.Server.Addr, envvars.Env.Server.Cert, envvars.Env.Server.Key, handler),
		)
	} else {
		logrus.Fatal(
			http.ListenAndServe(envvars.Env.Server.Addr, handler),
		)
	}
}

func printToken(ds store.Store, login string) {
	user, err := ds.GetUserLogin(login)
	if err != nil {
		logrus.Fatalf("Unable to find user %s: %s", login, err)
	}
	raw, err := token.New(token.UserToken, user.Login).Sign(user.Secret)
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Println(raw)
}

func main() {
	ver := flag.Bool("version", false, "print version")
	env := flag.Bool("env", false, "print environment variables")
	help := flag.Bool("help", false, "print help information")
	fixture := flag.String("seed", "", "load a TOML or HJSON fixture into the database and exit")
	login := flag.String("token", "", "print an API token for the user and exit")
	flag.Parse()
	switch {
	case *help:
		flag.PrintDefaults()
	case *ver:
		fmt.Println(version.Version)
	case *env:
		envvars.Usage()
	case *fixture != "":
		if err := seed.LoadFile(setup(), *fixture); err != nil {
			logrus.Fatal(err)
		}
	case *login != "":
		printToken(setup(), *login)
	default:
		startService(setup())
	}
}

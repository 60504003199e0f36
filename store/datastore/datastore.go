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
package datastore

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/capitalone/repohost/envvars"
	"github.com/capitalone/repohost/set"
	"github.com/capitalone/repohost/store"

	// bindings for meddler
	_ "github.com/go-sql-driver/mysql"
	// bindings for meddler
	_ "github.com/lib/pq"
	// bindings for meddler
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/russross/meddler"
	log "github.com/sirupsen/logrus"
)

type datastore struct {
	*sql.DB
	Migrations set.Set
	curDB      string
}

var once sync.Once
var cachedStore store.Store

func Get() store.Store {
	once.Do(func() {
		cachedStore = create(envvars.Env.Db.Driver, envvars.Env.Db.Datasource)
	})
	return cachedStore
}

// creates a database connection for the given driver and datasource
// and returns a new Store.
func create(driver, config string) store.Store {
	db, migrations := Open(driver, config)
	return From(db, migrations, driver)
}

// From returns a Store using an existing database connection.
func From(db *sql.DB, migrations set.Set, driver string) store.Store {
	return &datastore{db, migrations, driver}
}

// Open opens a new database connection with the specified
// driver and connection string and returns a store.
func Open(driver, config string) (*sql.DB, set.Set) {
	db, err := sql.Open(driver, config)
	if err != nil {
		log.Errorln(err)
		log.Fatalln("database connection failed")
	}
	if driver == SQLITE {
		// in-memory sqlite databases exist per connection
		db.SetMaxOpenConns(1)
	}
	setupMeddler(driver)

	log.Debugf("Driver %s", driver)
	log.Debugf("Data Source %s", config)

	if err = pingDatabase(db); err != nil {
		log.Errorln(err)
		log.Fatalln("database ping attempts failed")
	}

	ids, err := setupDatabase(driver, db)
	if err != nil {
		log.Errorln(err)
		log.Fatalln("migration failed")
	}
	return db, ids
}

// helper function to ping the database with backoff to ensure
// a connection can be established before we proceed with the
// database setup and migration.
func pingDatabase(db *sql.DB) (err error) {
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			return
		}
		log.Infof("database ping failed. retry in 1s. %s", err)
		time.Sleep(time.Second)
	}
	return
}

// helper function to setup the databsae by performing
// automated database migration steps.
func setupDatabase(driver string, db *sql.DB) (set.Set, error) {
	var migrations = migrationSource(driver)
	todo, _, err := migrate.PlanMigration(db, driver, migrations, migrate.Up, 0)
	if err != nil {
		return nil, err
	}
	_, err = migrate.Exec(db, driver, migrations, migrate.Up)
	if err != nil {
		return nil, err
	}
	done := set.Empty()
	for _, m := range todo {
		done.Add(m.Id)
	}
	return done, nil
}

// helper function to setup the meddler default driver
// based on the selected driver name.
func setupMeddler(driver string) {
	switch driver {
	case SQLITE:
		meddler.Default = meddler.SQLite
	case MYSQL:
		meddler.Default = meddler.MySQL
	case POSTGRES:
		meddler.Default = meddler.PostgreSQL
	}
}

const (
	POSTGRES = "postgres"
	MYSQL    = "mysql"
	SQLITE   = "sqlite3"
)

// where accumulates the conditions of a WHERE clause together with their
// bind parameters, numbering placeholders for postgres.
type where struct {
	driver string
	conds  []string
	args   []interface{}
}

func (db *datastore) where() *where {
	return &where{driver: db.curDB}
}

func (w *where) param(v interface{}) string {
	w.args = append(w.args, v)
	if w.driver == POSTGRES {
		return fmt.Sprintf("$%d", len(w.args))
	}
	return "?"
}

// add appends a condition; each %s in cond is replaced by a placeholder
// bound to the matching value.
func (w *where) add(cond string, values ...interface{}) {
	ps := make([]interface{}, len(values))
	for i, v := range values {
		ps[i] = w.param(v)
	}
	w.conds = append(w.conds, fmt.Sprintf(cond, ps...))
}

// in appends "column IN (...)". An empty value list adds nothing.
func (w *where) in(column string, values []interface{}) {
	if len(values) == 0 {
		return
	}
	ps := make([]string, len(values))
	for i, v := range values {
		ps[i] = w.param(v)
	}
	w.conds = append(w.conds, fmt.Sprintf("%s IN (%s)", column, strings.Join(ps, ",")))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

func strArgs(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func intArgs(items []int64) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// chunk bounds the number of bind parameters of a single IN query.
const chunk = 500

// byPHIDs loads every row of table whose column matches one of the phids,
// querying in chunks. dst must be a pointer to a slice of struct pointers.
func (db *datastore) byPHIDs(dst interface{}, table, column string, phids []string) error {
	uniq := set.NonEmpty(phids...).Sorted()
	for len(uniq) > 0 {
		n := len(uniq)
		if n > chunk {
			n = chunk
		}
		w := db.where()
		w.in(column, strArgs(uniq[:n]))
		stmt := fmt.Sprintf("SELECT * FROM %s %s", table, w)
		part := reflect.New(reflect.TypeOf(dst).Elem())
		if err := meddler.QueryAll(db, part.Interface(), stmt, w.args...); err != nil {
			return err
		}
		all := reflect.ValueOf(dst).Elem()
		all.Set(reflect.AppendSlice(all, part.Elem()))
		uniq = uniq[n:]
	}
	return nil
}

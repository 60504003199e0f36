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
	"strings"

	migrate "github.com/rubenv/sql-migrate"
)

// column types per driver, substituted into the statements below.
var dialects = map[string]*strings.Replacer{
	SQLITE: strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{varchar}}", "TEXT",
		"{{text}}", "TEXT",
		"{{bigint}}", "INTEGER",
		"{{false}}", "0",
	),
	MYSQL: strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTO_INCREMENT",
		"{{varchar}}", "VARCHAR(255)",
		"{{text}}", "MEDIUMTEXT",
		"{{bigint}}", "BIGINT",
		"{{false}}", "FALSE",
	),
	POSTGRES: strings.NewReplacer(
		"{{pk}}", "SERIAL PRIMARY KEY",
		"{{varchar}}", "VARCHAR(255)",
		"{{text}}", "TEXT",
		"{{bigint}}", "BIGINT",
		"{{false}}", "FALSE",
	),
}

type step struct {
	id   string
	up   []string
	down []string
}

var steps = []step{
	{
		id: "001_create_table_users_repos.sql",
		up: []string{`
CREATE TABLE users (
 user_id     {{pk}}
,user_login  {{varchar}}
,user_secret {{varchar}}
,user_admin  BOOLEAN
,UNIQUE(user_login)
)`, `
CREATE TABLE repos (
 repo_id          {{pk}}
,repo_name        {{varchar}}
,repo_callsign    {{varchar}}
,repo_owner_phid  {{varchar}}
,repo_view_policy {{varchar}}
,repo_edit_policy {{varchar}}
,repo_created     {{bigint}}
,repo_modified    {{bigint}}
,UNIQUE(repo_callsign)
)`,
		},
		down: []string{"DROP TABLE repos", "DROP TABLE users"},
	},
	{
		id: "002_phid.sql",
		up: []string{
			"ALTER TABLE users ADD COLUMN user_phid {{varchar}}",
			"ALTER TABLE repos ADD COLUMN repo_phid {{varchar}}",
			"CREATE UNIQUE INDEX ix_user_phid ON users (user_phid)",
			"CREATE UNIQUE INDEX ix_repo_phid ON repos (repo_phid)",
		},
	},
	{
		id: "003_hosting.sql",
		up: []string{
			"ALTER TABLE repos ADD COLUMN repo_hosted BOOLEAN",
			"ALTER TABLE repos ADD COLUMN repo_serve_ssh {{varchar}}",
			"ALTER TABLE repos ADD COLUMN repo_serve_http {{varchar}}",
			"UPDATE repos SET repo_hosted = {{false}}, repo_serve_ssh = 'off', repo_serve_http = 'off'",
			`
CREATE TABLE repo_transactions (
 xaction_id             {{pk}}
,xaction_phid           {{varchar}}
,xaction_object_phid    {{varchar}}
,xaction_author_phid    {{varchar}}
,xaction_type           {{varchar}}
,xaction_old_value      {{text}}
,xaction_new_value      {{text}}
,xaction_content_source {{text}}
,xaction_implicit       BOOLEAN
,xaction_created        {{bigint}}
,UNIQUE(xaction_phid)
)`,
			"CREATE INDEX ix_xaction_object ON repo_transactions (xaction_object_phid)",
		},
		down: []string{"DROP TABLE repo_transactions"},
	},
	{
		id: "004_create_table_builds.sql",
		up: []string{`
CREATE TABLE build_plans (
 plan_id          {{pk}}
,plan_phid        {{varchar}}
,plan_name        {{varchar}}
,plan_status      {{varchar}}
,plan_view_policy {{varchar}}
,plan_edit_policy {{varchar}}
,plan_created     {{bigint}}
,UNIQUE(plan_phid)
)`, `
CREATE TABLE buildables (
 buildable_id        {{pk}}
,buildable_phid      {{varchar}}
,buildable_repo_phid {{varchar}}
,buildable_ref       {{varchar}}
,buildable_manual    BOOLEAN
,buildable_created   {{bigint}}
,UNIQUE(buildable_phid)
)`, `
CREATE TABLE builds (
 build_id             {{pk}}
,build_phid           {{varchar}}
,build_buildable_phid {{varchar}}
,build_plan_phid      {{varchar}}
,build_status         {{varchar}}
,build_created        {{bigint}}
,build_modified       {{bigint}}
,UNIQUE(build_phid)
)`,
			"CREATE INDEX ix_build_buildable ON builds (build_buildable_phid)",
			"CREATE INDEX ix_build_plan ON builds (build_plan_phid)",
		},
		down: []string{"DROP TABLE builds", "DROP TABLE buildables", "DROP TABLE build_plans"},
	},
}

// migrationSource renders the schema history for one driver.
func migrationSource(driver string) migrate.MigrationSource {
	r, ok := dialects[driver]
	if !ok {
		r = dialects[SQLITE]
	}
	src := &migrate.MemoryMigrationSource{}
	for _, s := range steps {
		m := &migrate.Migration{Id: s.id}
		for _, stmt := range s.up {
			m.Up = append(m.Up, r.Replace(stmt))
		}
		for _, stmt := range s.down {
			m.Down = append(m.Down, r.Replace(stmt))
		}
		src.Migrations = append(src.Migrations, m)
	}
	return src
}

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
package migration

import (
	"context"

	"github.com/capitalone/repohost/editor"
	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/store"

	"github.com/mspiegel/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Migrate performs any store operations necessary after a database
// migration.
func Migrate(s store.Store) error {
	var errs error
	ids := s.GetMigrations()
	if ids.Contains("002_phid.sql") {
		errs = multierror.Append(errs, assignPHIDs(s))
	}
	if ids.Contains("003_hosting.sql") {
		errs = multierror.Append(errs, repairServeModes(s))
	}
	return errs
}

func assignPHIDs(s store.Store) error {
	log.Info("Applying 002_phid.sql migrations")
	count, err := s.AssignPHIDs()
	if err != nil {
		return errors.Wrap(err, "Assigning PHIDs")
	}
	log.Infof("Applied 002_phid.sql migrations to %d rows", count)
	return nil
}

// repairServeModes lowers read-write serving on repositories that are not
// hosted. Changes go through the editor so they are audited.
func repairServeModes(s store.Store) error {
	log.Info("Applying 003_hosting.sql migrations")
	c := context.WithValue(context.Background(), "store", s)
	repos, err := s.GetAllRepos()
	if err != nil {
		return err
	}
	e := &editor.Repo{
		Actor:              model.Omnipotent(),
		ContentSource:      model.ContentSource{Source: model.SourceConsole},
		ContinueOnNoEffect: true,
	}
	count := 0
	for _, repo := range repos {
		if repo.Hosted {
			continue
		}
		var xactions []*model.Transaction
		if repo.ServeSSH == model.ServeReadWrite {
			xactions = append(xactions, model.NewTransaction(model.TxProtocolSSH, string(model.ServeReadOnly)))
		}
		if repo.ServeHTTP == model.ServeReadWrite {
			xactions = append(xactions, model.NewTransaction(model.TxProtocolHTTP, string(model.ServeReadOnly)))
		}
		if len(xactions) == 0 {
			continue
		}
		if _, err = e.Apply(c, repo, xactions); err != nil {
			log.Warnf("Unable to update repo %s: %s", repo.Callsign, err)
			continue
		}
		count++
	}
	log.Infof("Applied 003_hosting.sql migrations to %d out of a total %d repos", count, len(repos))
	return nil
}

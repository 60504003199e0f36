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
// Package editor applies transactions to objects. It is the only code that
// mutates a repository after creation and the single place its invariants
// are enforced.
package editor

import (
	"context"
	"fmt"

	"github.com/capitalone/repohost/exterror"
	"github.com/capitalone/repohost/logstats"
	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/store"

	"github.com/mspiegel/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNoEffect is reported when every transaction in a batch leaves the
// repository as it was and the editor does not continue on no effect.
var ErrNoEffect = errors.New("Transactions have no effect")

// Repo applies repository transactions on behalf of an actor.
type Repo struct {
	Actor              *model.User
	ContentSource      model.ContentSource
	ContinueOnNoEffect bool
}

// Apply validates the batch, drops transactions without effect and
// persists the remaining ones together with the new repository state in one
// database transaction. The caller's repo is updated only after the write
// succeeds. The applied transactions are returned, including implicit ones.
func (e *Repo) Apply(c context.Context, repo *model.Repo, xactions []*model.Transaction) ([]*model.Transaction, error) {
	if err := e.validate(repo, xactions); err != nil {
		return nil, exterror.Invalid(err)
	}

	effective := []*model.Transaction{}
	for _, x := range xactions {
		if x.OldValue == x.NewValue {
			log.Debugf("Dropping %s transaction on %s, value is already %v", x.Type, repo.PHID, x.NewValue)
			continue
		}
		effective = append(effective, x)
	}
	if len(effective) == 0 {
		if e.ContinueOnNoEffect {
			return nil, nil
		}
		return nil, exterror.Invalid(ErrNoEffect)
	}

	next := repo.Copy()
	for _, x := range effective {
		apply(next, x)
	}
	effective = append(effective, demote(repo, next, xactions)...)

	var errs error
	if err := model.CheckServeMode(next.Hosted, next.ServeSSH); err != nil {
		errs = multierror.Append(errs, errors.Wrap(err, "SSH"))
	}
	if err := model.CheckServeMode(next.Hosted, next.ServeHTTP); err != nil {
		errs = multierror.Append(errs, errors.Wrap(err, "HTTP"))
	}
	if errs != nil {
		return nil, exterror.Invalid(errs)
	}

	for _, x := range effective {
		x.AuthorPHID = e.Actor.PHID
		x.ContentSource = e.ContentSource
	}
	if err := store.ApplyRepoTransactions(c, next, effective); err != nil {
		return nil, err
	}
	*repo = *next

	logstats.RecordEdit(repo.PHID, e.Actor.PHID)
	log.Debugf("User %s applied %d transactions to repository %s", e.Actor.Login, len(effective), repo.PHID)
	return effective, nil
}

// validate checks transaction types and values and records old values.
func (e *Repo) validate(repo *model.Repo, xactions []*model.Transaction) error {
	var errs error
	if len(xactions) == 0 {
		errs = multierror.Append(errs, errors.New("No transactions to apply"))
	}
	seen := map[string]bool{}
	for _, x := range xactions {
		if seen[x.Type] {
			errs = multierror.Append(errs, errors.Errorf("Duplicate %s transaction", x.Type))
			continue
		}
		seen[x.Type] = true
		switch x.Type {
		case model.TxHosting:
			v, ok := x.NewValue.(bool)
			if !ok {
				errs = multierror.Append(errs, errors.Errorf("Hosting must be true or false, got %v", x.NewValue))
				continue
			}
			x.OldValue, x.NewValue = repo.Hosted, v
		case model.TxProtocolSSH:
			mode, err := serveMode(x.NewValue)
			if err != nil {
				errs = multierror.Append(errs, errors.Wrap(err, "SSH"))
				continue
			}
			x.OldValue, x.NewValue = string(repo.ServeSSH), string(mode)
		case model.TxProtocolHTTP:
			mode, err := serveMode(x.NewValue)
			if err != nil {
				errs = multierror.Append(errs, errors.Wrap(err, "HTTP"))
				continue
			}
			x.OldValue, x.NewValue = string(repo.ServeHTTP), string(mode)
		default:
			errs = multierror.Append(errs, errors.Errorf("Unknown transaction type %q", x.Type))
		}
	}
	return errs
}

func serveMode(value interface{}) (model.ServeMode, error) {
	var mode model.ServeMode
	switch v := value.(type) {
	case string:
		mode = model.ServeMode(v)
	case model.ServeMode:
		mode = v
	default:
		return "", fmt.Errorf("serve mode must be a string, got %T", value)
	}
	if !mode.Valid() {
		return "", errors.Errorf("unknown serve mode %q, expected one of off, readonly, readwrite", string(mode))
	}
	return mode, nil
}

func apply(repo *model.Repo, x *model.Transaction) {
	switch x.Type {
	case model.TxHosting:
		repo.Hosted = x.NewValue.(bool)
	case model.TxProtocolSSH:
		repo.ServeSSH = model.ServeMode(x.NewValue.(string))
	case model.TxProtocolHTTP:
		repo.ServeHTTP = model.ServeMode(x.NewValue.(string))
	}
}

// demote lowers read-write protocols to read-only when hosting is turned off
// and the batch leaves that protocol alone. Each change is recorded as an
// implicit transaction.
func demote(prev, next *model.Repo, xactions []*model.Transaction) []*model.Transaction {
	if !prev.Hosted || next.Hosted {
		return nil
	}
	explicit := map[string]bool{}
	for _, x := range xactions {
		explicit[x.Type] = true
	}
	var implicit []*model.Transaction
	if next.ServeSSH == model.ServeReadWrite && !explicit[model.TxProtocolSSH] {
		next.ServeSSH = model.ServeReadOnly
		implicit = append(implicit, demotion(model.TxProtocolSSH))
	}
	if next.ServeHTTP == model.ServeReadWrite && !explicit[model.TxProtocolHTTP] {
		next.ServeHTTP = model.ServeReadOnly
		implicit = append(implicit, demotion(model.TxProtocolHTTP))
	}
	return implicit
}

func demotion(kind string) *model.Transaction {
	x := model.NewTransaction(kind, string(model.ServeReadOnly))
	x.OldValue = string(model.ServeReadWrite)
	x.Implicit = true
	return x
}

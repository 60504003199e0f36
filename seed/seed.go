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
// Package seed loads fixtures of users, repositories and builds into a
// store. Fixtures are written in TOML or HJSON.
package seed

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/store"

	"github.com/hjson/hjson-go"
	"github.com/mspiegel/go-multierror"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type User struct {
	Login string `json:"login"`
	Admin bool   `json:"admin"`
}

type Repo struct {
	Name       string `json:"name"`
	Callsign   string `json:"callsign"`
	Owner      string `json:"owner"`
	Hosted     bool   `json:"hosted"`
	SSH        string `json:"ssh"`
	HTTP       string `json:"http"`
	ViewPolicy string `json:"view_policy"`
	EditPolicy string `json:"edit_policy"`
}

type Plan struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	ViewPolicy string `json:"view_policy"`
	EditPolicy string `json:"edit_policy"`
}

// Buildable is keyed by Name so that builds can refer to it.
type Buildable struct {
	Name   string `json:"name"`
	Repo   string `json:"repo"`
	Ref    string `json:"ref"`
	Manual bool   `json:"manual"`
}

type Build struct {
	Buildable string `json:"buildable"`
	Plan      string `json:"plan"`
	Status    string `json:"status"`
}

type Fixture struct {
	Users      []*User      `json:"users"`
	Repos      []*Repo      `json:"repos"`
	Plans      []*Plan      `json:"plans"`
	Buildables []*Buildable `json:"buildables"`
	Builds     []*Build     `json:"builds"`
}

// Parse decodes a fixture. The format is chosen by the file extension:
// .toml for TOML, anything else for HJSON (which includes plain JSON).
func Parse(name string, data []byte) (*Fixture, error) {
	var raw map[string]interface{}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		tree, err := toml.Load(string(data))
		if err != nil {
			return nil, errors.Wrapf(err, "Parsing %s", name)
		}
		raw = tree.ToMap()
	default:
		if err := hjson.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(err, "Parsing %s", name)
		}
	}
	// round trip through JSON to reuse the struct tags
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	f := new(Fixture)
	if err = json.Unmarshal(b, f); err != nil {
		return nil, errors.Wrapf(err, "Decoding %s", name)
	}
	return f, nil
}

// LoadFile parses the named fixture and loads it into the store.
func LoadFile(s store.Store, name string) error {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return err
	}
	f, err := Parse(name, data)
	if err != nil {
		return err
	}
	return Load(s, f)
}

type loader struct {
	store      store.Store
	users      map[string]*model.User
	repos      map[string]*model.Repo
	plans      map[string]*model.BuildPlan
	buildables map[string]*model.Buildable
}

// Load creates every object of the fixture. Objects that refer to unknown
// names or break repository invariants are skipped and reported; the rest
// are still created.
func Load(s store.Store, f *Fixture) error {
	l := &loader{
		store:      s,
		users:      map[string]*model.User{},
		repos:      map[string]*model.Repo{},
		plans:      map[string]*model.BuildPlan{},
		buildables: map[string]*model.Buildable{},
	}
	var errs error
	for _, u := range f.Users {
		errs = multierror.Append(errs, l.user(u))
	}
	for _, r := range f.Repos {
		errs = multierror.Append(errs, l.repo(r))
	}
	for _, p := range f.Plans {
		errs = multierror.Append(errs, l.plan(p))
	}
	for _, b := range f.Buildables {
		errs = multierror.Append(errs, l.buildable(b))
	}
	for _, b := range f.Builds {
		errs = multierror.Append(errs, l.build(b))
	}
	log.Infof("Seeded %d users, %d repositories, %d plans, %d buildables and %d builds",
		len(l.users), len(l.repos), len(l.plans), len(l.buildables), len(f.Builds))
	return errs
}

// policy resolves a policy value, accepting a user login in place of a PHID.
func (l *loader) policy(value, def string) string {
	switch value {
	case "":
		return def
	case model.PolicyPublic, model.PolicyUsers, model.PolicyAdmin, model.PolicyNoOne:
		return value
	}
	if u, ok := l.users[value]; ok {
		return u.PHID
	}
	return value
}

func (l *loader) user(u *User) error {
	if u.Login == "" {
		return errors.New("User without login")
	}
	user, err := l.store.GetUserLogin(u.Login)
	if err != nil {
		user = &model.User{Login: u.Login, Admin: u.Admin}
		if err = l.store.CreateUser(user); err != nil {
			return errors.Wrapf(err, "Creating user %s", u.Login)
		}
	}
	l.users[u.Login] = user
	return nil
}

func (l *loader) repo(r *Repo) error {
	if r.Callsign == "" {
		return errors.Errorf("Repository %q without callsign", r.Name)
	}
	repo := &model.Repo{
		Name:       r.Name,
		Callsign:   r.Callsign,
		Hosted:     r.Hosted,
		ServeSSH:   model.ServeMode(r.SSH),
		ServeHTTP:  model.ServeMode(r.HTTP),
		ViewPolicy: l.policy(r.ViewPolicy, model.PolicyUsers),
		EditPolicy: l.policy(r.EditPolicy, model.PolicyAdmin),
	}
	if repo.ServeSSH == "" {
		repo.ServeSSH = model.ServeOff
	}
	if repo.ServeHTTP == "" {
		repo.ServeHTTP = model.ServeOff
	}
	if owner, ok := l.users[r.Owner]; ok {
		repo.OwnerPHID = owner.PHID
	}
	var errs error
	if err := model.CheckServeMode(repo.Hosted, repo.ServeSSH); err != nil {
		errs = multierror.Append(errs, errors.Wrapf(err, "Repository %s SSH", r.Callsign))
	}
	if err := model.CheckServeMode(repo.Hosted, repo.ServeHTTP); err != nil {
		errs = multierror.Append(errs, errors.Wrapf(err, "Repository %s HTTP", r.Callsign))
	}
	if errs != nil {
		return errs
	}
	if err := l.store.CreateRepo(repo); err != nil {
		return errors.Wrapf(err, "Creating repository %s", r.Callsign)
	}
	l.repos[r.Callsign] = repo
	return nil
}

func (l *loader) plan(p *Plan) error {
	plan := &model.BuildPlan{
		Name:       p.Name,
		Status:     p.Status,
		ViewPolicy: l.policy(p.ViewPolicy, model.PolicyUsers),
		EditPolicy: l.policy(p.EditPolicy, model.PolicyAdmin),
	}
	if err := l.store.CreatePlan(plan); err != nil {
		return errors.Wrapf(err, "Creating plan %s", p.Name)
	}
	l.plans[p.Name] = plan
	return nil
}

func (l *loader) buildable(b *Buildable) error {
	repo, ok := l.repos[b.Repo]
	if !ok {
		return errors.Errorf("Buildable %s refers to unknown repository %q", b.Name, b.Repo)
	}
	buildable := &model.Buildable{RepoPHID: repo.PHID, Ref: b.Ref, Manual: b.Manual}
	if err := l.store.CreateBuildable(buildable); err != nil {
		return errors.Wrapf(err, "Creating buildable %s", b.Name)
	}
	l.buildables[b.Name] = buildable
	return nil
}

func (l *loader) build(b *Build) error {
	build := &model.Build{Status: b.Status}
	if b.Buildable != "" {
		buildable, ok := l.buildables[b.Buildable]
		if !ok {
			return errors.Errorf("Build refers to unknown buildable %q", b.Buildable)
		}
		build.BuildablePHID = buildable.PHID
	}
	if b.Plan != "" {
		plan, ok := l.plans[b.Plan]
		if !ok {
			return errors.Errorf("Build refers to unknown plan %q", b.Plan)
		}
		build.BuildPlanPHID = plan.PHID
	}
	return errors.Wrap(l.store.CreateBuild(build), "Creating build")
}

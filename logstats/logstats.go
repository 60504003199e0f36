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
package logstats

import (
	"sync"
	"time"

	"github.com/capitalone/repohost/envvars"
	"github.com/capitalone/repohost/model"
	"github.com/capitalone/repohost/set"
	"github.com/capitalone/repohost/store/datastore"

	log "github.com/sirupsen/logrus"
)

var (
	lock    = sync.Mutex{}
	edited  = set.Empty()
	editors = set.Empty()
	pages   = 0
)

// RecordEdit notes that a repository was changed by a user.
func RecordEdit(repo string, user string) {
	lock.Lock()
	edited.Add(repo)
	if user != "" {
		editors.Add(user)
	}
	lock.Unlock()
}

// RecordBuildPage notes that a page of builds was served.
func RecordBuildPage() {
	lock.Lock()
	pages++
	lock.Unlock()
}

func resetStats() {
	edited = set.Empty()
	editors = set.Empty()
	pages = 0
}

func hostedAndMirrored(repos []*model.Repo) (int, int) {
	var hosted, mirrored int
	for _, repo := range repos {
		if repo.Hosted {
			hosted++
		} else {
			mirrored++
		}
	}
	return hosted, mirrored
}

func writeLog() {
	s := datastore.Get()
	repos, err := s.GetAllRepos()
	if err != nil {
		log.Error("Periodic logging unable to fetch repository list", err)
	} else {
		hosted, mirrored := hostedAndMirrored(repos)
		log.Infof("Hosting %d repositories", hosted)
		log.Infof("Mirroring %d repositories", mirrored)
	}
	builds, err := s.CountBuilds()
	if err != nil {
		log.Error("Periodic logging unable to count builds", err)
	} else {
		log.Infof("Tracking %d builds", builds)
	}
	log.Infof("Edited %d repositories in last period", len(edited))
	log.Infof("Accepted edits from %d users in last period", len(editors))
	log.Infof("Served %d build pages in last period", pages)
}

func logTask() {
	period := envvars.Env.Monitor.LogPeriod
	if period == 0 {
		return
	}
	t := time.NewTicker(period)
	for {
		lock.Lock()
		writeLog()
		resetStats()
		lock.Unlock()
		<-t.C
	}
}

func Start() {
	go logTask()
}

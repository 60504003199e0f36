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
package usage

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var lock = sync.Mutex{}

type Usage struct {
	Users     map[string]int `json:"users"`
	Mutations map[string]int `json:"mutations"`
	Queries   map[string]int `json:"queries"`
}

var data Usage

func init() {
	data = createUsage()
}

func createUsage() Usage {
	return Usage{
		Users:     make(map[string]int),
		Mutations: make(map[string]int),
		Queries:   make(map[string]int),
	}
}

// RecordApiRequest counts one authenticated request by the user.
func RecordApiRequest(user string) {
	lock.Lock()
	data.Users[user]++
	lock.Unlock()
}

// RecordMutation counts one applied transaction of the given type.
func RecordMutation(kind string) {
	lock.Lock()
	data.Mutations[kind]++
	lock.Unlock()
}

// RecordQuery counts one executed query.
func RecordQuery(name string) {
	lock.Lock()
	data.Queries[name]++
	lock.Unlock()
}

func copyMap(dst, src map[string]int) {
	for k, v := range src {
		dst[k] = v
	}
}

func GetStats() Usage {
	stats := createUsage()
	lock.Lock()
	copyMap(stats.Users, data.Users)
	copyMap(stats.Mutations, data.Mutations)
	copyMap(stats.Queries, data.Queries)
	lock.Unlock()
	return stats
}

func writeLog() {
	log.Info("Usage statistics for the past hour")
	for k, v := range data.Users {
		log.Infof("User %s : %d api requests", k, v)
	}
	for k, v := range data.Mutations {
		log.Infof("Transaction %s : %d applied", k, v)
	}
	for k, v := range data.Queries {
		log.Infof("Query %s : %d executed", k, v)
	}
}

func resetStats() {
	data = createUsage()
}

func usageTask() {
	wait := 60 - time.Now().Minute()
	timer := time.NewTimer(time.Duration(wait) * time.Minute)
	<-timer.C
	ticker := time.NewTicker(time.Hour)
	for {
		lock.Lock()
		writeLog()
		resetStats()
		lock.Unlock()
		<-ticker.C
	}
}

func Start() {
	go usageTask()
}

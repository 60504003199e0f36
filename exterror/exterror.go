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
package exterror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/mspiegel/go-multierror"
	log "github.com/sirupsen/logrus"
)

// ExtError is an error carrying the HTTP status it should be reported with.
type ExtError struct {
	Status int
	Err    error
}

func (e ExtError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Status)
	}
	return e.Err.Error()
}

func Create(status int, err error) ExtError {
	return ExtError{Status: status, Err: err}
}

// errNotFound is shared by every lookup so that a missing object and an
// object the viewer may not see produce the same response.
var errNotFound = errors.New("Not Found")

// NotFound is returned when an object does not exist or is not visible.
func NotFound() ExtError {
	return ExtError{Status: http.StatusNotFound, Err: errNotFound}
}

// IsNotFound reports whether err converts to a 404.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	v, ok := err.(ExtError)
	return ok && v.Status == http.StatusNotFound
}

// Invalid wraps one or more validation problems as a 400 error.
func Invalid(errs error) ExtError {
	return ExtError{Status: http.StatusBadRequest, Err: errs}
}

// Messages flattens an error into the list of individual messages, expanding
// multierrors.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if v, ok := err.(ExtError); ok {
		err = v.Err
	}
	if m, ok := err.(*multierror.Error); ok {
		var out []string
		for _, e := range m.Errors {
			out = append(out, Messages(e)...)
		}
		return out
	}
	if err == nil {
		return nil
	}
	return []string{err.Error()}
}

func Append(prev error, head string) error {
	prevMsg := prev.Error()
	if len(prevMsg) == 0 {
		return errors.New(head)
	}
	newMsg := fmt.Errorf("%s. %s", head, prevMsg)
	switch v := prev.(type) {
	case ExtError:
		if v.Status == http.StatusNotFound {
			// keep the body of 404s identical for every caller
			return v
		}
		return Create(v.Status, newMsg)
	case *multierror.Error:
		// flatten the multierror to retrieve the http response
		ext := Convert(v)
		return Create(ext.Status, newMsg)
	default:
		return newMsg
	}
}

func Convert(err error) ExtError {
	switch v := err.(type) {
	case ExtError:
		log.Debugf("No conversion necessary for ExtError %s", err.Error())
		return v
	case *multierror.Error:
		log.Debugf("Multierror conversion for %s", err.Error())
		return convertMultiError(v)
	default:
		log.Errorf("Automatic promotion to 500 response for %s", reflect.TypeOf(err).String())
		return ExtError{Status: http.StatusInternalServerError, Err: err}
	}
}

func allExtError(errs *multierror.Error) bool {
	if len(errs.Errors) == 0 {
		return false
	}
	for _, e := range errs.Errors {
		if _, ok := e.(ExtError); !ok {
			return false
		}
	}
	return true
}

func allRangeStatus(errs *multierror.Error, low int, high int) bool {
	for _, e := range errs.Errors {
		status := e.(ExtError).Status
		if (status < low) || (status >= high) {
			return false
		}
	}
	return true
}

func convertMultiError(errs *multierror.Error) ExtError {
	status := http.StatusInternalServerError
	if !allExtError(errs) {
		return ExtError{Status: status, Err: errs}
	}
	first := errs.Errors[0].(ExtError).Status
	if allRangeStatus(errs, first, first+1) {
		status = first
	} else if allRangeStatus(errs, 400, 500) {
		status = http.StatusBadRequest
	}
	return ExtError{Status: status, Err: errs}
}

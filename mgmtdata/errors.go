// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtdata

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/diffeo/go-bossmgmt/mgmt"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body, or the request is otherwise
// invalid.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// StatusFor returns the HTTP status code a server should send for err.
// Errors implementing ErrorStatus choose their own; missing objects are
// 404; name conflicts, invalid names, and non-empty collections are
// 400; anything else is 500.
func StatusFor(err error) int {
	if errS, hasStatus := err.(ErrorStatus); hasStatus {
		return errS.HTTPStatus()
	}
	switch err.(type) {
	case mgmt.ErrNoSuchCollection, mgmt.ErrNoSuchExperiment,
		mgmt.ErrNoSuchChannel, mgmt.ErrNoSuchCoord, mgmt.ErrNoSuchKey:
		return http.StatusNotFound
	case mgmt.ErrAlreadyExists, mgmt.ErrNotEmpty, mgmt.ErrBadName:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// FromError populates an ErrorResponse to fill in its fields based
// on an error value.  This remaps the well-known mgmt errors to
// specific e.Error codes.
func (e *ErrorResponse) FromError(err error) {
	if e.Message == "" {
		e.Message = err.Error()
	}
	switch et := err.(type) {
	case mgmt.ErrNoSuchCollection:
		e.Error = "ErrNoSuchCollection"
		e.Value = et.Name
	case mgmt.ErrNoSuchExperiment:
		e.Error = "ErrNoSuchExperiment"
		e.Value = et.Collection + "/" + et.Name
	case mgmt.ErrNoSuchChannel:
		e.Error = "ErrNoSuchChannel"
		e.Value = et.Collection + "/" + et.Experiment + "/" + et.Name
	case mgmt.ErrNoSuchCoord:
		e.Error = "ErrNoSuchCoord"
		e.Value = et.Name
	case mgmt.ErrNoSuchKey:
		e.Error = "ErrNoSuchKey"
		e.Value = et.Key
	case mgmt.ErrAlreadyExists:
		e.Error = "ErrAlreadyExists"
		e.Value = et.Kind + "/" + et.Name
	case mgmt.ErrNotEmpty:
		e.Error = "ErrNotEmpty"
		e.Value = et.Name
	case mgmt.ErrBadName:
		e.Error = "ErrBadName"
		e.Value = et.Name
	case ErrNotFound:
		// Discard this wrapper and return the embedded error
		e.FromError(et.Err)
	case ErrBadRequest:
		e.FromError(et.Err)
	default:
		if err == mgmt.ErrNoAPIRoot {
			e.Error = "ErrNoAPIRoot"
		}
	}
}

// ToError converts e back to an mgmt error, if that is possible.
// If not, returns a plain error with e.Message text.
func (e *ErrorResponse) ToError() error {
	parts := strings.SplitN(e.Value, "/", 3)
	switch e.Error {
	case "ErrNoSuchCollection":
		return mgmt.ErrNoSuchCollection{Name: e.Value}
	case "ErrNoSuchExperiment":
		if len(parts) >= 2 {
			return mgmt.ErrNoSuchExperiment{Collection: parts[0], Name: strings.Join(parts[1:], "/")}
		}
	case "ErrNoSuchChannel":
		if len(parts) == 3 {
			return mgmt.ErrNoSuchChannel{Collection: parts[0], Experiment: parts[1], Name: parts[2]}
		}
	case "ErrNoSuchCoord":
		return mgmt.ErrNoSuchCoord{Name: e.Value}
	case "ErrNoSuchKey":
		return mgmt.ErrNoSuchKey{Key: e.Value}
	case "ErrAlreadyExists":
		if len(parts) >= 2 {
			return mgmt.ErrAlreadyExists{Kind: parts[0], Name: strings.Join(parts[1:], "/")}
		}
	case "ErrNotEmpty":
		return mgmt.ErrNotEmpty{Name: e.Value}
	case "ErrBadName":
		return mgmt.ErrBadName{Name: e.Value}
	case "ErrNoAPIRoot":
		return mgmt.ErrNoAPIRoot
	}
	return errors.New(e.Message)
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//     defer func() {
//         if obj := recover(); obj != nil {
//             resp := mgmtdata.ErrorResponse{}
//             resp.FromPanic(obj)
//             // write resp out as makes sense
//         }
//     }()
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Error = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Message = recoveredError.Error()
	} else {
		e.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}

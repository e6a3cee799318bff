// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mgmtdata defines the JSON representations exchanged between
// the mgmtserver and mgmtclient packages.
//
// API Usage
//
// Every URL below is relative to a single API root, which always ends
// in a slash.  Names in URL paths are percent-encoded path segments.
//
//     GET    collection                           CollectionList
//     GET    collection/{c}                       Collection
//     POST   collection/{c}                       Collection (201)
//     DELETE collection/{c}                       (204)
//     GET    collection/{c}/experiment/{e}        Experiment
//     POST   collection/{c}/experiment/{e}        Experiment (201)
//     DELETE collection/{c}/experiment/{e}        (204)
//     POST   collection/{c}/experiment/{e}/channel/{ch}   Channel (201)
//     GET    coord                                CoordList
//     GET    coord/{name}                         Coord
//     POST   coord/{name}                         Coord (201)
//     DELETE coord/{name}                         (204)
//     GET    meta/{c}[/{e}[/{ch}]]                MetaKeyList
//     GET    meta/{c}[/{e}[/{ch}]]?key=k          MetaValue
//     POST   meta/{c}[/{e}[/{ch}]]?key=k&value=v  (201)
//     PUT    meta/{c}[/{e}[/{ch}]]?key=k&value=v  (200)
//     DELETE meta/{c}[/{e}[/{ch}]]?key=k          (204)
//
// A collection cannot be deleted while it still has experiments.
// Creating something that already exists is a 400 Bad Request, as is
// a metadata POST or PUT without both key and value.
//
// Errors
//
// Failures are returned as a non-2xx status with an ErrorResponse
// body.  The well-known errors of the mgmt package round-trip through
// ErrorResponse.FromError and ErrorResponse.ToError.
package mgmtdata

import "time"

// JSONMediaType is the media type of every request and response body.
const JSONMediaType = "application/json; charset=utf-8"

// Resource is the common part of single-object representations.
type Resource struct {
	// Name is the name of the object.
	Name string `json:"name"`

	// Created is the time the object was created.
	Created time.Time `json:"created"`
}

// CollectionList is returned by GET collection.
type CollectionList struct {
	Collections []string `json:"collections"`
}

// Collection is returned by GET collection/{c}.
type Collection struct {
	Resource

	// Experiments holds the names of the experiments in the
	// collection.
	Experiments []string `json:"experiments"`
}

// Experiment is returned by GET collection/{c}/experiment/{e}.
type Experiment struct {
	Resource

	// Collection is the name of the parent collection.
	Collection string `json:"collection"`

	// Channels holds the names of the channels in the experiment.
	Channels []string `json:"channels"`
}

// Channel is returned when a channel is created.
type Channel struct {
	Resource
	Collection string `json:"collection"`
	Experiment string `json:"experiment"`
}

// CoordList is returned by GET coord.
type CoordList struct {
	Coords []string `json:"coords"`
}

// Coord is returned by GET coord/{name}.
type Coord struct {
	Resource
}

// MetaKeyList is returned by GET meta/... without a key.
type MetaKeyList struct {
	Keys []string `json:"keys"`
}

// MetaValue is returned by GET meta/...?key=k.
type MetaValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ErrorResponse is returned as the body of a failed request.
type ErrorResponse struct {
	// Error is a short description of the failure.  This may be
	// the name of an mgmt API error, the string "panic", or the
	// string "error" for some other kind of error.
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Value is an extra parameter to the error if applicable.
	Value string `json:"value,omitempty"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}

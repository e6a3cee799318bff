// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmt

import (
	"errors"
	"fmt"
)

// ErrNoAPIRoot is returned when a client or formatter is asked to
// build URLs without a configured API root.
var ErrNoAPIRoot = errors.New("No API root configured")

// ErrNoSuchCollection is returned by Store functions that look up a
// collection that does not exist.
type ErrNoSuchCollection struct {
	Name string
}

func (err ErrNoSuchCollection) Error() string {
	return fmt.Sprintf("No such collection %v", err.Name)
}

// ErrNoSuchExperiment is returned by Store functions that look up an
// experiment that does not exist.
type ErrNoSuchExperiment struct {
	Collection string
	Name       string
}

func (err ErrNoSuchExperiment) Error() string {
	return fmt.Sprintf("No such experiment %v in collection %v", err.Name, err.Collection)
}

// ErrNoSuchChannel is returned by Store functions that look up a
// channel that does not exist.
type ErrNoSuchChannel struct {
	Collection string
	Experiment string
	Name       string
}

func (err ErrNoSuchChannel) Error() string {
	return fmt.Sprintf("No such channel %v in %v/%v", err.Name, err.Collection, err.Experiment)
}

// ErrNoSuchCoord is returned by Store functions that look up a
// coordinate frame that does not exist.
type ErrNoSuchCoord struct {
	Name string
}

func (err ErrNoSuchCoord) Error() string {
	return fmt.Sprintf("No such coordinate frame %v", err.Name)
}

// ErrNoSuchKey is returned by metadata functions when the key is not
// set on the object.
type ErrNoSuchKey struct {
	Key string
}

func (err ErrNoSuchKey) Error() string {
	return fmt.Sprintf("Key %v not found", err.Key)
}

// ErrAlreadyExists is returned when creating something whose name is
// already taken.  Kind is "collection", "experiment", "channel",
// "coord", or "key".
type ErrAlreadyExists struct {
	Kind string
	Name string
}

func (err ErrAlreadyExists) Error() string {
	return fmt.Sprintf("The %v %v already exists", err.Kind, err.Name)
}

// ErrNotEmpty is returned by Store.DeleteCollection() if the
// collection still has experiments.
type ErrNotEmpty struct {
	Name string
}

func (err ErrNotEmpty) Error() string {
	return fmt.Sprintf("Collection %v still has experiments", err.Name)
}

// ErrBadName is returned when creating something with a name that is
// not a valid resource name.
type ErrBadName struct {
	Name string
}

func (err ErrBadName) Error() string {
	return fmt.Sprintf("Invalid resource name %q", err.Name)
}

// ValidName checks whether name can be used for a collection,
// experiment, channel, or coordinate frame: a non-empty string of
// ASCII letters, digits, hyphens, and underscores.
func ValidName(name string) error {
	if name == "" {
		return ErrBadName{Name: name}
	}
	for _, c := range name {
		switch {
		case c == '-', c == '_',
			(c >= 'a' && c <= 'z'),
			(c >= 'A' && c <= 'Z'),
			(c >= '0' && c <= '9'):
			continue
		default:
			return ErrBadName{Name: name}
		}
	}
	return nil
}

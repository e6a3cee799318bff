// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package backend provides a standard way to construct a management
// store based on command-line flags.
package backend

import (
	"errors"
	"strings"

	"github.com/diffeo/go-bossmgmt/memory"
	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/postgres"
)

// Backend describes user-visible parameters to store management data.
// This implements the flag.Value interface, and so a typical use is
//
//     func main() {
//         backend := backend.Backend{Implementation: "memory"}
//         flag.Var(&backend, "backend", "impl:address of resource storage")
//         flag.Parse()
//         store, err := backend.Store()
//     }
type Backend struct {
	// Implementation holds the name of the implementation; for
	// instance, "memory".
	Implementation string

	// Address holds some backend-specific address, such as a
	// database connect string.
	Address string
}

// Store creates a new store.  This generally should be only called
// once.  If the backend has in-process state, such as a database
// connection pool or an in-memory store, calling this multiple times
// will create multiple copies of that state.  In particular, if
// b.Implementation is "memory", multiple calls to this will create
// multiple independent stores.
func (b *Backend) Store() (mgmt.Store, error) {
	switch b.Implementation {
	case "memory":
		return memory.New(), nil
	case "postgres":
		return postgres.New(b.Address)
	default:
		return nil, errors.New("unknown store backend " + b.Implementation)
	}
}

// String renders a backend description as a string.
func (b *Backend) String() string {
	if b.Address == "" {
		return b.Implementation
	}
	return b.Implementation + ":" + b.Address
}

// Set parses a string into an existing backend description.  The
// string should be of the form "implementation:address", where
// address can be any string.  Set checks to see if the provided
// implementation is any of the known implementations, and returns an
// appropriate error if not.
//
// This is part of the flag.Value interface.  Note that neither this
// function nor Store() attempts to validate the b.Address part of the
// string until a connection is made.
func (b *Backend) Set(param string) error {
	if param == "" {
		return errors.New("must specify a backend type")
	}
	parts := strings.SplitN(param, ":", 2)
	switch parts[0] {
	case "memory", "postgres":
	default:
		return errors.New("unknown store backend " + parts[0])
	}
	b.Implementation = parts[0]
	b.Address = ""
	if len(parts) > 1 {
		b.Address = parts[1]
	}
	return nil
}

// UnmarshalText parses a backend description from a configuration
// file, in the same form as Set().
func (b *Backend) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}

// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mgmttest provides generic functional tests for the
// mgmt.Store interface.  A typical backend test module needs to wrap
// Suite to create its backend:
//
//     package mybackend
//
//     import (
//             "testing"
//             "github.com/diffeo/go-bossmgmt/mgmt/mgmttest"
//             "github.com/stretchr/testify/suite"
//     )
//
//     // Suite is the per-backend generic test suite.
//     type Suite struct{
//             mgmttest.Suite
//     }
//
//     // SetupTest creates a fresh store for each test.
//     func (s *Suite) SetupTest() {
//             s.Store = NewWithClock(s.Clock)
//     }
//
//     // TestStore runs the Store generic tests.
//     func TestStore(t *testing.T) {
//             suite.Run(t, &Suite{})
//     }
//
// Every test expects to start from an empty store.
package mgmttest

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/stretchr/testify/suite"
)

// Suite is the generic Store backend test suite.
type Suite struct {
	suite.Suite

	// Clock contains the alternate time source to be used in tests.  It
	// is pre-initialized to a mock clock.
	Clock *clock.Mock

	// Store contains the backend under test.  It is set by
	// importing packages.
	Store mgmt.Store
}

// SetupSuite does one-time initialization for the test suite.
func (s *Suite) SetupSuite() {
	s.Clock = clock.NewMock()
	s.Clock.Set(time.Date(2018, time.January, 2, 3, 4, 5, 0, time.UTC))
}

// CreateTree creates a collection, an experiment in it, and a channel
// in that, failing the test if any step fails.
func (s *Suite) CreateTree(ref mgmt.ResourceRef) {
	_, err := s.Store.CreateCollection(ref.Collection)
	s.Require().NoError(err)
	if ref.Experiment == "" {
		return
	}
	_, err = s.Store.CreateExperiment(ref.Collection, ref.Experiment)
	s.Require().NoError(err)
	if ref.Channel == "" {
		return
	}
	_, err = s.Store.CreateChannel(ref.Collection, ref.Experiment, ref.Channel)
	s.Require().NoError(err)
}

// SameTime asserts that two times are the same instant, ignoring
// sub-microsecond precision that some backends do not store.
func (s *Suite) SameTime(expected, actual time.Time) bool {
	return s.WithinDuration(expected, actual, time.Microsecond)
}

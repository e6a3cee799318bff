// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmttest

import (
	"time"

	"github.com/diffeo/go-bossmgmt/mgmt"
)

// TestCollectionLifetime creates, lists, fetches, and deletes a
// single collection.
func (s *Suite) TestCollectionLifetime() {
	names, err := s.Store.Collections()
	if s.NoError(err) {
		s.Empty(names)
	}

	_, err = s.Store.Collection("col")
	s.Equal(mgmt.ErrNoSuchCollection{Name: "col"}, err)

	now := s.Clock.Now()
	res, err := s.Store.CreateCollection("col")
	if s.NoError(err) {
		s.Equal("col", res.Name)
		s.SameTime(now, res.Created)
	}

	s.Clock.Add(time.Minute)
	res, err = s.Store.Collection("col")
	if s.NoError(err) {
		s.Equal("col", res.Name)
		s.SameTime(now, res.Created)
	}

	names, err = s.Store.Collections()
	if s.NoError(err) {
		s.Equal([]string{"col"}, names)
	}

	err = s.Store.DeleteCollection("col")
	s.NoError(err)

	_, err = s.Store.Collection("col")
	s.Equal(mgmt.ErrNoSuchCollection{Name: "col"}, err)

	err = s.Store.DeleteCollection("col")
	s.Equal(mgmt.ErrNoSuchCollection{Name: "col"}, err)
}

// TestCollectionsSorted checks that collections are listed in
// lexicographic order regardless of creation order.
func (s *Suite) TestCollectionsSorted() {
	for _, name := range []string{"c2", "a", "c10", "b"} {
		_, err := s.Store.CreateCollection(name)
		s.Require().NoError(err)
	}
	names, err := s.Store.Collections()
	if s.NoError(err) {
		s.Equal([]string{"a", "b", "c10", "c2"}, names)
	}
}

// TestCollectionDuplicate checks that a collection name can only be
// used once.
func (s *Suite) TestCollectionDuplicate() {
	_, err := s.Store.CreateCollection("col")
	s.Require().NoError(err)
	_, err = s.Store.CreateCollection("col")
	s.Equal(mgmt.ErrAlreadyExists{Kind: "collection", Name: "col"}, err)
}

// TestBadNames checks that invalid names are rejected for every kind
// of resource.
func (s *Suite) TestBadNames() {
	for _, name := range []string{"", "a b", "a/b", "a&b", "café"} {
		_, err := s.Store.CreateCollection(name)
		s.Equal(mgmt.ErrBadName{Name: name}, err, "collection %q", name)

		_, err = s.Store.CreateCoord(name)
		s.Equal(mgmt.ErrBadName{Name: name}, err, "coord %q", name)
	}

	s.CreateTree(mgmt.ResourceRef{Collection: "col", Experiment: "exp"})
	_, err := s.Store.CreateExperiment("col", "bad name")
	s.Equal(mgmt.ErrBadName{Name: "bad name"}, err)
	_, err = s.Store.CreateChannel("col", "exp", "bad/name")
	s.Equal(mgmt.ErrBadName{Name: "bad/name"}, err)
}

// TestCollectionNotEmpty checks that a collection cannot be deleted
// while it has experiments.
func (s *Suite) TestCollectionNotEmpty() {
	s.CreateTree(mgmt.ResourceRef{Collection: "col", Experiment: "exp"})

	err := s.Store.DeleteCollection("col")
	s.Equal(mgmt.ErrNotEmpty{Name: "col"}, err)

	err = s.Store.DeleteExperiment("col", "exp")
	s.NoError(err)

	err = s.Store.DeleteCollection("col")
	s.NoError(err)
}

// TestExperimentLifetime creates, lists, and deletes experiments and
// channels.
func (s *Suite) TestExperimentLifetime() {
	_, err := s.Store.Experiments("col")
	s.Equal(mgmt.ErrNoSuchCollection{Name: "col"}, err)
	_, err = s.Store.CreateExperiment("col", "exp")
	s.Equal(mgmt.ErrNoSuchCollection{Name: "col"}, err)

	s.CreateTree(mgmt.ResourceRef{Collection: "col"})

	names, err := s.Store.Experiments("col")
	if s.NoError(err) {
		s.Empty(names)
	}

	_, err = s.Store.Experiment("col", "exp")
	s.Equal(mgmt.ErrNoSuchExperiment{Collection: "col", Name: "exp"}, err)

	for _, name := range []string{"exp2", "exp1"} {
		res, err := s.Store.CreateExperiment("col", name)
		if s.NoError(err) {
			s.Equal(name, res.Name)
		}
	}
	_, err = s.Store.CreateExperiment("col", "exp1")
	s.Equal(mgmt.ErrAlreadyExists{Kind: "experiment", Name: "exp1"}, err)

	names, err = s.Store.Experiments("col")
	if s.NoError(err) {
		s.Equal([]string{"exp1", "exp2"}, names)
	}

	res, err := s.Store.Experiment("col", "exp1")
	if s.NoError(err) {
		s.Equal("exp1", res.Name)
	}

	_, err = s.Store.CreateChannel("col", "exp1", "ch1")
	s.NoError(err)
	_, err = s.Store.CreateChannel("col", "exp1", "ch1")
	s.Equal(mgmt.ErrAlreadyExists{Kind: "channel", Name: "ch1"}, err)
	_, err = s.Store.CreateChannel("col", "nope", "ch1")
	s.Equal(mgmt.ErrNoSuchExperiment{Collection: "col", Name: "nope"}, err)

	names, err = s.Store.Channels("col", "exp1")
	if s.NoError(err) {
		s.Equal([]string{"ch1"}, names)
	}

	err = s.Store.DeleteExperiment("col", "exp1")
	s.NoError(err)
	err = s.Store.DeleteExperiment("col", "exp1")
	s.Equal(mgmt.ErrNoSuchExperiment{Collection: "col", Name: "exp1"}, err)

	// Recreating the experiment must not resurrect its channels
	_, err = s.Store.CreateExperiment("col", "exp1")
	s.Require().NoError(err)
	names, err = s.Store.Channels("col", "exp1")
	if s.NoError(err) {
		s.Empty(names)
	}
}

// TestCoordLifetime creates, lists, and deletes coordinate frames.
func (s *Suite) TestCoordLifetime() {
	names, err := s.Store.Coords()
	if s.NoError(err) {
		s.Empty(names)
	}

	now := s.Clock.Now()
	for _, name := range []string{"frame_b", "frame_a"} {
		res, err := s.Store.CreateCoord(name)
		if s.NoError(err) {
			s.Equal(name, res.Name)
			s.SameTime(now, res.Created)
		}
	}
	_, err = s.Store.CreateCoord("frame_a")
	s.Equal(mgmt.ErrAlreadyExists{Kind: "coord", Name: "frame_a"}, err)

	names, err = s.Store.Coords()
	if s.NoError(err) {
		s.Equal([]string{"frame_a", "frame_b"}, names)
	}

	res, err := s.Store.Coord("frame_b")
	if s.NoError(err) {
		s.Equal("frame_b", res.Name)
	}

	err = s.Store.DeleteCoord("frame_b")
	s.NoError(err)
	_, err = s.Store.Coord("frame_b")
	s.Equal(mgmt.ErrNoSuchCoord{Name: "frame_b"}, err)
	err = s.Store.DeleteCoord("frame_b")
	s.Equal(mgmt.ErrNoSuchCoord{Name: "frame_b"}, err)

	names, err = s.Store.Coords()
	if s.NoError(err) {
		s.Equal([]string{"frame_a"}, names)
	}
}

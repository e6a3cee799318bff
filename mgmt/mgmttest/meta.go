// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmttest

import (
	"github.com/diffeo/go-bossmgmt/mgmt"
)

// TestMetaLifetime runs a single key through create, update, and
// delete on a collection, an experiment, and a channel.
func (s *Suite) TestMetaLifetime() {
	s.CreateTree(mgmt.ResourceRef{Collection: "col", Experiment: "exp", Channel: "ch"})

	for _, ref := range []mgmt.ResourceRef{
		{Collection: "col"},
		{Collection: "col", Experiment: "exp"},
		{Collection: "col", Experiment: "exp", Channel: "ch"},
	} {
		keys, err := s.Store.MetaKeys(ref)
		if s.NoError(err) {
			s.Empty(keys)
		}

		_, err = s.Store.Meta(ref, "key")
		s.Equal(mgmt.ErrNoSuchKey{Key: "key"}, err)

		err = s.Store.UpdateMeta(ref, "key", "value")
		s.Equal(mgmt.ErrNoSuchKey{Key: "key"}, err)

		err = s.Store.CreateMeta(ref, "key", "value")
		s.NoError(err)

		err = s.Store.CreateMeta(ref, "key", "other")
		s.Equal(mgmt.ErrAlreadyExists{Kind: "key", Name: "key"}, err)

		value, err := s.Store.Meta(ref, "key")
		if s.NoError(err) {
			s.Equal("value", value)
		}

		err = s.Store.UpdateMeta(ref, "key", "new value")
		s.NoError(err)

		value, err = s.Store.Meta(ref, "key")
		if s.NoError(err) {
			s.Equal("new value", value)
		}

		keys, err = s.Store.MetaKeys(ref)
		if s.NoError(err) {
			s.Equal([]string{"key"}, keys)
		}

		err = s.Store.DeleteMeta(ref, "key")
		s.NoError(err)

		err = s.Store.DeleteMeta(ref, "key")
		s.Equal(mgmt.ErrNoSuchKey{Key: "key"}, err)
	}
}

// TestMetaIndependent checks that metadata on a collection is not
// visible on its experiments, and the reverse.
func (s *Suite) TestMetaIndependent() {
	col := mgmt.ResourceRef{Collection: "col"}
	exp := mgmt.ResourceRef{Collection: "col", Experiment: "exp"}
	s.CreateTree(exp)

	s.Require().NoError(s.Store.CreateMeta(col, "owner", "alice"))
	s.Require().NoError(s.Store.CreateMeta(exp, "zeta", "1"))
	s.Require().NoError(s.Store.CreateMeta(exp, "alpha", "2"))

	keys, err := s.Store.MetaKeys(col)
	if s.NoError(err) {
		s.Equal([]string{"owner"}, keys)
	}

	keys, err = s.Store.MetaKeys(exp)
	if s.NoError(err) {
		s.Equal([]string{"alpha", "zeta"}, keys)
	}

	_, err = s.Store.Meta(exp, "owner")
	s.Equal(mgmt.ErrNoSuchKey{Key: "owner"}, err)
}

// TestMetaNoObject checks metadata operations on objects that do not
// exist.
func (s *Suite) TestMetaNoObject() {
	_, err := s.Store.MetaKeys(mgmt.ResourceRef{Collection: "col"})
	s.Equal(mgmt.ErrNoSuchCollection{Name: "col"}, err)

	s.CreateTree(mgmt.ResourceRef{Collection: "col"})

	ref := mgmt.ResourceRef{Collection: "col", Experiment: "exp"}
	err = s.Store.CreateMeta(ref, "key", "value")
	s.Equal(mgmt.ErrNoSuchExperiment{Collection: "col", Name: "exp"}, err)

	_, err = s.Store.CreateExperiment("col", "exp")
	s.Require().NoError(err)

	ref.Channel = "ch"
	_, err = s.Store.Meta(ref, "key")
	s.Equal(mgmt.ErrNoSuchChannel{Collection: "col", Experiment: "exp", Name: "ch"}, err)
}

// TestMetaDeletedWithObject checks that deleting an object removes
// its metadata, so a new object of the same name starts clean.
func (s *Suite) TestMetaDeletedWithObject() {
	ch := mgmt.ResourceRef{Collection: "col", Experiment: "exp", Channel: "ch"}
	exp := mgmt.ResourceRef{Collection: "col", Experiment: "exp"}
	col := mgmt.ResourceRef{Collection: "col"}
	s.CreateTree(ch)
	s.Require().NoError(s.Store.CreateMeta(ch, "k", "v"))
	s.Require().NoError(s.Store.CreateMeta(exp, "k", "v"))
	s.Require().NoError(s.Store.CreateMeta(col, "k", "v"))

	s.Require().NoError(s.Store.DeleteExperiment("col", "exp"))
	s.Require().NoError(s.Store.DeleteCollection("col"))

	s.CreateTree(ch)
	for _, ref := range []mgmt.ResourceRef{col, exp, ch} {
		keys, err := s.Store.MetaKeys(ref)
		if s.NoError(err) {
			s.Empty(keys, "%+v", ref)
		}
	}
}

// TestMetaValues checks that arbitrary keys and values survive
// storage unchanged.
func (s *Suite) TestMetaValues() {
	ref := mgmt.ResourceRef{Collection: "col"}
	s.CreateTree(ref)

	values := map[string]string{
		"a b":   "",
		"a&b=c": "x&y=z",
		"path":  "/a/b?c#d",
		"utf8":  "café ☃",
	}
	for key, value := range values {
		s.Require().NoError(s.Store.CreateMeta(ref, key, value))
	}
	for key, value := range values {
		actual, err := s.Store.Meta(ref, key)
		if s.NoError(err, key) {
			s.Equal(value, actual, key)
		}
	}
}

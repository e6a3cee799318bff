// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"sort"

	"github.com/diffeo/go-bossmgmt/mgmt"
)

// checkRef verifies that the object ref names exists.  The caller
// must hold the store lock.
func (s *memStore) checkRef(ref mgmt.ResourceRef) error {
	if ref.Experiment == "" {
		_, err := s.findCollection(ref.Collection)
		return err
	}
	e, err := s.findExperiment(ref.Collection, ref.Experiment)
	if err != nil || ref.Channel == "" {
		return err
	}
	if _, present := e.channels[ref.Channel]; !present {
		return mgmt.ErrNoSuchChannel{
			Collection: ref.Collection,
			Experiment: ref.Experiment,
			Name:       ref.Channel,
		}
	}
	return nil
}

// metaFor returns the metadata map for ref, which may be nil.
func (s *memStore) metaFor(ref mgmt.ResourceRef) (map[string]string, error) {
	if err := s.checkRef(ref); err != nil {
		return nil, err
	}
	return s.meta[ref.LookupKey()], nil
}

func (s *memStore) MetaKeys(ref mgmt.ResourceRef) (keys []string, err error) {
	err = s.do(func() error {
		meta, err := s.metaFor(ref)
		if err != nil {
			return err
		}
		keys = make([]string, 0, len(meta))
		for key := range meta {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return nil
	})
	return
}

func (s *memStore) Meta(ref mgmt.ResourceRef, key string) (value string, err error) {
	err = s.do(func() error {
		meta, err := s.metaFor(ref)
		if err != nil {
			return err
		}
		var present bool
		value, present = meta[key]
		if !present {
			return mgmt.ErrNoSuchKey{Key: key}
		}
		return nil
	})
	return
}

func (s *memStore) CreateMeta(ref mgmt.ResourceRef, key, value string) error {
	return s.do(func() error {
		meta, err := s.metaFor(ref)
		if err != nil {
			return err
		}
		if _, present := meta[key]; present {
			return mgmt.ErrAlreadyExists{Kind: "key", Name: key}
		}
		if meta == nil {
			meta = make(map[string]string)
			s.meta[ref.LookupKey()] = meta
		}
		meta[key] = value
		return nil
	})
}

func (s *memStore) UpdateMeta(ref mgmt.ResourceRef, key, value string) error {
	return s.do(func() error {
		meta, err := s.metaFor(ref)
		if err != nil {
			return err
		}
		if _, present := meta[key]; !present {
			return mgmt.ErrNoSuchKey{Key: key}
		}
		meta[key] = value
		return nil
	})
}

func (s *memStore) DeleteMeta(ref mgmt.ResourceRef, key string) error {
	return s.do(func() error {
		meta, err := s.metaFor(ref)
		if err != nil {
			return err
		}
		if _, present := meta[key]; !present {
			return mgmt.ErrNoSuchKey{Key: key}
		}
		delete(meta, key)
		return nil
	})
}

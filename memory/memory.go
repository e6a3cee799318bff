// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// the mgmt.Store interface.  There is no persistence, nor is there any
// automatic sharing.  The entire store is behind a single mutex to
// protect against concurrent updates.
//
// This is mostly intended as a simple reference implementation that
// can be used for testing, including in-process testing of the REST
// server and client.
package memory

import (
	"sort"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-bossmgmt/mgmt"
)

// New creates a new empty store that operates purely in memory.
func New() mgmt.Store {
	return NewWithClock(clock.New())
}

// NewWithClock creates a new empty store using an explicit time
// source for creation times.  This is intended for tests.
func NewWithClock(clk clock.Clock) mgmt.Store {
	return &memStore{
		clock:       clk,
		collections: make(map[string]*collection),
		coords:      make(map[string]mgmt.Resource),
		meta:        make(map[string]map[string]string),
	}
}

type collection struct {
	mgmt.Resource
	experiments map[string]*experiment
}

type experiment struct {
	mgmt.Resource
	channels map[string]mgmt.Resource
}

type memStore struct {
	lock        sync.Mutex
	clock       clock.Clock
	collections map[string]*collection
	coords      map[string]mgmt.Resource

	// meta maps a lookup key to that object's metadata.
	meta map[string]map[string]string
}

// do runs f holding the store lock.
func (s *memStore) do(f func() error) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return f()
}

func (s *memStore) newResource(name string) (mgmt.Resource, error) {
	if err := mgmt.ValidName(name); err != nil {
		return mgmt.Resource{}, err
	}
	return mgmt.Resource{Name: name, Created: s.clock.Now()}, nil
}

// sortedKeys returns the keys of any map with string keys, sorted.
func sortedKeys(n int, each func(func(string))) []string {
	names := make([]string, 0, n)
	each(func(name string) { names = append(names, name) })
	sort.Strings(names)
	return names
}

func (s *memStore) findCollection(name string) (*collection, error) {
	c, present := s.collections[name]
	if !present {
		return nil, mgmt.ErrNoSuchCollection{Name: name}
	}
	return c, nil
}

func (s *memStore) findExperiment(coll, name string) (*experiment, error) {
	c, err := s.findCollection(coll)
	if err != nil {
		return nil, err
	}
	e, present := c.experiments[name]
	if !present {
		return nil, mgmt.ErrNoSuchExperiment{Collection: coll, Name: name}
	}
	return e, nil
}

// dropMeta removes the metadata of the object with lookup key
// prefix and everything beneath it.
func (s *memStore) dropMeta(prefix string) {
	delete(s.meta, prefix)
	for key := range s.meta {
		if len(key) > len(prefix) && key[:len(prefix)+1] == prefix+"&" {
			delete(s.meta, key)
		}
	}
}

// mgmt.Store interface:

func (s *memStore) Collections() (names []string, err error) {
	err = s.do(func() error {
		names = sortedKeys(len(s.collections), func(f func(string)) {
			for name := range s.collections {
				f(name)
			}
		})
		return nil
	})
	return
}

func (s *memStore) Collection(name string) (res mgmt.Resource, err error) {
	err = s.do(func() error {
		c, err := s.findCollection(name)
		if err == nil {
			res = c.Resource
		}
		return err
	})
	return
}

func (s *memStore) CreateCollection(name string) (res mgmt.Resource, err error) {
	err = s.do(func() error {
		if _, present := s.collections[name]; present {
			return mgmt.ErrAlreadyExists{Kind: "collection", Name: name}
		}
		res, err = s.newResource(name)
		if err == nil {
			s.collections[name] = &collection{
				Resource:    res,
				experiments: make(map[string]*experiment),
			}
		}
		return err
	})
	return
}

func (s *memStore) DeleteCollection(name string) error {
	return s.do(func() error {
		c, err := s.findCollection(name)
		if err != nil {
			return err
		}
		if len(c.experiments) > 0 {
			return mgmt.ErrNotEmpty{Name: name}
		}
		delete(s.collections, name)
		s.dropMeta(mgmt.ResourceRef{Collection: name}.LookupKey())
		return nil
	})
}

func (s *memStore) Experiments(coll string) (names []string, err error) {
	err = s.do(func() error {
		c, err := s.findCollection(coll)
		if err != nil {
			return err
		}
		names = sortedKeys(len(c.experiments), func(f func(string)) {
			for name := range c.experiments {
				f(name)
			}
		})
		return nil
	})
	return
}

func (s *memStore) Experiment(coll, name string) (res mgmt.Resource, err error) {
	err = s.do(func() error {
		e, err := s.findExperiment(coll, name)
		if err == nil {
			res = e.Resource
		}
		return err
	})
	return
}

func (s *memStore) CreateExperiment(coll, name string) (res mgmt.Resource, err error) {
	err = s.do(func() error {
		c, err := s.findCollection(coll)
		if err != nil {
			return err
		}
		if _, present := c.experiments[name]; present {
			return mgmt.ErrAlreadyExists{Kind: "experiment", Name: name}
		}
		res, err = s.newResource(name)
		if err == nil {
			c.experiments[name] = &experiment{
				Resource: res,
				channels: make(map[string]mgmt.Resource),
			}
		}
		return err
	})
	return
}

func (s *memStore) DeleteExperiment(coll, name string) error {
	return s.do(func() error {
		c, err := s.findCollection(coll)
		if err != nil {
			return err
		}
		if _, present := c.experiments[name]; !present {
			return mgmt.ErrNoSuchExperiment{Collection: coll, Name: name}
		}
		delete(c.experiments, name)
		s.dropMeta(mgmt.ResourceRef{Collection: coll, Experiment: name}.LookupKey())
		return nil
	})
}

func (s *memStore) Channels(coll, exp string) (names []string, err error) {
	err = s.do(func() error {
		e, err := s.findExperiment(coll, exp)
		if err != nil {
			return err
		}
		names = sortedKeys(len(e.channels), func(f func(string)) {
			for name := range e.channels {
				f(name)
			}
		})
		return nil
	})
	return
}

func (s *memStore) CreateChannel(coll, exp, name string) (res mgmt.Resource, err error) {
	err = s.do(func() error {
		e, err := s.findExperiment(coll, exp)
		if err != nil {
			return err
		}
		if _, present := e.channels[name]; present {
			return mgmt.ErrAlreadyExists{Kind: "channel", Name: name}
		}
		res, err = s.newResource(name)
		if err == nil {
			e.channels[name] = res
		}
		return err
	})
	return
}

func (s *memStore) Coords() (names []string, err error) {
	err = s.do(func() error {
		names = sortedKeys(len(s.coords), func(f func(string)) {
			for name := range s.coords {
				f(name)
			}
		})
		return nil
	})
	return
}

func (s *memStore) Coord(name string) (res mgmt.Resource, err error) {
	err = s.do(func() error {
		var present bool
		res, present = s.coords[name]
		if !present {
			return mgmt.ErrNoSuchCoord{Name: name}
		}
		return nil
	})
	return
}

func (s *memStore) CreateCoord(name string) (res mgmt.Resource, err error) {
	err = s.do(func() error {
		if _, present := s.coords[name]; present {
			return mgmt.ErrAlreadyExists{Kind: "coord", Name: name}
		}
		res, err = s.newResource(name)
		if err == nil {
			s.coords[name] = res
		}
		return err
	})
	return
}

func (s *memStore) DeleteCoord(name string) error {
	return s.do(func() error {
		if _, present := s.coords[name]; !present {
			return mgmt.ErrNoSuchCoord{Name: name}
		}
		delete(s.coords, name)
		return nil
	})
}

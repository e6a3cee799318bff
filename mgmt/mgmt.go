// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mgmt defines the data model shared by the management console
// and its REST backend.
//
// The console lists four kinds of resources: collections, the
// experiments within a collection, coordinate frames, and metadata
// key/value entries attached to a collection, experiment, or channel.
// A list is fetched from the REST API (see the mgmtclient package),
// and each returned name is turned into a Row by FormatRows.  Each
// row carries structured Action values rather than markup; RenderActions
// turns those into HTML.
//
// Nothing here reads global browser state.  The location of the page
// that is displaying a list is passed around explicitly as a
// PageContext.
//
// The Store interface is the storage side of the same model.  The
// memory and postgres packages implement it, and the mgmtserver
// package publishes it as the REST API the console consumes.
package mgmt

import "time"

// ResourceKind identifies one of the kinds of resource the console
// can list.  It determines the URL shape used to fetch the list and
// the actions attached to each row.
type ResourceKind int

const (
	// Collection is a top-level container of experiments.
	Collection ResourceKind = iota

	// Experiment lives inside a collection.  The parent collection
	// is expressed only through URL structure.
	Experiment

	// Coord is a coordinate frame.
	Coord

	// Metadata is a key/value entry attached to a collection,
	// experiment, or channel.
	Metadata
)

// AllKinds lists every resource kind, in display order.
var AllKinds = []ResourceKind{Collection, Experiment, Coord, Metadata}

// ListField returns the name of the field in a list response that
// holds the array of names for this kind.
func (kind ResourceKind) ListField() string {
	switch kind {
	case Collection:
		return "collections"
	case Experiment:
		return "experiments"
	case Coord:
		return "coords"
	case Metadata:
		return "keys"
	}
	return ""
}

// PrimaryField returns the name of the table column holding the
// item identifier.
func (kind ResourceKind) PrimaryField() string {
	if kind == Metadata {
		return "key"
	}
	return "name"
}

// TableSelector returns the selector of the table the console uses
// to display this kind of resource.
func (kind ResourceKind) TableSelector() string {
	switch kind {
	case Collection:
		return "#collection_table"
	case Experiment:
		return "#experiment_table"
	case Coord:
		return "#coord_table"
	case Metadata:
		return "#metadata_table"
	}
	return ""
}

// DeleteMessage returns the message shown after an item of this kind
// was successfully deleted.
func (kind ResourceKind) DeleteMessage() string {
	switch kind {
	case Collection:
		return "Your collection has been marked for deletion"
	case Experiment:
		return "Your experiment has been marked for deletion"
	case Coord:
		return "Your coordinate frame has been marked for deletion"
	case Metadata:
		return "Your metadata item has been deleted"
	}
	return ""
}

func (kind ResourceKind) String() string {
	text, err := kind.MarshalText()
	if err != nil {
		return "invalid"
	}
	return string(text)
}

// ResourceRef addresses the object that metadata is attached to.
// Collection is always set; Experiment and Channel narrow it down.
type ResourceRef struct {
	Collection string
	Experiment string
	Channel    string
}

// Names returns the non-empty components of the reference, outermost
// first.
func (ref ResourceRef) Names() []string {
	names := []string{ref.Collection}
	if ref.Experiment != "" {
		names = append(names, ref.Experiment)
		if ref.Channel != "" {
			names = append(names, ref.Channel)
		}
	}
	return names
}

// LookupKey returns a single string identifying the referenced object,
// suitable as a storage key.  The collection "c" has lookup key "c";
// experiment "e" within it has "c&e".
func (ref ResourceRef) LookupKey() string {
	key := ""
	for i, name := range ref.Names() {
		if i > 0 {
			key += "&"
		}
		key += name
	}
	return key
}

// Resource is the stored description of a named object.
type Resource struct {
	Name    string
	Created time.Time
}

// Store is the storage backend behind the REST API.  All of the
// list functions return names in lexicographic order.
type Store interface {
	// Collections returns the names of all collections.
	Collections() ([]string, error)

	// Collection retrieves a single collection.  Returns
	// ErrNoSuchCollection if it does not exist.
	Collection(name string) (Resource, error)

	// CreateCollection creates a new, empty collection.  Returns
	// ErrAlreadyExists if one with the same name is present, or
	// ErrBadName if name is not a valid resource name.
	CreateCollection(name string) (Resource, error)

	// DeleteCollection deletes a collection and its metadata.
	// Returns ErrNotEmpty if the collection still has
	// experiments.
	DeleteCollection(name string) error

	// Experiments returns the names of the experiments in a
	// collection.
	Experiments(collection string) ([]string, error)

	// Experiment retrieves a single experiment.
	Experiment(collection, name string) (Resource, error)

	// CreateExperiment creates a new experiment in an existing
	// collection.
	CreateExperiment(collection, name string) (Resource, error)

	// DeleteExperiment deletes an experiment, its channels, and
	// all of their metadata.
	DeleteExperiment(collection, name string) error

	// Channels returns the names of the channels in an
	// experiment.
	Channels(collection, experiment string) ([]string, error)

	// CreateChannel creates a new channel in an existing
	// experiment.
	CreateChannel(collection, experiment, name string) (Resource, error)

	// Coords returns the names of all coordinate frames.
	Coords() ([]string, error)

	// Coord retrieves a single coordinate frame.
	Coord(name string) (Resource, error)

	// CreateCoord creates a new coordinate frame.
	CreateCoord(name string) (Resource, error)

	// DeleteCoord deletes a coordinate frame.
	DeleteCoord(name string) error

	// MetaKeys returns the metadata keys attached to an object.
	// Returns the matching ErrNoSuch... error if the object
	// itself does not exist.
	MetaKeys(ref ResourceRef) ([]string, error)

	// Meta retrieves a single metadata value.  Returns
	// ErrNoSuchKey if the key is not set.
	Meta(ref ResourceRef, key string) (string, error)

	// CreateMeta adds a new metadata entry.  Returns
	// ErrAlreadyExists if the key is already set.
	CreateMeta(ref ResourceRef, key, value string) error

	// UpdateMeta changes an existing metadata entry.  Returns
	// ErrNoSuchKey if the key is not set.
	UpdateMeta(ref ResourceRef, key, value string) error

	// DeleteMeta removes a metadata entry.  Returns ErrNoSuchKey
	// if the key is not set.
	DeleteMeta(ref ResourceRef, key string) error
}

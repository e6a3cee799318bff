// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmt

import (
	"fmt"
)

// MarshalText returns a string representing a resource kind.
func (kind ResourceKind) MarshalText() ([]byte, error) {
	switch kind {
	case Collection:
		return []byte("collection"), nil
	case Experiment:
		return []byte("experiment"), nil
	case Coord:
		return []byte("coord"), nil
	case Metadata:
		return []byte("metadata"), nil
	default:
		return nil, fmt.Errorf("invalid resource kind (marshal, %+v)", int(kind))
	}
}

// UnmarshalText populates a resource kind from a string.  "meta" is
// accepted as a synonym for "metadata".
func (kind *ResourceKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "collection":
		*kind = Collection
	case "experiment":
		*kind = Experiment
	case "coord":
		*kind = Coord
	case "metadata", "meta":
		*kind = Metadata
	default:
		return fmt.Errorf("invalid resource kind (unmarshal, %+v)", string(text))
	}
	return nil
}

// MarshalText returns a string representing an action kind.
func (kind ActionKind) MarshalText() ([]byte, error) {
	switch kind {
	case Navigate:
		return []byte("navigate"), nil
	case Modal:
		return []byte("modal"), nil
	case ConfirmDelete:
		return []byte("confirmDelete"), nil
	default:
		return nil, fmt.Errorf("invalid action kind (marshal, %+v)", int(kind))
	}
}

// UnmarshalText populates an action kind from a string.
func (kind *ActionKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "navigate":
		*kind = Navigate
	case "modal":
		*kind = Modal
	case "confirmDelete":
		*kind = ConfirmDelete
	default:
		return fmt.Errorf("invalid action kind (unmarshal, %+v)", string(text))
	}
	return nil
}

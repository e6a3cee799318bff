// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmt

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// ActionKind says what activating an Action does.
type ActionKind int

const (
	// Navigate goes to the Action's Target URL.
	Navigate ActionKind = iota

	// Modal fetches the Target URL and shows the result in a
	// dialog without leaving the page.
	Modal

	// ConfirmDelete deletes the resource at the Target URL,
	// after confirmation, then removes the row.
	ConfirmDelete
)

// Action is a single control attached to a row.
type Action struct {
	// Label is the user-visible text, "Details", "Delete", ...
	Label string `json:"label"`

	// Icon is the name of the glyph shown next to the label.
	Icon string `json:"icon"`

	// Kind determines how the control behaves.
	Kind ActionKind `json:"kind"`

	// Target is the URL the action applies to.
	Target string `json:"target"`

	// Resource is the kind of resource the row lists.  For
	// ConfirmDelete it selects the table and message used once
	// the deletion succeeds.
	Resource ResourceKind `json:"resource"`
}

// Row is the display form of a single listed item.  Rows are built
// fresh from every fetch and never modified.
type Row struct {
	// Field is the name of the primary column, "name" or "key".
	Field string

	// Primary is the item identifier.
	Primary string

	// Actions are the controls shown for the item, in display
	// order.
	Actions []Action
}

// ActionsHTML returns the rendered action controls of the row.
func (row Row) ActionsHTML() (string, error) {
	var buf bytes.Buffer
	err := RenderActions(&buf, row.Actions)
	return buf.String(), err
}

// Object returns the row as the flat object the console's table
// widget loads: the primary column, keyed by Field, and "actions",
// holding the rendered HTML of the actions.
func (row Row) Object() (map[string]string, error) {
	actions, err := row.ActionsHTML()
	if err != nil {
		return nil, err
	}
	field := row.Field
	if field == "" {
		field = "name"
	}
	return map[string]string{
		field:     row.Primary,
		"actions": actions,
	}, nil
}

// MarshalJSON returns the JSON form of Object().
func (row Row) MarshalJSON() (out []byte, err error) {
	obj, err := row.Object()
	if err != nil {
		return nil, err
	}
	json := &codec.JsonHandle{}
	encoder := codec.NewEncoderBytes(&out, json)
	err = encoder.Encode(obj)
	return
}

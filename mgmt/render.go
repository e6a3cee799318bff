// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmt

import (
	"bytes"
	"html/template"
	"io"
)

// actionsTemplate renders row actions as Bootstrap buttons.  Nothing
// here is executable markup: modal and delete controls only carry
// data- attributes, and the page script attaches behavior to them.
var actionsTemplate = template.Must(template.New("actions").Parse(
	`{{range .}}{{if eq .Kind.String "navigate"}}` +
		`<a type="button" class="btn btn-default btn-sm action-button" href="{{.Target}}">` +
		`{{else if eq .Kind.String "modal"}}` +
		`<a type="button" class="btn btn-default btn-sm action-button" href="#" data-toggle="modal" data-url="{{.Target}}">` +
		`{{else}}` +
		`<a type="button" class="btn btn-danger btn-sm action-button" href="#" data-delete="{{.Resource}}" data-table="{{.Resource.TableSelector}}" data-url="{{.Target}}">` +
		`{{end}}` +
		`<span class="glyphicon glyphicon-{{.Icon}}" aria-hidden="true"></span>  {{.Label}}</a>` +
		`{{end}}`))

// String returns the text form of an action kind.
func (kind ActionKind) String() string {
	text, err := kind.MarshalText()
	if err != nil {
		return "invalid"
	}
	return string(text)
}

// RenderActions writes the HTML form of a list of actions.  All
// targets and labels are escaped for the context they appear in.
func RenderActions(w io.Writer, actions []Action) error {
	return actionsTemplate.Execute(w, actions)
}

// ActionsHTML returns the HTML form of a list of actions as a
// template.HTML value, so it can be embedded in a larger page.
func ActionsHTML(actions []Action) (template.HTML, error) {
	var buf bytes.Buffer
	if err := RenderActions(&buf, actions); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmt

// This file turns a list of resource names into display rows.  All
// of the URLs are RFC 6570 templates; simple {item} expansion
// percent-encodes anything that is not URL-safe, so an identifier can
// never break out of the path segment or query value it lands in.

import (
	"strings"

	"github.com/jtacoma/uritemplates"
)

var (
	collectionDetailURL = mustParse("{+page}/{item}")
	collectionDeleteURL = mustParse("{+root}collection/{item}")
	experimentDetailURL = mustParse("{+mgmt}/{item}")
	experimentDeleteURL = mustParse("{+root}collection/{collection}/experiment/{item}")
	coordDetailURL      = mustParse("{+root}mgmt/coord/{item}")
	coordDeleteURL      = mustParse("{+root}coord/{item}")
	metaViewURL         = mustParse("{+root}meta{/names*}{?key}")
	metaUpdateURL       = mustParse("{+origin}{+meta}{?key}")
)

// NormalizeAPIRoot returns apiRoot with exactly one trailing slash,
// so that relative resource paths can be appended directly.
func NormalizeAPIRoot(apiRoot string) (string, error) {
	if apiRoot == "" {
		return "", ErrNoAPIRoot
	}
	return strings.TrimRight(apiRoot, "/") + "/", nil
}

type rowBuilder func(item string) ([]Action, error)

// FormatRows converts the names returned by a list call into display
// rows.  The result has the same length and order as items; an empty
// (or nil) list produces an empty, non-nil slice.  page is the
// location of the page that will display the rows, and apiRoot the
// base URL of the REST API.
func FormatRows(kind ResourceKind, page PageContext, apiRoot string, items []string) ([]Row, error) {
	root, err := NormalizeAPIRoot(apiRoot)
	if err != nil {
		return nil, err
	}

	var build rowBuilder
	switch kind {
	case Collection:
		build = collectionActions(page, root)
	case Experiment:
		build = experimentActions(page, root)
	case Coord:
		build = coordActions(root)
	case Metadata:
		build = metadataActions(page, root)
	default:
		_, err = kind.MarshalText()
		return nil, err
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		actions, err := build(item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{
			Field:   kind.PrimaryField(),
			Primary: item,
			Actions: actions,
		})
	}
	return rows, nil
}

func mustParse(template string) *uritemplates.UriTemplate {
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		panic(err)
	}
	return tmpl
}

func detailsAction(kind ResourceKind, target string) Action {
	return Action{Label: "Details", Icon: "pencil", Kind: Navigate, Target: target, Resource: kind}
}

func deleteAction(kind ResourceKind, target string) Action {
	return Action{Label: "Delete", Icon: "remove", Kind: ConfirmDelete, Target: target, Resource: kind}
}

func collectionActions(page PageContext, root string) rowBuilder {
	return func(item string) ([]Action, error) {
		detail, err := collectionDetailURL.Expand(map[string]interface{}{
			"page": page.URL(),
			"item": item,
		})
		if err != nil {
			return nil, err
		}
		del, err := collectionDeleteURL.Expand(map[string]interface{}{
			"root": root,
			"item": item,
		})
		if err != nil {
			return nil, err
		}
		return []Action{detailsAction(Collection, detail), deleteAction(Collection, del)}, nil
	}
}

func experimentActions(page PageContext, root string) rowBuilder {
	collection := page.LastSegment()
	return func(item string) ([]Action, error) {
		detail, err := experimentDetailURL.Expand(map[string]interface{}{
			"mgmt": page.MgmtPathRoot(),
			"item": item,
		})
		if err != nil {
			return nil, err
		}
		del, err := experimentDeleteURL.Expand(map[string]interface{}{
			"root":       root,
			"collection": collection,
			"item":       item,
		})
		if err != nil {
			return nil, err
		}
		return []Action{detailsAction(Experiment, detail), deleteAction(Experiment, del)}, nil
	}
}

func coordActions(root string) rowBuilder {
	return func(item string) ([]Action, error) {
		vars := map[string]interface{}{"root": root, "item": item}
		detail, err := coordDetailURL.Expand(vars)
		if err != nil {
			return nil, err
		}
		del, err := coordDeleteURL.Expand(vars)
		if err != nil {
			return nil, err
		}
		return []Action{detailsAction(Coord, detail), deleteAction(Coord, del)}, nil
	}
}

func metadataActions(page PageContext, root string) rowBuilder {
	var names []interface{}
	for _, name := range page.MetaNames() {
		names = append(names, name)
	}
	return func(item string) ([]Action, error) {
		view, err := metaViewURL.Expand(map[string]interface{}{
			"root":  root,
			"names": names,
			"key":   item,
		})
		if err != nil {
			return nil, err
		}
		update, err := metaUpdateURL.Expand(map[string]interface{}{
			"origin": page.Origin(),
			"meta":   page.MetaPath(),
			"key":    item,
		})
		if err != nil {
			return nil, err
		}
		return []Action{
			{Label: "View", Icon: "eye-open", Kind: Modal, Target: view, Resource: Metadata},
			{Label: "Update", Icon: "pencil", Kind: Navigate, Target: update, Resource: Metadata},
			deleteAction(Metadata, view),
		}, nil
	}
}

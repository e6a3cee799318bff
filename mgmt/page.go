// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmt

import (
	"errors"
	"net/url"
	"strings"
)

// ResourcesPath is the console path prefix under which collections,
// experiments, and channels are browsed.
const ResourcesPath = "/mgmt/resources"

// MetaPath is the console path prefix of the metadata editor.  It
// mirrors ResourcesPath.
const MetaPath = "/mgmt/meta"

// PageContext describes the location of the page displaying a list.
// All of the addressing information FormatRows and the list fetcher
// need is derived from it.
type PageContext struct {
	// Scheme is the URL scheme, "http" or "https".
	Scheme string

	// Host is the host name, including any port.
	Host string

	// Path is the URL path of the page, without query string.
	Path string

	// MgmtRoot, if set, is the base URL experiment detail links
	// are built from.  If empty, URL() is used.
	MgmtRoot string
}

// ParsePageContext builds a PageContext from an absolute URL.
func ParsePageContext(rawurl string) (PageContext, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return PageContext{}, err
	}
	if u.Scheme == "" || u.Host == "" {
		return PageContext{}, errors.New("page URL must be absolute")
	}
	return PageContext{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   u.Path,
	}, nil
}

// Origin returns the scheme and host of the page, "https://host".
func (page PageContext) Origin() string {
	return page.Scheme + "://" + page.Host
}

// URL returns the address of the page, without any query string.
func (page PageContext) URL() string {
	return page.Origin() + page.Path
}

// LastSegment returns the final component of the page path.  On the
// page for a collection this is the collection name.
func (page PageContext) LastSegment() string {
	return page.Path[strings.LastIndex(page.Path, "/")+1:]
}

// ResourcePath returns the part of the page path that follows
// ResourcesPath, including its leading slash, e.g. "/col/exp".  The
// boolean is false if the page is not under ResourcesPath.
func (page PageContext) ResourcePath() (string, bool) {
	idx := strings.Index(page.Path, ResourcesPath)
	if idx < 0 {
		return "", false
	}
	return page.Path[idx+len(ResourcesPath):], true
}

// ResourceNames returns the non-empty path components following
// ResourcesPath, at most three (collection, experiment, channel).
func (page PageContext) ResourceNames() []string {
	rest, ok := page.ResourcePath()
	if !ok {
		return nil
	}
	var names []string
	for _, part := range strings.Split(rest, "/") {
		if part == "" {
			continue
		}
		names = append(names, part)
		if len(names) == 3 {
			break
		}
	}
	return names
}

// MetaNames returns the names of the object whose metadata a page
// lists: the names following ResourcesPath, or the last path segment
// of a page outside it.
func (page PageContext) MetaNames() []string {
	names := page.ResourceNames()
	if len(names) == 0 {
		names = []string{page.LastSegment()}
	}
	return names
}

// ResourceRef returns the object the page's metadata belongs to.
// The boolean is false if the page does not name a collection.
func (page PageContext) ResourceRef() (ResourceRef, bool) {
	names := page.ResourceNames()
	if len(names) == 0 {
		return ResourceRef{}, false
	}
	ref := ResourceRef{Collection: names[0]}
	if len(names) > 1 {
		ref.Experiment = names[1]
	}
	if len(names) > 2 {
		ref.Channel = names[2]
	}
	return ref, true
}

// MetaPath returns the page path with its ResourcesPath prefix
// replaced by MetaPath, giving the metadata editor for the same
// object.
func (page PageContext) MetaPath() string {
	return strings.Replace(page.Path, ResourcesPath, MetaPath, 1)
}

// MgmtPathRoot returns the base URL for experiment detail links.
func (page PageContext) MgmtPathRoot() string {
	if page.MgmtRoot != "" {
		return page.MgmtRoot
	}
	return page.URL()
}

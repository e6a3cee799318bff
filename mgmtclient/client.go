// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mgmtclient fetches resource lists from the management REST
// API and deletes resources through it.  The matching server is in
// the mgmtserver package.
//
// Call New() with the API root of that service:
//
//     c, err := mgmtclient.New("http://localhost:5980/v1/")
//     page, _ := mgmt.ParsePageContext("http://localhost:5980/mgmt/resources/col1")
//     names, err := c.List(ctx, mgmt.Experiment, page)
//
// List blocks; Fetch is the callback form, which returns immediately
// and reports failures to the client's ErrorReporter.
package mgmtclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/mitchellh/mapstructure"
)

// Client talks to one management REST API.
type Client struct {
	resource

	// Reporter receives every failed Fetch or delete.  If nil,
	// failures are logged through logrus.
	Reporter ErrorReporter
}

// Params holds the callbacks of a Fetch.
type Params struct {
	// Success is called with the fetched names, in server order.
	Success func(items []string)
}

// New creates a client for the API rooted at apiRoot.  The root is
// normalized to end in a slash.
func New(apiRoot string) (*Client, error) {
	root, err := mgmt.NormalizeAPIRoot(apiRoot)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(root)
	if err != nil {
		return nil, err
	}
	return &Client{resource: resource{URL: u}}, nil
}

// APIRoot returns the normalized API root as a string.
func (c *Client) APIRoot() string {
	return c.URL.String()
}

func (c *Client) reporter() ErrorReporter {
	if c.Reporter != nil {
		return c.Reporter
	}
	return LogReporter{}
}

// ListURL returns the URL that lists resources of kind, as seen from
// page.  Experiments are listed for the collection named by the last
// page path segment; metadata for the collection, experiment, or
// channel named under mgmt.ResourcesPath, or failing that the last
// path segment.
func (c *Client) ListURL(kind mgmt.ResourceKind, page mgmt.PageContext) (*url.URL, error) {
	switch kind {
	case mgmt.Collection:
		return c.Template("collection", map[string]interface{}{})
	case mgmt.Experiment:
		return c.Template("collection/{collection}", map[string]interface{}{
			"collection": page.LastSegment(),
		})
	case mgmt.Coord:
		return c.Template("coord", map[string]interface{}{})
	case mgmt.Metadata:
		var names []interface{}
		for _, name := range page.MetaNames() {
			names = append(names, name)
		}
		return c.Template("meta{/names*}", map[string]interface{}{
			"names": names,
		})
	}
	_, err := kind.MarshalText()
	return nil, err
}

// List fetches the names of the resources of kind, as seen from page.
// Exactly one request is made.  Anything but an HTTP 200 response is
// returned as an ErrorHTTP.
func (c *Client) List(ctx context.Context, kind mgmt.ResourceKind, page mgmt.PageContext) ([]string, error) {
	url, err := c.ListURL(kind, page)
	if err != nil {
		return nil, err
	}
	// Metadata lists are the only ones not marked no-cache.
	return c.fetchJSON(ctx, url, kind.ListField(), kind == mgmt.Metadata)
}

// Fetch lists resources of kind in the background.  On success
// params.Success is called with the names; on any failure the
// client's reporter is called once and Success is not.  Fetch
// returns immediately; the returned channel is closed after the
// callback has run.
//
// Concurrent fetches are independent.  If two are outstanding, both
// callbacks run, in whatever order the responses arrive.
func (c *Client) Fetch(ctx context.Context, kind mgmt.ResourceKind, page mgmt.PageContext, params Params) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		items, err := c.List(ctx, kind, page)
		if err != nil {
			c.reporter().RaiseAjaxError(err)
			return
		}
		if params.Success != nil {
			params.Success(items)
		}
	}()
	return done
}

// fetchJSON performs a single GET of url and returns the array of
// names in the named field of the response object.  If the field is
// missing, returns a nil slice and no error.
func (c *Client) fetchJSON(ctx context.Context, url *url.URL, field string, cache bool) (items []string, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if !cache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = firstError(err, resp.Body.Close())
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var body map[string]interface{}
	err = mgmtdata.Decode(resp.Header.Get("Content-Type"), resp.Body, &body)
	if err != nil {
		return nil, err
	}
	err = mapstructure.WeakDecode(body[field], &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

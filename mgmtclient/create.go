// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
)

func (c *Client) create(ctx context.Context, template string, vars map[string]interface{}) (res mgmtdata.Resource, err error) {
	url, err := c.Template(template, vars)
	if err == nil {
		err = c.Do(ctx, http.MethodPost, url, nil, &res)
	}
	return
}

// CreateCollection creates a new, empty collection.
func (c *Client) CreateCollection(ctx context.Context, name string) (mgmtdata.Resource, error) {
	return c.create(ctx, "collection/{collection}", map[string]interface{}{
		"collection": name,
	})
}

// CreateExperiment creates a new experiment in an existing collection.
func (c *Client) CreateExperiment(ctx context.Context, collection, name string) (mgmtdata.Resource, error) {
	return c.create(ctx, "collection/{collection}/experiment/{experiment}", map[string]interface{}{
		"collection": collection,
		"experiment": name,
	})
}

// CreateChannel creates a new channel in an existing experiment.
func (c *Client) CreateChannel(ctx context.Context, collection, experiment, name string) (mgmtdata.Resource, error) {
	return c.create(ctx, "collection/{collection}/experiment/{experiment}/channel/{channel}", map[string]interface{}{
		"collection": collection,
		"experiment": experiment,
		"channel":    name,
	})
}

// CreateCoord creates a new coordinate frame.
func (c *Client) CreateCoord(ctx context.Context, name string) (mgmtdata.Resource, error) {
	return c.create(ctx, "coord/{coord}", map[string]interface{}{
		"coord": name,
	})
}

// MetaURL returns the URL of the metadata of ref, with the key and
// value query parameters filled in where they are not empty.
func (c *Client) MetaURL(ref mgmt.ResourceRef, key, value string) (*url.URL, error) {
	params := map[string]interface{}{}
	if key != "" {
		params["key"] = key
	}
	if value != "" {
		params["value"] = value
	}
	return c.metaURL(ref, params)
}

func (c *Client) metaURL(ref mgmt.ResourceRef, params map[string]interface{}) (*url.URL, error) {
	var names []interface{}
	for _, name := range ref.Names() {
		names = append(names, name)
	}
	params["names"] = names
	return c.Template("meta{/names*}{?key,value}", params)
}

// SetMeta stores one metadata value on ref.  If create is true the key
// must not exist yet; otherwise it must already exist.
func (c *Client) SetMeta(ctx context.Context, ref mgmt.ResourceRef, key, value string, create bool) error {
	url, err := c.metaURL(ref, map[string]interface{}{
		"key":   key,
		"value": value,
	})
	if err != nil {
		return err
	}
	method := http.MethodPut
	if create {
		method = http.MethodPost
	}
	return c.Do(ctx, method, url, nil, nil)
}

// Meta retrieves one metadata value from ref.
func (c *Client) Meta(ctx context.Context, ref mgmt.ResourceRef, key string) (string, error) {
	url, err := c.MetaURL(ref, key, "")
	if err != nil {
		return "", err
	}
	var mv mgmtdata.MetaValue
	err = c.Do(ctx, http.MethodGet, url, nil, &mv)
	return mv.Value, err
}

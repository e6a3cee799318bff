// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/diffeo/go-bossmgmt/mgmtdata"
)

// errForeignTarget is returned for a delete whose target is not a
// resource under the client's API root.
var errForeignTarget = mgmtdata.ErrBadRequest{
	Err: errors.New("Delete target is outside the API root"),
}

// TableView is the part of the page that displays rows.
type TableView interface {
	// RemoveRow removes the row whose delete action targets url
	// from the table named by tableSelector.
	RemoveRow(tableSelector, url string)
}

// Notifier shows short confirmation messages to the user.
type Notifier interface {
	Notify(message string)
}

// Deleter is the generic delete helper.  It implements
// mgmt.DeleteAPICaller.
type Deleter struct {
	Client   *Client
	Table    TableView
	Notifier Notifier
}

// DeleteAPICall sends an HTTP DELETE to url, which may be relative to
// the client's API root.  A url that resolves to anywhere outside the
// API root is refused without sending a request.  On success the
// matching row is removed from the table and message is shown; on
// failure the error goes to the client's reporter and is returned.
func (d *Deleter) DeleteAPICall(ctx context.Context, url, tableSelector, message string) error {
	target, err := d.Client.URL.Parse(url)
	if err == nil && !d.Client.contains(target) {
		err = errForeignTarget
	}
	if err == nil {
		err = d.Client.Do(ctx, http.MethodDelete, target, nil, nil)
	}
	if err != nil {
		d.Client.reporter().RaiseAjaxError(err)
		return err
	}
	if d.Table != nil {
		d.Table.RemoveRow(tableSelector, url)
	}
	if d.Notifier != nil {
		d.Notifier.Notify(message)
	}
	return nil
}

// contains checks that target has the scheme and host of the API
// root, and a path beneath it once dot segments are removed.
func (c *Client) contains(target *url.URL) bool {
	root := c.URL
	if target.Scheme != root.Scheme || target.Host != root.Host || target.User != nil {
		return false
	}
	return strings.HasPrefix(path.Clean("/"+target.Path)+"/", root.Path)
}

// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package console

import (
	"errors"
	"net/http"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtclient"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/sirupsen/logrus"
)

var errMissingURL = mgmtdata.ErrBadRequest{Err: errors.New("Missing url parameter")}

// deleteResult records what a successful delete asks the page to do.
// It is both the table view and the notifier of the delete.
type deleteResult struct {
	Table   string `json:"table"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

func (r *deleteResult) RemoveRow(tableSelector, url string) {
	r.Table = tableSelector
	r.URL = url
}

func (r *deleteResult) Notify(message string) {
	r.Message = message
}

// Delete deletes a single resource through the REST API.  The form
// parameters are kind, the resource kind, and url, the delete target
// of the row.  The response says which row to remove from which table
// and what to tell the user.
func (c *Console) Delete(resp http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		c.writeError(resp, mgmtdata.ErrBadRequest{Err: err})
		return
	}
	kind, err := parseKind(req.PostForm.Get("kind"))
	if err != nil {
		c.writeError(resp, mgmtdata.ErrBadRequest{Err: err})
		return
	}
	target := req.PostForm.Get("url")
	if target == "" {
		c.writeError(resp, errMissingURL)
		return
	}

	result := &deleteResult{}
	deleter := &mgmtclient.Deleter{Client: c.Client, Table: result, Notifier: result}
	err = mgmt.Dispatch(req.Context(), deleter, kind, target)
	if err != nil {
		c.writeError(resp, err)
		return
	}
	c.logger().WithFields(logrus.Fields{
		"kind": kind.String(),
		"url":  target,
	}).Info("Deleted resource")
	c.writeJSON(resp, http.StatusOK, result)
}

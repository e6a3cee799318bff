// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtserver

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/gorilla/mux"
)

// errMissingKey is returned by metadata requests that need a key
// parameter but do not have one.
var errMissingKey = mgmtdata.ErrBadRequest{
	Err: errors.New("Missing key parameter"),
}

// errMissingKeyValue is returned by metadata requests that need both
// key and value parameters but lack one.
var errMissingKeyValue = mgmtdata.ErrBadRequest{
	Err: errors.New("Missing key or value parameter"),
}

// context holds all of the information that can be extracted from
// URL parameters.  Nothing here is checked against the store; the
// handlers do that.
type context struct {
	Ref         mgmt.ResourceRef
	Coord       string
	QueryParams url.Values
}

func (api *restAPI) Context(req *http.Request) (*context, error) {
	vars := mux.Vars(req)
	ctx := &context{
		Ref: mgmt.ResourceRef{
			Collection: vars["collection"],
			Experiment: vars["experiment"],
			Channel:    vars["channel"],
		},
		Coord:       vars["coord"],
		QueryParams: req.URL.Query(),
	}
	return ctx, nil
}

// Param returns a query parameter and whether it was present at all.
func (ctx *context) Param(name string) (string, bool) {
	values, present := ctx.QueryParams[name]
	if !present || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// KeyValue returns the key and value parameters of a metadata write.
func (ctx *context) KeyValue() (key, value string, err error) {
	key, hasKey := ctx.Param("key")
	value, hasValue := ctx.Param("value")
	if !hasKey || !hasValue {
		err = errMissingKeyValue
	}
	return
}

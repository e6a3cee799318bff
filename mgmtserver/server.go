// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtserver

import (
	"net/http"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/gorilla/mux"
)

// NewRouter creates a new HTTP handler that processes all management
// API requests.  All resources are under the URL path root, e.g.
// /collection/foo.  For more control over this setup, create a
// mux.Router and call PopulateRouter instead.
func NewRouter(store mgmt.Store) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, store)
	return r
}

// PopulateRouter adds management API routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the API under a subpath:
//
//     import "github.com/diffeo/go-bossmgmt/memory"
//     import "github.com/gorilla/mux"
//     r := mux.NewRouter()
//     s := r.PathPrefix("/v1").Subrouter()
//     PopulateRouter(s, memory.New())
func PopulateRouter(r *mux.Router, store mgmt.Store) {
	api := &restAPI{Store: store, Router: r}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the management REST API.
type restAPI struct {
	Store  mgmt.Store
	Router *mux.Router
}

// PopulateRouter adds all management URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	api.PopulateCollection(r)
	api.PopulateCoord(r)
	api.PopulateMeta(r)
}

func resourceData(res mgmt.Resource) mgmtdata.Resource {
	return mgmtdata.Resource{Name: res.Name, Created: res.Created}
}

// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package console serves the management pages that display resource
// lists.  Every list is fetched from the management REST API through
// an mgmtclient.Client and turned into rows by mgmt.FormatRows, so
// the pages and the JSON row feed always agree with what the API
// returns.
//
// The following URLs are defined, relative to wherever the router is
// mounted:
//
//     GET  /mgmt/resources                        collections
//     GET  /mgmt/resources/{c}                    experiments and metadata of c
//     GET  /mgmt/resources/{c}/{e}[/{ch}]         metadata
//     GET  /mgmt/coords                           coordinate frames
//     GET  /mgmt/rows/{kind}?page=url             rows as JSON
//     POST /mgmt/delete  (kind=...&url=...)       delete one resource
package console

import (
	"net/http"
	"strings"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtclient"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Console holds the persistent state of the management pages.
type Console struct {
	// Client fetches lists from and deletes through the REST API.
	Client *mgmtclient.Client

	// Logger receives failed requests.  If nil, the logrus
	// standard logger is used.
	Logger logrus.FieldLogger

	// MgmtRoot, if set, is the base URL of experiment detail
	// pages.  Otherwise experiment links are relative to the
	// collection page.
	MgmtRoot string
}

// NewRouter creates a new HTTP handler serving the console pages.
func NewRouter(c *Console) http.Handler {
	r := mux.NewRouter()
	c.PopulateRouter(r)
	return r
}

// PopulateRouter adds the console routes to an existing router.
func (c *Console) PopulateRouter(r *mux.Router) {
	r.Path(mgmt.ResourcesPath).Methods("GET").HandlerFunc(c.CollectionsPage)
	r.Path(mgmt.ResourcesPath + "/{collection}").Methods("GET").HandlerFunc(c.CollectionPage)
	r.Path(mgmt.ResourcesPath + "/{collection}/{experiment}").Methods("GET").HandlerFunc(c.MetadataPage)
	r.Path(mgmt.ResourcesPath + "/{collection}/{experiment}/{channel}").Methods("GET").HandlerFunc(c.MetadataPage)
	r.Path("/mgmt/coords").Methods("GET").HandlerFunc(c.CoordsPage)
	r.Path("/mgmt/rows/{kind}").Methods("GET").HandlerFunc(c.Rows)
	r.Path("/mgmt/delete").Methods("POST").HandlerFunc(c.Delete)
}

func (c *Console) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return logrus.StandardLogger()
}

// reporter returns the client's error reporter, or one that logs to
// the console's logger.
func (c *Console) reporter() mgmtclient.ErrorReporter {
	if c.Client.Reporter != nil {
		return c.Client.Reporter
	}
	return mgmtclient.LogReporter{Logger: c.logger()}
}

// pageContext describes the location of the page req is asking for.
func (c *Console) pageContext(req *http.Request) mgmt.PageContext {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return mgmt.PageContext{
		Scheme:   scheme,
		Host:     req.Host,
		Path:     strings.TrimRight(req.URL.Path, "/"),
		MgmtRoot: c.MgmtRoot,
	}
}

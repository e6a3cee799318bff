// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/diffeo/go-bossmgmt/console"
	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtclient"
	"github.com/diffeo/go-bossmgmt/mgmtserver"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// requestIDHeader carries the identifier assigned to each request.
const requestIDHeader = "X-Request-Id"

// NewHandler builds the complete HTTP handler of the daemon: the REST
// API under cfg.APIPrefix, the console pages, and /metrics, wrapped
// in panic recovery, request metrics, and optionally request logging.
func NewHandler(store mgmt.Store, cfg Config, logger *logrus.Logger) (http.Handler, error) {
	client, err := mgmtclient.New(cfg.APIRoot)
	if err != nil {
		return nil, err
	}
	client.Reporter = mgmtclient.LogReporter{Logger: logger}

	r := mux.NewRouter()
	prefix := strings.TrimSuffix(cfg.APIPrefix, "/")
	if prefix == "" {
		mgmtserver.PopulateRouter(r, store)
	} else {
		mgmtserver.PopulateRouter(r.PathPrefix(prefix).Subrouter(), store)
	}
	c := &console.Console{
		Client:   client,
		Logger:   logger,
		MgmtRoot: cfg.MgmtRoot,
	}
	c.PopulateRouter(r)
	r.Handle("/metrics", promhttp.Handler())

	recovery := negroni.NewRecovery()
	recovery.Logger = logger
	recovery.PrintStack = false

	n := negroni.New(recovery, negroni.HandlerFunc(requestMetrics))
	if cfg.LogRequests {
		n.Use(&requestLogger{Logger: logger})
	}
	n.UseHandler(r)
	return n, nil
}

// requestLogger logs one line per request, tagged with a fresh
// request ID that is also returned to the caller.
type requestLogger struct {
	Logger logrus.FieldLogger
}

func (l *requestLogger) ServeHTTP(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	id := req.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewV4().String()
	}
	rw.Header().Set(requestIDHeader, id)

	start := time.Now()
	next(rw, req)

	fields := logrus.Fields{
		"request_id": id,
		"method":     req.Method,
		"path":       req.URL.Path,
		"duration":   time.Since(start),
	}
	if res, ok := rw.(negroni.ResponseWriter); ok {
		fields["status"] = res.Status()
		fields["size"] = res.Size()
	}
	l.Logger.WithFields(fields).Info("Request")
}

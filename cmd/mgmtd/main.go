// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mgmtd serves the management REST API, the management
// console pages that consume it, and Prometheus metrics, all from one
// HTTP listener.
package main

import (
	"flag"
	"net/http"

	"github.com/diffeo/go-bossmgmt/backend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	defaults := DefaultConfig()
	flag.String("http", defaults.HTTP, "[ip]:port for HTTP interface")
	backendFlag := backend.Backend{Implementation: defaults.Backend}
	flag.Var(&backendFlag, "backend", "impl[:address] of the storage backend")
	flag.String("api-prefix", defaults.APIPrefix, "URL path of the REST API")
	flag.String("api-root", defaults.APIRoot, "absolute URL of the REST API as the console sees it")
	flag.String("mgmt-root", "", "base URL of experiment detail pages")
	flag.Bool("log-requests", false, "log all requests")
	flag.String("log-level", defaults.LogLevel, "minimum level of log messages")
	configFile := flag.String("config", "", "global configuration YAML file")
	flag.Parse()

	cfg, err := LoadConfig(*configFile, flag.CommandLine)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not load configuration")
		return
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err":   err,
			"level": cfg.LogLevel,
		}).Fatal("Invalid log level")
		return
	}
	logger := logrus.StandardLogger()
	logger.SetLevel(level)

	var storeBackend backend.Backend
	if err = storeBackend.Set(cfg.Backend); err != nil {
		logger.WithFields(logrus.Fields{
			"err":     err,
			"backend": cfg.Backend,
		}).Fatal("Invalid storage backend")
		return
	}
	store, err := storeBackend.Store()
	if err != nil {
		logger.WithFields(logrus.Fields{
			"err":     err,
			"backend": storeBackend.Implementation,
		}).Fatal("Could not create storage backend")
		return
	}

	if err = prometheus.Register(newStoreCollector(store)); err != nil {
		logger.WithFields(logrus.Fields{
			"err": err,
		}).Warn("Could not register store metrics")
	}

	handler, err := NewHandler(store, cfg, logger)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not set up HTTP handler")
		return
	}

	logger.WithFields(logrus.Fields{
		"http":    cfg.HTTP,
		"backend": storeBackend.Implementation,
		"api":     cfg.APIRoot,
	}).Info("Serving")
	err = http.ListenAndServe(cfg.HTTP, handler)
	logger.WithFields(logrus.Fields{
		"err": err,
	}).Fatal("HTTP server stopped")
}

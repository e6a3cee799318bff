// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/negroni"
)

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "bossmgmt",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by method and status",
	},
	[]string{
		"method",
		"code",
	},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "diffeo",
		Subsystem: "bossmgmt",
		Name:      "http_request_duration_seconds",
		Help:      "Time spent serving HTTP requests",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{
		"method",
	},
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
}

// requestMetrics is negroni middleware that counts and times every
// request.
func requestMetrics(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	start := time.Now()
	next(rw, req)
	status := http.StatusOK
	if res, ok := rw.(negroni.ResponseWriter); ok && res.Status() != 0 {
		status = res.Status()
	}
	requestCount.With(prometheus.Labels{
		"method": req.Method,
		"code":   strconv.Itoa(status),
	}).Inc()
	requestDuration.With(prometheus.Labels{
		"method": req.Method,
	}).Observe(time.Since(start).Seconds())
}

// storeCollector reports the number of top-level resources in a store
// each time metrics are scraped.
type storeCollector struct {
	store mgmt.Store
	desc  *prometheus.Desc
}

func newStoreCollector(store mgmt.Store) *storeCollector {
	return &storeCollector{
		store: store,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName("diffeo", "bossmgmt", "resources"),
			"Number of top-level management resources",
			[]string{"kind"},
			nil,
		),
	}
}

func (c *storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *storeCollector) Collect(ch chan<- prometheus.Metric) {
	if names, err := c.store.Collections(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(len(names)), "collection")
	}
	if names, err := c.store.Coords(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(len(names)), "coord")
	}
}

// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtclient

import (
	"github.com/sirupsen/logrus"
)

// ErrorReporter presents a failed request to the user.  err is
// usually an ErrorHTTP, but may be a transport error if no response
// was received at all.
type ErrorReporter interface {
	RaiseAjaxError(err error)
}

// ReporterFunc adapts a plain function to the ErrorReporter
// interface.
type ReporterFunc func(err error)

// RaiseAjaxError calls f(err).
func (f ReporterFunc) RaiseAjaxError(err error) {
	f(err)
}

// LogReporter reports errors by logging them.
type LogReporter struct {
	// Logger receives the log entries.  If nil, the logrus
	// standard logger is used.
	Logger logrus.FieldLogger
}

// RaiseAjaxError logs err at error level, with the HTTP status and
// URL as fields if err came from a response.
func (r LogReporter) RaiseAjaxError(err error) {
	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	fields := logrus.Fields{"err": err}
	if httpErr, isHTTP := err.(ErrorHTTP); isHTTP {
		fields["status"] = httpErr.Response.StatusCode
		if httpErr.Response.Request != nil {
			fields["method"] = httpErr.Response.Request.Method
			fields["url"] = httpErr.Response.Request.URL.String()
		}
	}
	logger.WithFields(fields).Error("Request failed")
}

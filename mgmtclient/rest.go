// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtclient

// This file provides generic REST client code.

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/jtacoma/uritemplates"
)

// resource is any object that has a URL.
type resource struct {
	URL *url.URL

	// HTTPClient performs requests.  If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
}

// Template expands an RFC 6570 URI template and returns the result
// relative to the resource's URL.
func (r *resource) Template(template string, vars map[string]interface{}) (*url.URL, error) {
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		return nil, err
	}
	expanded, err := tmpl.Expand(vars)
	if err != nil {
		return nil, err
	}
	return r.URL.Parse(expanded)
}

func (r *resource) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return http.DefaultClient
}

// newRequest creates an HTTP request carrying the standard JSON
// headers.  Both Accept and Content-Type are always set, even on
// requests without a body.
func (r *resource) newRequest(ctx context.Context, method string, url *url.URL, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", mgmtdata.JSONMediaType)
	req.Header.Set("Content-Type", mgmtdata.JSONMediaType)
	return req, nil
}

// Do performs some HTTP action.  If in is non-nil, the request data is
// serialized and sent as the body of, for instance, a POST request.
// If out is non-nil, the response data (if any) is deserialized into
// this object, which must be of pointer type.  Any 2xx status is
// success.
func (r *resource) Do(ctx context.Context, method string, url *url.URL, in, out interface{}) (err error) {
	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err = mgmtdata.Encode(&buf, in); err != nil {
			return err
		}
		body = &buf
	}

	req, err := r.newRequest(ctx, method, url, body)
	if err != nil {
		return err
	}

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() {
		err = firstError(err, resp.Body.Close())
	}()

	if resp.StatusCode/100 != 2 {
		return errorFromResponse(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		contentType := resp.Header.Get("Content-Type")
		err = mgmtdata.Decode(contentType, resp.Body, out)
	}
	return err
}

// ErrorHTTP is returned for every unsuccessful response from the REST
// endpoint.  No distinction is made between failing status codes;
// callers that care can look at Response.StatusCode.
type ErrorHTTP struct {
	// Response holds a pointer to the failing HTTP response.  Its
	// body has already been consumed.
	Response *http.Response

	// Body holds the contents of the message body, presumed to
	// be text.
	Body string

	// Message is the server-provided error message, if the body
	// was a well-formed error response.
	Message string

	// Err is the mgmt error the server reported, if the body was a
	// well-formed error response.
	Err error
}

func (e ErrorHTTP) Error() string {
	if e.Message != "" {
		return e.Response.Status + ": " + e.Message
	}
	return e.Response.Status
}

// Unwrap returns the decoded server error, if any.
func (e ErrorHTTP) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of the failing response.
func (e ErrorHTTP) StatusCode() int {
	return e.Response.StatusCode
}

// errorFromResponse reads the body of a failed response and builds
// an ErrorHTTP from it.
func errorFromResponse(resp *http.Response) error {
	// Always collect the entire body; we will need it as a fallback
	// and can only parse it once.
	var body []byte
	var err error
	if resp.Body != nil {
		body, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}
	}

	result := ErrorHTTP{Response: resp, Body: string(body)}

	// Take a shot at decoding it as a better error
	var errResp mgmtdata.ErrorResponse
	contentType := resp.Header.Get("Content-Type")
	if mgmtdata.Decode(contentType, bytes.NewReader(body), &errResp) == nil && errResp.Error != "" {
		result.Message = errResp.Message
		result.Err = errResp.ToError()
	}
	return result
}

func firstError(e1, e2 error) error {
	if e1 != nil {
		return e1
	}
	return e2
}

// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mgmtserver publishes an mgmt.Store as a REST service.  The
// mgmtclient package is a matching client.
//
// The complete REST API is defined in the mgmtdata package.
//
// HTTP Considerations
//
// Every response body is JSON.  Requests carry their parameters in
// the URL path and query string; request bodies are ignored.  This
// interface does not (currently) support HTTP caching or
// authentication headers.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//     application/json
//     text/json
//
// A request whose Accept: header names neither of these, nor a
// matching wildcard, gets a 406 Not Acceptable response.
//
// URL Scheme
//
// Objects follow their natural hierarchy and are addressed by name.
// Names are restricted to ASCII letters, digits, hyphens, and
// underscores, so they never need escaping in a path.  The following
// URLs are defined:
//
//     /collection
//     /collection/{collection}
//     /collection/{collection}/experiment/{experiment}
//     /collection/{collection}/experiment/{experiment}/channel/{channel}
//     /coord
//     /coord/{coord}
//     /meta/{collection}
//     /meta/{collection}/{experiment}
//     /meta/{collection}/{experiment}/{channel}
package mgmtserver

// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmt

import "context"

// DeleteAPICaller is the generic delete helper.  It issues an HTTP
// DELETE to url; on success it removes the row for url from the table
// named by tableSelector and shows message, and on failure it reports
// the error.  The error is also returned to the caller.
type DeleteAPICaller interface {
	DeleteAPICall(ctx context.Context, url, tableSelector, message string) error
}

// Dispatch deletes the resource at url through caller, using the
// table and confirmation message that belong to kind.
func Dispatch(ctx context.Context, caller DeleteAPICaller, kind ResourceKind, url string) error {
	return caller.DeleteAPICall(ctx, url, kind.TableSelector(), kind.DeleteMessage())
}

// DeleteCollection deletes the collection at url.
func DeleteCollection(ctx context.Context, caller DeleteAPICaller, url string) error {
	return Dispatch(ctx, caller, Collection, url)
}

// DeleteExperiment deletes the experiment at url.
func DeleteExperiment(ctx context.Context, caller DeleteAPICaller, url string) error {
	return Dispatch(ctx, caller, Experiment, url)
}

// DeleteCoordFrame deletes the coordinate frame at url.
func DeleteCoordFrame(ctx context.Context, caller DeleteAPICaller, url string) error {
	return Dispatch(ctx, caller, Coord, url)
}

// DeleteMetadata deletes the metadata entry at url.
func DeleteMetadata(ctx context.Context, caller DeleteAPICaller, url string) error {
	return Dispatch(ctx, caller, Metadata, url)
}

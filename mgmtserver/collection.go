// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtserver

import (
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/gorilla/mux"
)

// CollectionList gets a list of all collections.
func (api *restAPI) CollectionList(ctx *context) (interface{}, error) {
	names, err := api.Store.Collections()
	if err != nil {
		return nil, err
	}
	return mgmtdata.CollectionList{Collections: names}, nil
}

func (api *restAPI) collection(name string) (result mgmtdata.Collection, err error) {
	res, err := api.Store.Collection(name)
	if err != nil {
		return
	}
	result.Resource = resourceData(res)
	result.Experiments, err = api.Store.Experiments(name)
	return
}

// CollectionGet retrieves a collection and the names of its
// experiments.
func (api *restAPI) CollectionGet(ctx *context) (interface{}, error) {
	return api.collection(ctx.Ref.Collection)
}

// CollectionPost creates a new collection.
func (api *restAPI) CollectionPost(ctx *context) (interface{}, error) {
	res, err := api.Store.CreateCollection(ctx.Ref.Collection)
	if err != nil {
		return nil, err
	}
	created := responseCreated{
		Body: mgmtdata.Collection{
			Resource:    resourceData(res),
			Experiments: []string{},
		},
	}
	err = buildURLs(api.Router, "collection", res.Name).
		URL(&created.Location, "collection").
		Error
	return created, err
}

// CollectionDelete deletes an empty collection.
func (api *restAPI) CollectionDelete(ctx *context) (interface{}, error) {
	return nil, api.Store.DeleteCollection(ctx.Ref.Collection)
}

// ExperimentGet retrieves an experiment and the names of its
// channels.
func (api *restAPI) ExperimentGet(ctx *context) (interface{}, error) {
	ref := ctx.Ref
	res, err := api.Store.Experiment(ref.Collection, ref.Experiment)
	if err != nil {
		return nil, err
	}
	result := mgmtdata.Experiment{
		Resource:   resourceData(res),
		Collection: ref.Collection,
	}
	result.Channels, err = api.Store.Channels(ref.Collection, ref.Experiment)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExperimentPost creates a new experiment.
func (api *restAPI) ExperimentPost(ctx *context) (interface{}, error) {
	ref := ctx.Ref
	res, err := api.Store.CreateExperiment(ref.Collection, ref.Experiment)
	if err != nil {
		return nil, err
	}
	created := responseCreated{
		Body: mgmtdata.Experiment{
			Resource:   resourceData(res),
			Collection: ref.Collection,
			Channels:   []string{},
		},
	}
	err = buildURLs(api.Router, "collection", ref.Collection, "experiment", res.Name).
		URL(&created.Location, "experiment").
		Error
	return created, err
}

// ExperimentDelete deletes an experiment and its channels.
func (api *restAPI) ExperimentDelete(ctx *context) (interface{}, error) {
	return nil, api.Store.DeleteExperiment(ctx.Ref.Collection, ctx.Ref.Experiment)
}

// ChannelPost creates a new channel.
func (api *restAPI) ChannelPost(ctx *context) (interface{}, error) {
	ref := ctx.Ref
	res, err := api.Store.CreateChannel(ref.Collection, ref.Experiment, ref.Channel)
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Body: mgmtdata.Channel{
			Resource:   resourceData(res),
			Collection: ref.Collection,
			Experiment: ref.Experiment,
		},
	}, nil
}

// PopulateCollection adds the collection, experiment, and channel
// URL paths to a router.
func (api *restAPI) PopulateCollection(r *mux.Router) {
	r.Path("/collection").Name("collections").Handler(&resourceHandler{
		Context: api.Context,
		Get:     api.CollectionList,
	})
	r.Path("/collection/{collection}").Name("collection").Handler(&resourceHandler{
		Context: api.Context,
		Get:     api.CollectionGet,
		Post:    api.CollectionPost,
		Delete:  api.CollectionDelete,
	})
	r.Path("/collection/{collection}/experiment/{experiment}").Name("experiment").Handler(&resourceHandler{
		Context: api.Context,
		Get:     api.ExperimentGet,
		Post:    api.ExperimentPost,
		Delete:  api.ExperimentDelete,
	})
	r.Path("/collection/{collection}/experiment/{experiment}/channel/{channel}").Name("channel").Handler(&resourceHandler{
		Context: api.Context,
		Post:    api.ChannelPost,
	})
}

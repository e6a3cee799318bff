// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mgmtctl is a command-line client for the management REST
// API.  It lists resources as the console would show them, creates
// and deletes resources, and edits metadata.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtclient"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// controller is the state shared by every subcommand.
type controller struct {
	Client  *mgmtclient.Client
	Console string
	Out     io.Writer
}

var ctl controller

// errUsage is returned when a command gets the wrong arguments.
var errUsage = errors.New("wrong number of arguments")

// parseRef parses "collection[/experiment[/channel]]".
func parseRef(arg string) (mgmt.ResourceRef, error) {
	parts := strings.Split(strings.Trim(arg, "/"), "/")
	if len(parts) > 3 || parts[0] == "" {
		return mgmt.ResourceRef{}, errors.New("expected collection[/experiment[/channel]], got " + arg)
	}
	var ref mgmt.ResourceRef
	ref.Collection = parts[0]
	if len(parts) > 1 {
		ref.Experiment = parts[1]
	}
	if len(parts) > 2 {
		ref.Channel = parts[2]
	}
	return ref, nil
}

// page returns the console page that shows the resource named by
// path, or the collections page if path is empty.
func (c *controller) page(path string) (mgmt.PageContext, error) {
	url := strings.TrimRight(c.Console, "/") + mgmt.ResourcesPath
	if path = strings.Trim(path, "/"); path != "" {
		url += "/" + path
	}
	return mgmt.ParsePageContext(url)
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "mgmtctl"
	app.Usage = "manage collections, experiments, coordinate frames, and metadata"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "api-root",
			Value:  "http://localhost:5980/v1/",
			Usage:  "absolute URL of the management REST API",
			EnvVar: "MGMT_API_ROOT",
		},
		cli.StringFlag{
			Name:   "console",
			Value:  "http://localhost:5980",
			Usage:  "base URL of the management console, used in links",
			EnvVar: "MGMT_CONSOLE",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log failed requests",
		},
	}
	app.Commands = []cli.Command{
		listCommand,
		deleteCommand,
		createCommand,
		metaCommand,
	}
	app.Before = func(c *cli.Context) (err error) {
		ctl.Client, err = mgmtclient.New(c.String("api-root"))
		if err != nil {
			return
		}
		if c.Bool("verbose") {
			ctl.Client.Reporter = mgmtclient.LogReporter{}
		} else {
			ctl.Client.Reporter = mgmtclient.ReporterFunc(func(error) {})
		}
		ctl.Console = c.String("console")
		ctl.Out = c.App.Writer
		return
	}
	return app
}

func background() context.Context {
	return context.Background()
}

func main() {
	logrus.SetOutput(os.Stderr)
	app := newApp(os.Stdout)
	app.RunAndExitOnError()
}

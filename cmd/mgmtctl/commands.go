// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtclient"
	"github.com/urfave/cli"
)

var listCommand = cli.Command{
	Name:      "list",
	Usage:     "list resources with their actions",
	ArgsUsage: "collection|experiment|coord|metadata [collection[/experiment[/channel]]]",
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 || c.NArg() > 2 {
			return errUsage
		}
		var kind mgmt.ResourceKind
		if err := kind.UnmarshalText([]byte(c.Args().Get(0))); err != nil {
			return err
		}
		page, err := ctl.page(c.Args().Get(1))
		if err != nil {
			return err
		}
		items, err := ctl.Client.List(background(), kind, page)
		if err != nil {
			return err
		}
		rows, err := mgmt.FormatRows(kind, page, ctl.Client.APIRoot(), items)
		if err != nil {
			return err
		}
		return printRows(ctl, kind, rows)
	},
}

// printRows writes one line per row: the primary column, then each
// action's label and target.
func printRows(c controller, kind mgmt.ResourceKind, rows []mgmt.Row) error {
	w := tabwriter.NewWriter(c.Out, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tACTION\tTARGET\n", kind.PrimaryField())
	for _, row := range rows {
		if len(row.Actions) == 0 {
			fmt.Fprintf(w, "%s\t\t\n", row.Primary)
		}
		for i, action := range row.Actions {
			primary := row.Primary
			if i > 0 {
				primary = ""
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", primary, action.Label, action.Target)
		}
	}
	return w.Flush()
}

// printNotifier writes delete confirmations to the command output.
type printNotifier struct {
	c controller
}

func (n printNotifier) Notify(message string) {
	fmt.Fprintln(n.c.Out, message)
}

var deleteCommand = cli.Command{
	Name:      "delete",
	Usage:     "delete a resource by its API URL",
	ArgsUsage: "collection|experiment|coord|metadata url",
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return errUsage
		}
		var kind mgmt.ResourceKind
		if err := kind.UnmarshalText([]byte(c.Args().Get(0))); err != nil {
			return err
		}
		deleter := &mgmtclient.Deleter{
			Client:   ctl.Client,
			Notifier: printNotifier{c: ctl},
		}
		return mgmt.Dispatch(background(), deleter, kind, c.Args().Get(1))
	},
}

var createCommand = cli.Command{
	Name:  "create",
	Usage: "create resources",
	Subcommands: []cli.Command{
		{
			Name:      "collection",
			Usage:     "create a new, empty collection",
			ArgsUsage: "name",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errUsage
				}
				res, err := ctl.Client.CreateCollection(background(), c.Args().Get(0))
				return printCreated(res.Name, err)
			},
		},
		{
			Name:      "experiment",
			Usage:     "create an experiment in a collection",
			ArgsUsage: "collection/experiment",
			Action: func(c *cli.Context) error {
				ref, err := refArg(c, 2)
				if err != nil {
					return err
				}
				res, err := ctl.Client.CreateExperiment(background(), ref.Collection, ref.Experiment)
				return printCreated(res.Name, err)
			},
		},
		{
			Name:      "channel",
			Usage:     "create a channel in an experiment",
			ArgsUsage: "collection/experiment/channel",
			Action: func(c *cli.Context) error {
				ref, err := refArg(c, 3)
				if err != nil {
					return err
				}
				res, err := ctl.Client.CreateChannel(background(), ref.Collection, ref.Experiment, ref.Channel)
				return printCreated(res.Name, err)
			},
		},
		{
			Name:      "coord",
			Usage:     "create a coordinate frame",
			ArgsUsage: "name",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errUsage
				}
				res, err := ctl.Client.CreateCoord(background(), c.Args().Get(0))
				return printCreated(res.Name, err)
			},
		},
	},
}

// refArg parses the single argument of c as a reference with exactly
// depth components.
func refArg(c *cli.Context, depth int) (mgmt.ResourceRef, error) {
	if c.NArg() != 1 {
		return mgmt.ResourceRef{}, errUsage
	}
	ref, err := parseRef(c.Args().Get(0))
	if err == nil && len(ref.Names()) != depth {
		err = fmt.Errorf("expected %d path components in %q", depth, c.Args().Get(0))
	}
	return ref, err
}

func printCreated(name string, err error) error {
	if err == nil {
		fmt.Fprintf(ctl.Out, "Created %s\n", name)
	}
	return err
}

var metaCommand = cli.Command{
	Name:  "meta",
	Usage: "read and write metadata",
	Subcommands: []cli.Command{
		{
			Name:      "get",
			Usage:     "print one metadata value",
			ArgsUsage: "collection[/experiment[/channel]] key",
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					return errUsage
				}
				ref, err := parseRef(c.Args().Get(0))
				if err != nil {
					return err
				}
				value, err := ctl.Client.Meta(background(), ref, c.Args().Get(1))
				if err == nil {
					fmt.Fprintln(ctl.Out, value)
				}
				return err
			},
		},
		{
			Name:      "set",
			Usage:     "change or add one metadata value",
			ArgsUsage: "collection[/experiment[/channel]] key value",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "create",
					Usage: "add a new key instead of changing an existing one",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 3 {
					return errUsage
				}
				ref, err := parseRef(c.Args().Get(0))
				if err != nil {
					return err
				}
				return ctl.Client.SetMeta(background(), ref, c.Args().Get(1), c.Args().Get(2), c.Bool("create"))
			},
		},
	},
}

// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/pavoi/hudson/internal/models"
)

type (
	clientFactory  func() *Client
	printerFactory func(cmd *cobra.Command) *Printer
	stateCall      func(ctx context.Context, c *Client, setID int64, args []string) (*models.LiveState, error)
)

const (
	colorFlag  = "color"
	presetFlag = "preset"
)

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", kind, s)
	}
	return id, nil
}

func parseInt(kind, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", kind, s)
	}
	return n, nil
}

// stateCommand builds a subcommand whose first argument is the product set ID.
func stateCommand(use, short string, args cobra.PositionalArgs, clients clientFactory, printer printerFactory, call stateCall) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			setID, err := parseID("product set ID", argv[0])
			if err != nil {
				return err
			}
			live, err := call(cmd.Context(), clients(), setID, argv[1:])
			if err != nil {
				return err
			}
			return printer(cmd).State(live)
		},
	}
}

func newStateCommand(clients clientFactory, printer printerFactory) *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Read or change the live state of a product set",
	}

	stateCmd.AddCommand(
		stateCommand("get SET_ID", "Show the live state", cobra.ExactArgs(1), clients, printer,
			func(ctx context.Context, c *Client, setID int64, _ []string) (*models.LiveState, error) {
				return c.GetState(ctx, setID)
			}),
		stateCommand("init SET_ID", "Create the state row if missing", cobra.ExactArgs(1), clients, printer,
			func(ctx context.Context, c *Client, setID int64, _ []string) (*models.LiveState, error) {
				return c.InitializeState(ctx, setID)
			}),
		stateCommand("jump SET_ID POSITION", "Make the entry at POSITION current", cobra.ExactArgs(2), clients, printer,
			func(ctx context.Context, c *Client, setID int64, args []string) (*models.LiveState, error) {
				pos, err := parseInt("position", args[0])
				if err != nil {
					return nil, err
				}
				return c.Jump(ctx, setID, pos)
			}),
		stateCommand("next SET_ID", "Advance to the next entry", cobra.ExactArgs(1), clients, printer,
			func(ctx context.Context, c *Client, setID int64, _ []string) (*models.LiveState, error) {
				return c.Next(ctx, setID)
			}),
		stateCommand("prev SET_ID", "Go back one entry", cobra.ExactArgs(1), clients, printer,
			func(ctx context.Context, c *Client, setID int64, _ []string) (*models.LiveState, error) {
				return c.Previous(ctx, setID)
			}),
		stateCommand("image SET_ID next|previous|INDEX", "Cycle or select the current entry's image", cobra.ExactArgs(2), clients, printer,
			func(ctx context.Context, c *Client, setID int64, args []string) (*models.LiveState, error) {
				switch args[0] {
				case "next", "previous":
					return c.CycleImage(ctx, setID, args[0])
				}
				idx, err := parseInt("image index", args[0])
				if err != nil {
					return nil, err
				}
				return c.SetImage(ctx, setID, idx)
			}),
		newMessageCommand(clients, printer),
		stateCommand("clear SET_ID", "Remove the host message", cobra.ExactArgs(1), clients, printer,
			func(ctx context.Context, c *Client, setID int64, _ []string) (*models.LiveState, error) {
				return c.ClearMessage(ctx, setID)
			}),
	)
	return stateCmd
}

func newMessageCommand(clients clientFactory, printer printerFactory) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		colorFlag: &cobraflags.StringFlag{
			Name:  colorFlag,
			Value: string(models.ColorDefault),
			Usage: "Message color (default, red, orange, yellow, green, blue, purple)",
		},
		presetFlag: &cobraflags.StringFlag{
			Name:  presetFlag,
			Value: "",
			Usage: "Send a saved message preset by ID instead of TEXT",
		},
	}

	cmd := stateCommand("message SET_ID [TEXT]", "Show a message to the host", cobra.RangeArgs(1, 2), clients, printer,
		func(ctx context.Context, c *Client, setID int64, args []string) (*models.LiveState, error) {
			if preset := flags[presetFlag].GetString(); preset != "" {
				if len(args) > 0 {
					return nil, fmt.Errorf("TEXT and --%s are mutually exclusive", presetFlag)
				}
				presetID, err := parseID("preset ID", preset)
				if err != nil {
					return nil, err
				}
				return c.SendPreset(ctx, setID, presetID)
			}
			if len(args) == 0 {
				return nil, fmt.Errorf("TEXT or --%s is required", presetFlag)
			}
			return c.SendMessage(ctx, setID, args[0], models.MessageColor(flags[colorFlag].GetString()))
		})
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

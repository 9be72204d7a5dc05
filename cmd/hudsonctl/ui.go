// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUICommand(clients clientFactory, printer printerFactory) *cobra.Command {
	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Change host view toggles",
	}
	uiCmd.AddCommand(&cobra.Command{
		Use:   "set SET_ID KEY true|false",
		Short: "Set a host view toggle",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("product set ID", args[0])
			if err != nil {
				return err
			}
			value, err := strconv.ParseBool(args[2])
			if err != nil {
				return fmt.Errorf("invalid toggle value %q: must be true or false", args[2])
			}
			toggle, err := clients().SetUIToggle(cmd.Context(), setID, args[1], value)
			if err != nil {
				return err
			}
			return printer(cmd).Toggle(toggle)
		},
	})
	return uiCmd
}

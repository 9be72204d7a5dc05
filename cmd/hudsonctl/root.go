// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	serverKey  = "server"
	timeoutKey = "timeout"
	outputKey  = "output"

	defaultServer  = "http://localhost:4000"
	defaultTimeout = 10 * time.Second
)

// newRootCommand builds the command tree. Global settings resolve as
// flag > HUDSONCTL_* environment > default.
func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("HUDSONCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "hudsonctl",
		Short: "Control live product sets on a Hudson server",
		Long: `hudsonctl sends producer actions to a running Hudson server.

Every state command prints the resulting live state as JSON.

Examples:
  hudsonctl state get 12
  hudsonctl state jump 12 3
  hudsonctl state message 12 "Code SPRING10 at checkout" --color green
  HUDSONCTL_SERVER=https://hudson.example.com hudsonctl state next 12`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(serverKey, defaultServer, "Hudson server base URL (HUDSONCTL_SERVER)")
	flags.Duration(timeoutKey, defaultTimeout, "Request timeout (HUDSONCTL_TIMEOUT)")
	flags.StringP(outputKey, "o", "json", "Output format: json or text (HUDSONCTL_OUTPUT)")
	for _, key := range []string{serverKey, timeoutKey, outputKey} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	clientFor := func() *Client {
		return NewClient(v.GetString(serverKey), v.GetDuration(timeoutKey))
	}
	printer := func(cmd *cobra.Command) *Printer {
		return NewPrinter(cmd.OutOrStdout(), v.GetString(outputKey))
	}

	root.AddCommand(newStateCommand(clientFor, printer))
	root.AddCommand(newUICommand(clientFor, printer))
	return root
}

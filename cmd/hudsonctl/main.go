// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Command hudsonctl drives the live state of a product set on a running
// Hudson server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

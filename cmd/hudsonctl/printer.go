// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pavoi/hudson/internal/models"
)

// Printer renders command results as indented JSON or a short text summary.
type Printer struct {
	w    io.Writer
	text bool
}

// NewPrinter returns a printer for format "json" or "text".
func NewPrinter(w io.Writer, format string) *Printer {
	return &Printer{w: w, text: strings.EqualFold(format, "text")}
}

// State prints a live state.
func (p *Printer) State(s *models.LiveState) error {
	if !p.text {
		return p.json(s)
	}
	fmt.Fprintf(p.w, "set %d  version %d  entries %d\n", s.ProductSetID, s.State.Version, s.EntryCount)
	if s.Current == nil {
		fmt.Fprintln(p.w, "current: none")
	} else if s.Current.ImageCount == 0 {
		fmt.Fprintf(p.w, "current: #%d %s  no images\n", s.Current.Position, s.Current.Name)
	} else {
		fmt.Fprintf(p.w, "current: #%d %s  image %d/%d\n",
			s.Current.Position, s.Current.Name, s.State.CurrentImageIndex+1, s.Current.ImageCount)
	}
	if m := s.State.HostMessage; m != nil {
		fmt.Fprintf(p.w, "message: [%s] %s\n", m.Color, m.Text)
	}
	return nil
}

// Toggle prints a UI toggle.
func (p *Printer) Toggle(t *models.UIToggle) error {
	if !p.text {
		return p.json(t)
	}
	_, err := fmt.Fprintf(p.w, "set %d  %s=%t\n", t.ProductSetID, t.Key, t.Value)
	return err
}

func (p *Printer) json(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, string(b))
	return err
}

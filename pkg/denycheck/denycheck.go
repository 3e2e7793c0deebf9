// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

// Package denycheck is the externally visible entry point of the deny-word
// filter: it orchestrates a structural scan of a request payload against a
// compiled matcher and returns a verdict. The facade is a pure function of
// its inputs, never mutates the matcher, and is safe for unlimited
// concurrent use.
//
// The facade fails closed. When the scanner cannot safely determine an
// answer (payload too deep, too large, or of an unsupported shape), the
// verdict is a reject carrying the cause; allowing a payload through on an
// internal error is never an option.
package denycheck

import (
	"fmt"

	"github.com/mcpany/denyfilter/pkg/denylist"
)

// Outcome is the verdict of a single deny check.
type Outcome struct {
	// Matched reports whether the payload must be rejected, either because a
	// deny word was found or because the scan failed closed.
	Matched bool
	// Word is the matched deny word as configured. Empty for fail-closed
	// rejects and for allowed payloads.
	Word string
	// ListName and Priority attribute a word match to its list.
	ListName string
	Priority int
	// Location is the key/index path of the matching string leaf.
	Location string
	// Reason carries the cause of a fail-closed reject (depth, size or type
	// guard), retained for observability.
	Reason string
}

// Message renders a human-readable rejection reason. With redact true the
// literal matched word is withheld and only the list name is exposed; callers
// that are authorized to see the word pass false.
func (o Outcome) Message(redact bool) string {
	switch {
	case !o.Matched:
		return "prompt allowed"
	case o.Word == "":
		return fmt.Sprintf("prompt rejected: %s", o.Reason)
	case redact:
		return fmt.Sprintf("prompt rejected: matched deny word from list %q", o.ListName)
	default:
		return fmt.Sprintf("prompt rejected: matched deny word %q from list %q", o.Word, o.ListName)
	}
}

// Checker applies scan limits to checks. The zero value uses the scanner
// defaults and is ready to use.
type Checker struct {
	Limits denylist.ScanLimits
}

// Check scans a payload value tree against m and returns the verdict.
func (c *Checker) Check(payload any, m *denylist.CompiledMatcher) Outcome {
	out, err := denylist.ScanAny(payload, m, c.Limits)
	return verdict(out, err)
}

// CheckJSON scans a raw JSON payload against m, preserving the document's
// key order, and returns the verdict.
func (c *Checker) CheckJSON(raw []byte, m *denylist.CompiledMatcher) Outcome {
	out, err := denylist.ScanJSON(raw, m, c.Limits)
	return verdict(out, err)
}

// verdict maps a scan result into an Outcome, converting scanner errors into
// fail-closed rejects.
func verdict(out *denylist.MatchOutcome, err error) Outcome {
	if err != nil {
		return Outcome{Matched: true, Reason: err.Error()}
	}
	if !out.Matched {
		return Outcome{}
	}
	return Outcome{
		Matched:  true,
		Word:     out.Word,
		ListName: out.ListName,
		Priority: out.Priority,
		Location: out.Location,
		Reason:   "deny word matched",
	}
}

var defaultChecker = &Checker{}

// Check scans payload with the default limits. See Checker.Check.
func Check(payload any, m *denylist.CompiledMatcher) Outcome {
	return defaultChecker.Check(payload, m)
}

// CheckJSON scans raw JSON with the default limits. See Checker.CheckJSON.
func CheckJSON(raw []byte, m *denylist.CompiledMatcher) Outcome {
	return defaultChecker.CheckJSON(raw, m)
}

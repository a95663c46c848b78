// Copyright (C) 2020-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// GetTerminalWidth returns the width of the terminal that you should wrap
// text to; 0 means "don't wrap".
func GetTerminalWidth() int {
	// Obey COLUMNS if the shell or user sets it.
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		return cols
	}

	// Try to detect the size of the stdout file descriptor.
	if cols, _, err := term.GetSize(1); err == nil {
		return cols
	}

	// If stdout is a terminal but we were unable to get its size, then
	// fall back to assuming 80.
	if term.IsTerminal(1) {
		return 80
	}

	// If stdout isn't a terminal, then don't wrap at all.
	return 0
}

// Wrap wraps the string `s` to a maximum width `w`.  Pass `w` == 0 to do no
// wrapping.
//
// In order to have some room for slop to avoid things like a short word being
// on a line by itself, most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// WrapIndent wraps the string `s` to a maximum width `w` with leading indent
// `i`.  The first line is not indented (this is assumed to be done by
// caller).  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being
// on a line by itself, most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, str string) string {
	limit := width - 5 - indent
	if width == 0 || limit < 1 {
		return str
	}

	var out strings.Builder
	for lineno, line := range strings.Split(str, "\n") {
		if lineno > 0 {
			out.WriteString("\n")
			out.WriteString(strings.Repeat(" ", indent))
		}
		// Split on single spaces; an empty word then stands for each
		// extra space in a run of spaces, so that mid-line spacing
		// (like double spaces after a sentence) survives.
		var cur strings.Builder
		broke := false
		for _, word := range strings.Split(line, " ") {
			switch {
			case cur.Len() == 0:
				if word == "" && broke {
					// Eat the spaces at a line break.
					continue
				}
				cur.WriteString(word)
			case cur.Len()+1+len(word) >= limit:
				out.WriteString(cur.String())
				out.WriteString("\n")
				out.WriteString(strings.Repeat(" ", indent))
				cur.Reset()
				broke = true
				if word != "" {
					cur.WriteString(word)
				}
			default:
				cur.WriteString(" ")
				cur.WriteString(word)
			}
		}
		out.WriteString(cur.String())
	}
	return out.String()
}

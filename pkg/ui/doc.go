// Package ui holds the terminal output helpers of the srer command: colored
// status lines, go-pretty tables for run reports and rain gages, a plain
// progress printer and desktop notifications. The bubbletea progress view
// lives in the tui subpackage.
//
// Colors are on only when stdout is a terminal; SetColorEnabled overrides
// the detection (the --no-color flag).
package ui

package main

import (
	"github.com/fatih/color"

	"github.com/joshuapare/arenakit/arena"
)

var (
	styleFree    = color.New(color.FgGreen)
	styleLive    = color.New(color.FgCyan, color.Bold)
	styleError   = color.New(color.FgRed, color.Bold)
	styleOK      = color.New(color.FgGreen, color.Bold)
	styleHeading = color.New(color.Bold, color.Underline)
	styleDim     = color.New(color.Faint)
)

// stateLabel colours a block state the same way everywhere.
func stateLabel(s arena.State) string {
	if s == arena.StateFree {
		return styleFree.Sprint(s.String())
	}
	return styleLive.Sprint(s.String())
}

package ui

import (
	"github.com/pterm/pterm"
)

func Green(a any) string {
	return pterm.Green(a)
}

func Cyan(a any) string {
	return pterm.Cyan(a)
}

package main

import (
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", errUnknownFlagValue("ui", value, "auto|on|off")
	}
}

// shouldUseTUI: the progress UI draws on stderr, so auto needs a terminal there.
// Machine-readable formats never get it in auto mode.
func shouldUseTUI(mode uiMode, format string) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		if format != "pretty" && format != "short" {
			return false
		}
		return isTerminal(os.Stderr)
	}
}

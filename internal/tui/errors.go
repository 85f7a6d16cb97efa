package tui

import (
	"errors"
	"fmt"
	"strings"
)

var errNoOpener = errors.New("no browser opener configured")

// wrapErr formats an error with a contextual prefix.
func wrapErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// errorText renders err as "Error: <msg>". Backend status errors already
// carry the prefix.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "Error: ") {
		return msg
	}
	return "Error: " + msg
}

package main

import (
	"github.com/charmbracelet/log"
	"golang.design/x/clipboard"
)

// Clipboard copies text to the system clipboard when one is available.
type Clipboard struct {
	ok bool
}

func newClipboard(logger *log.Logger) *Clipboard {
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable, copy disabled", "err", err)
		return &Clipboard{}
	}
	return &Clipboard{ok: true}
}

// CopyText writes s as plain text and reports whether it was copied.
func (c *Clipboard) CopyText(s string) bool {
	if c == nil || !c.ok || s == "" {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return true
}

package tui

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"

	"browsershell/internal/platform"
)

func init() {
	// The system browser must not write over the alt screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// SystemOpener opens URLs with the desktop's default browser and copies text
// to the system clipboard.
type SystemOpener struct{}

var _ platform.Opener = SystemOpener{}

func (SystemOpener) OpenURL(url string) error {
	return browser.OpenURL(url)
}

func (SystemOpener) CopyText(text string) error {
	return clipboard.WriteAll(text)
}

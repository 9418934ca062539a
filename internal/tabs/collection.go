// Package tabs implements the ordered tab list of a window.
//
// A Collection keeps exactly one foreground browser whenever it is
// non-empty: Current points at it and it is the only entry with
// IsBackground == false. Every mutating method restores that before it
// returns, and methods that fail leave the collection untouched.
//
// Indices are only meaningful until the next structural change. Callers that
// need the foreground session after AppendNew or KillFG re-read it with
// RefFGBrowser.
package tabs

import (
	"errors"
	"fmt"
)

var (
	// ErrNoForeground is returned when the collection is empty.
	ErrNoForeground = errors.New("no foreground browser")
	// ErrLastTab is returned by KillFG on a single-entry collection.
	ErrLastTab = errors.New("cannot close the last tab")
	// ErrNoNext is returned by SelectNext at the last position.
	ErrNoNext = errors.New("no next tab")
	// ErrNoPrev is returned by SelectPrev at the first position.
	ErrNoPrev = errors.New("no previous tab")
	// ErrIndexOutOfRange is returned by SelectNth for idx >= Len.
	ErrIndexOutOfRange = errors.New("tab index out of range")
	// ErrNoSuchBrowser signals a malformed collection.
	ErrNoSuchBrowser = errors.New("no such browser")
)

// Collection is an ordered list of browsers with one foreground entry.
type Collection struct {
	Browsers []Browser `json:"browsers"`
	Current  *int      `json:"current_index"`
}

// Len returns the number of tabs.
func (c *Collection) Len() int {
	return len(c.Browsers)
}

// HasMoreThanOne reports whether closing the foreground tab is allowed.
func (c *Collection) HasMoreThanOne() bool {
	return len(c.Browsers) > 1
}

// AppendNew adds b at the end and makes it the foreground tab.
func (c *Collection) AppendNew(b Browser) error {
	if err := c.checkWellFormed(); err != nil {
		return err
	}
	c.Browsers = append(c.Browsers, b)
	c.selectIndex(len(c.Browsers) - 1)
	return nil
}

// KillFG removes the foreground tab and returns it. The tab that followed it
// becomes foreground, or the new last tab if it was last.
func (c *Collection) KillFG() (Browser, error) {
	idx, err := c.currentIndex()
	if err != nil {
		return Browser{}, err
	}
	if len(c.Browsers) == 1 {
		return Browser{}, ErrLastTab
	}

	removed := c.Browsers[idx]
	c.Browsers = append(c.Browsers[:idx], c.Browsers[idx+1:]...)
	if idx >= len(c.Browsers) {
		idx = len(c.Browsers) - 1
	}
	c.selectIndex(idx)
	return removed, nil
}

// CanSelectNext reports whether SelectNext would succeed.
func (c *Collection) CanSelectNext() (bool, error) {
	idx, err := c.currentIndex()
	if err != nil {
		return false, err
	}
	return idx < len(c.Browsers)-1, nil
}

// CanSelectPrev reports whether SelectPrev would succeed.
func (c *Collection) CanSelectPrev() (bool, error) {
	idx, err := c.currentIndex()
	if err != nil {
		return false, err
	}
	return idx > 0, nil
}

// SelectNext moves the foreground one tab to the right. It does not wrap.
func (c *Collection) SelectNext() error {
	idx, err := c.currentIndex()
	if err != nil {
		return err
	}
	if idx >= len(c.Browsers)-1 {
		return ErrNoNext
	}
	c.selectIndex(idx + 1)
	return nil
}

// SelectPrev moves the foreground one tab to the left. It does not wrap.
func (c *Collection) SelectPrev() error {
	idx, err := c.currentIndex()
	if err != nil {
		return err
	}
	if idx == 0 {
		return ErrNoPrev
	}
	c.selectIndex(idx - 1)
	return nil
}

// SelectFirst makes the first tab foreground.
func (c *Collection) SelectFirst() error {
	if len(c.Browsers) == 0 {
		return ErrNoForeground
	}
	c.selectIndex(0)
	return nil
}

// SelectLast makes the last tab foreground.
func (c *Collection) SelectLast() error {
	if len(c.Browsers) == 0 {
		return ErrNoForeground
	}
	c.selectIndex(len(c.Browsers) - 1)
	return nil
}

// CanSelectNth reports whether idx addresses a tab.
func (c *Collection) CanSelectNth(idx int) bool {
	return idx >= 0 && idx < len(c.Browsers)
}

// SelectNth makes the tab at idx foreground.
func (c *Collection) SelectNth(idx int) error {
	if !c.CanSelectNth(idx) {
		return fmt.Errorf("select tab %d of %d: %w", idx, len(c.Browsers), ErrIndexOutOfRange)
	}
	c.selectIndex(idx)
	return nil
}

// RefFGBrowser returns a copy of the foreground tab.
func (c *Collection) RefFGBrowser() (Browser, error) {
	idx, err := c.currentIndex()
	if err != nil {
		return Browser{}, err
	}
	return c.Browsers[idx], nil
}

// MutFGBrowser returns the foreground tab for mutation. The pointer is only
// valid until the next structural change.
func (c *Collection) MutFGBrowser() (*Browser, error) {
	idx, err := c.currentIndex()
	if err != nil {
		return nil, err
	}
	return &c.Browsers[idx], nil
}

// FindBrowser looks up a tab by id regardless of foreground status. It
// returns nil when the id is unknown, which is expected for events that
// arrive after their tab was closed.
func (c *Collection) FindBrowser(id BrowserID) *Browser {
	for i := range c.Browsers {
		if c.Browsers[i].ID == id {
			return &c.Browsers[i]
		}
	}
	return nil
}

// IndexOf returns the position of the tab with id, or -1.
func (c *Collection) IndexOf(id BrowserID) int {
	for i := range c.Browsers {
		if c.Browsers[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) currentIndex() (int, error) {
	if len(c.Browsers) == 0 {
		return 0, ErrNoForeground
	}
	if c.Current == nil || *c.Current < 0 || *c.Current >= len(c.Browsers) {
		return 0, fmt.Errorf("current index invalid for %d tabs: %w", len(c.Browsers), ErrNoSuchBrowser)
	}
	return *c.Current, nil
}

func (c *Collection) checkWellFormed() error {
	if len(c.Browsers) == 0 {
		if c.Current != nil {
			return fmt.Errorf("empty collection with current index: %w", ErrNoSuchBrowser)
		}
		return nil
	}
	_, err := c.currentIndex()
	return err
}

func (c *Collection) selectIndex(idx int) {
	for i := range c.Browsers {
		c.Browsers[i].IsBackground = i != idx
	}
	c.Current = &idx
}

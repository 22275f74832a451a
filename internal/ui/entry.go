package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
)

// FilteredEntry is an Entry that drops typed runes rejected by its filter.
// Pasted text bypasses TypedRune, so callers still validate the final value.
type FilteredEntry struct {
	widget.Entry

	accept   func(r rune) bool
	keyboard mobile.KeyboardType
}

// NewNumericalEntry accepts digits only (e.g. the feed port).
func NewNumericalEntry() *FilteredEntry {
	return newFilteredEntry(isDigit, mobile.NumberKeyboard)
}

// NewDateEntry accepts digits and the date separator.
func NewDateEntry() *FilteredEntry {
	e := newFilteredEntry(func(r rune) bool {
		return isDigit(r) || r == config.DateEntrySeparator
	}, mobile.NumberKeyboard)
	e.PlaceHolder = config.DateEntryPlaceholder
	return e
}

func newFilteredEntry(accept func(rune) bool, kb mobile.KeyboardType) *FilteredEntry {
	e := &FilteredEntry{accept: accept, keyboard: kb}
	e.ExtendBaseWidget(e)
	return e
}

// TypedRune forwards accepted runes to the embedded Entry.
func (e *FilteredEntry) TypedRune(r rune) {
	if e.accept == nil || e.accept(r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard selects the mobile keyboard layout.
func (e *FilteredEntry) Keyboard() mobile.KeyboardType {
	return e.keyboard
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/ui"
)

func TestFilteredEntry_TypedRune(t *testing.T) {
	tests := []struct {
		name     string
		input    rune
		numeric  bool
		dateLike bool
	}{
		{"Digit_Zero", '0', true, true},
		{"Digit_Nine", '9', true, true},
		{"Letter_a", 'a', false, false},
		{"Letter_Z", 'Z', false, false},
		{"Symbol_Dash", '-', false, true},
		{"Symbol_Slash", '/', false, false},
		{"Symbol_Space", ' ', false, false},
	}

	numeric := ui.NewNumericalEntry()
	date := ui.NewDateEntry()
	w := test.NewWindow(nil)
	defer w.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range []struct {
				entry    *ui.FilteredEntry
				accepted bool
			}{{numeric, tt.numeric}, {date, tt.dateLike}} {
				c.entry.SetText("")
				w.SetContent(c.entry)
				test.Type(c.entry, string(tt.input))

				if c.accepted {
					assert.Equal(t, string(tt.input), c.entry.Text)
				} else {
					assert.Empty(t, c.entry.Text)
				}
			}
		})
	}
}

func TestDateEntry_FullDate(t *testing.T) {
	entry := ui.NewDateEntry()
	w := test.NewWindow(entry)
	defer w.Close()

	test.Type(entry, "1990-06-20abc")
	assert.Equal(t, "1990-06-20", entry.Text)
	assert.Equal(t, config.DateEntryPlaceholder, entry.PlaceHolder)
}

func TestFilteredEntry_Keyboard(t *testing.T) {
	assert.Equal(t, mobile.NumberKeyboard, ui.NewNumericalEntry().Keyboard())
	assert.Equal(t, mobile.NumberKeyboard, ui.NewDateEntry().Keyboard())
}

// Direct setting bypasses TypedRune; validation happens separately.
func TestFilteredEntry_DirectSetText(t *testing.T) {
	entry := ui.NewNumericalEntry()
	entry.SetText("abc")
	assert.Equal(t, "abc", entry.Text)
}

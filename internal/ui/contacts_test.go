package ui

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

const vcards = `BEGIN:VCARD
VERSION:3.0
FN:Success User
BDAY:19900620
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Year Unknown
BDAY:--0101
END:VCARD
`

func date(y int, m time.Month, d int) engine.CalendarDate {
	return engine.CalendarDate{Year: y, Month: m, Day: d}
}

// -----------------------------------------------------------------------------
// Import & Pick
// -----------------------------------------------------------------------------

func TestImportContacts_Success(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)

	fetcher.On("Fetch", mock.Anything, "http://test.local", "", "").
		Return(io.NopCloser(bytes.NewBufferString(vcards)), nil)
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, "http://test.local")

	test.AssertNotificationSent(t, fyne.NewNotification(config.AppName, "1 contact with a birth date loaded"), func() {
		require.NoError(t, app.ImportContacts())
	})
	fetcher.AssertExpectations(t)

	contacts := app.contactsSnapshot()
	require.Len(t, contacts, 1, "Year-less birthdays cannot give an age")
	assert.Equal(t, "Success User", contacts[0].Name)
	assert.Equal(t, date(1990, time.June, 20), contacts[0].Birth)
	assert.Equal(t, 34, contacts[0].Next.Turns)
}

func TestImportContacts_Failure(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	app.Contacts = []engine.BirthdayEntry{{Name: "Kept"}}

	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, "http://test.local")

	test.AssertNotificationSent(t, fyne.NewNotification(config.AppName, app.Catalog.Msg(config.TKeyNotifImportErr)), func() {
		assert.Error(t, app.ImportContacts())
	})
	assert.Len(t, app.contactsSnapshot(), 1, "A failed import keeps the previous list")
}

func TestPickContact_ComputesImmediately(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.PickContact(engine.BirthdayEntry{Name: "Ada", Birth: date(1990, time.June, 20)})

	require.NotNil(t, app.Report())
	assert.Equal(t, 33, app.Report().Years)
	assert.Equal(t, "1990-06-20", app.entry.Text)
	assert.False(t, app.debouncer.Pending(), "The entry change must not schedule a second computation")
}

// -----------------------------------------------------------------------------
// Sorting & Formatting
// -----------------------------------------------------------------------------

func sampleContacts() []engine.BirthdayEntry {
	return []engine.BirthdayEntry{
		{Name: "charlie", Birth: date(1980, time.January, 1), Next: engine.NextBirthday{Date: date(2025, time.January, 1), DaysUntil: 292, Turns: 45}},
		{Name: "Bob", Birth: date(2000, time.June, 1), Next: engine.NextBirthday{Date: date(2024, time.June, 1), DaysUntil: 78, Turns: 24}},
		{Name: "alice", Birth: date(1990, time.December, 31), Next: engine.NextBirthday{Date: date(2024, time.December, 31), DaysUntil: 291, Turns: 34}},
		{Name: "Alan", Birth: date(2000, time.June, 1), Next: engine.NextBirthday{Date: date(2024, time.June, 1), DaysUntil: 78, Turns: 24}},
	}
}

func names(entries []engine.BirthdayEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSortContacts(t *testing.T) {
	tests := []struct {
		name string
		col  int
		asc  bool
		want []string
	}{
		{"Name_Asc_CaseInsensitive", config.ColIDName, true, []string{"Alan", "alice", "Bob", "charlie"}},
		{"Name_Desc", config.ColIDName, false, []string{"charlie", "Bob", "alice", "Alan"}},
		{"Birth_Asc_TieOnName", config.ColIDBirth, true, []string{"charlie", "alice", "Alan", "Bob"}},
		{"Next_Asc", config.ColIDNext, true, []string{"Alan", "Bob", "alice", "charlie"}},
		{"Turns_Desc", config.ColIDTurns, false, []string{"charlie", "alice", "Bob", "Alan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := sampleContacts()
			sortContacts(data, tt.col, tt.asc)
			assert.Equal(t, tt.want, names(data))
		})
	}
}

func TestCellText(t *testing.T) {
	app, _, _ := setupTestApp(t)
	c := sampleContacts()[1]

	assert.Equal(t, "Bob", app.cellText(c, config.ColIDName))
	assert.Equal(t, "2000-06-01", app.cellText(c, config.ColIDBirth))
	assert.Equal(t, "2024-06-01 (78 days away)", app.cellText(c, config.ColIDNext))
	assert.Equal(t, "24", app.cellText(c, config.ColIDTurns))
	assert.Empty(t, app.cellText(c, config.ColCount))
}

func TestHeaderKey(t *testing.T) {
	assert.Equal(t, config.TKeyColName, headerKey(config.ColIDName))
	assert.Equal(t, config.TKeyColBirth, headerKey(config.ColIDBirth))
	assert.Equal(t, config.TKeyColNext, headerKey(config.ColIDNext))
	assert.Equal(t, config.TKeyColTurns, headerKey(config.ColIDTurns))
}

// TestContactsWindow_Singleton verifies the guard against multiple window instances.
func TestContactsWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)
	// An empty local path fails fast without touching the fetcher.
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeLocal)

	app.ShowContactsWindow()
	first := app.contactsWindow
	require.NotNil(t, first)

	app.ShowContactsWindow()
	assert.Same(t, first, app.contactsWindow)

	first.Close()
	assert.Nil(t, app.contactsWindow)
}

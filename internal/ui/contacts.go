package ui

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// ImportContacts loads the configured address book into app.Contacts.
// It blocks on I/O and must not run on the Fyne goroutine.
func (app *AgeApp) ImportContacts() error {
	entries, err := app.Loader.Load(app.Ctx, app.loadSourceConfig())
	if err != nil {
		slog.Error(config.MsgImportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.Catalog.Msg(config.TKeyNotifImportErr)))
		return err
	}

	app.ContactsMut.Lock()
	app.Contacts = entries
	app.ContactsMut.Unlock()

	app.App.SendNotification(fyne.NewNotification(config.AppName, app.Catalog.Plural(config.TKeyNotifImportOK, len(entries))))
	return nil
}

// PickContact fills the birth date field and computes immediately.
func (app *AgeApp) PickContact(c engine.BirthdayEntry) {
	slog.Info(config.MsgContactPicked,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyName, c.Name)

	value := c.Birth.String()
	if app.entry != nil {
		fyne.Do(func() { app.entry.SetText(value) })
	}
	app.debouncer.Flush(value)
}

// contactsSnapshot copies the contacts so sorting never races an import.
func (app *AgeApp) contactsSnapshot() []engine.BirthdayEntry {
	app.ContactsMut.RLock()
	defer app.ContactsMut.RUnlock()
	out := make([]engine.BirthdayEntry, len(app.Contacts))
	copy(out, app.Contacts)
	return out
}

// sortContacts orders entries by the given column.
// Ties on birth date, next birthday and age fall back to the name.
func sortContacts(entries []engine.BirthdayEntry, col int, asc bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		var cmp int
		switch col {
		case config.ColIDBirth:
			cmp = a.Birth.Compare(b.Birth)
		case config.ColIDNext:
			cmp = a.Next.Date.Compare(b.Next.Date)
		case config.ColIDTurns:
			cmp = a.Next.Turns - b.Next.Turns
		}
		if cmp == 0 {
			cmp = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
		if !asc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// cellText returns the display string of one table cell.
func (app *AgeApp) cellText(c engine.BirthdayEntry, col int) string {
	switch col {
	case config.ColIDName:
		return c.Name
	case config.ColIDBirth:
		return c.Birth.String()
	case config.ColIDNext:
		return c.Next.Date.String() + " (" + app.Catalog.Plural(config.TKeyDaysAway, c.Next.DaysUntil) + ")"
	case config.ColIDTurns:
		return strconv.Itoa(c.Next.Turns)
	}
	return ""
}

func headerKey(col int) string {
	switch col {
	case config.ColIDBirth:
		return config.TKeyColBirth
	case config.ColIDNext:
		return config.TKeyColNext
	case config.ColIDTurns:
		return config.TKeyColTurns
	default:
		return config.TKeyColName
	}
}

// ShowContactsWindow lists the imported contacts. Selecting a row computes its age.
// The window is a singleton: a second call requests focus.
func (app *AgeApp) ShowContactsWindow() {
	if app.contactsWindow != nil {
		app.contactsWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.Catalog.Msg(config.TKeyWinContacts))
	w.Resize(fyne.NewSize(config.ContactsWinWidth, config.ContactsWinHeight))
	app.contactsWindow = w

	display := app.contactsSnapshot()
	slog.Info(config.MsgOpenContacts,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(display))

	currentSortCol := config.ColIDNext
	sortAsc := true

	performSort := func() {
		sortContacts(display, currentSortCol, sortAsc)
		slog.Debug(config.MsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}
	performSort()

	empty := widget.NewLabel(app.Catalog.Msg(config.TKeyContactsEmpty))
	empty.Alignment = fyne.TextAlignCenter

	table := widget.NewTable(
		func() (int, int) {
			return len(display), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= len(display) {
				return
			}
			o.(*widget.Label).SetText(app.cellText(display[id.Row], id.Col))
		},
	)

	var refreshTable func()

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.HeaderPlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		text := app.Catalog.Msg(headerKey(id.Col))
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)
		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.OnSelected = func(id widget.TableCellID) {
		if id.Row < 0 || id.Row >= len(display) {
			return
		}
		picked := display[id.Row]
		table.UnselectAll()
		go app.PickContact(picked)
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDBirth, config.ColWidthBirth)
	table.SetColumnWidth(config.ColIDNext, config.ColWidthNext)
	table.SetColumnWidth(config.ColIDTurns, config.ColWidthTurns)

	refreshTable = func() {
		if len(display) == 0 {
			empty.Show()
		} else {
			empty.Hide()
		}
		performSort()
		table.Refresh()
	}
	refreshTable()

	w.SetContent(container.NewStack(table, container.NewCenter(empty)))
	w.SetOnClosed(func() {
		app.contactsWindow = nil
	})
	w.Show()

	// Reload in the background; the table picks up the result.
	go func() {
		if err := app.ImportContacts(); err != nil {
			return
		}
		fresh := app.contactsSnapshot()
		fyne.Do(func() {
			display = fresh
			refreshTable()
		})
	}()
}

package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	pathEntry  *widget.Entry
	feedCheck  *widget.Check
	entryPort  *FilteredEntry
}

// ShowSettingsWindow displays the preferences: language, contact source and calendar feed.
func (app *AgeApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.Catalog.Msg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- General ---
	itemLang := widget.NewFormItem(app.Catalog.Msg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.Catalog.Msg(config.TKeyHelpLanguage)
	generalForm := widget.NewForm(itemLang)

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)
	feedCard := app.buildFeedCard(sw, onLayoutChange)

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.Catalog.Msg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		// Only the port blocks saving, and only while the feed is enabled.
		if sw.feedCheck.Checked {
			if err := sw.entryPort.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.Catalog.Msg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.Catalog.Msg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalForm,
		sourceCard,
		feedCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the inputs pre-filled from the preferences and the keyring.
func (app *AgeApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.Catalog.Languages(), nil)
	sw.langSelect.SetSelected(app.Catalog.Language())

	sw.modeSelect = widget.NewSelect([]string{
		app.Catalog.Msg(config.TKeyModeCardDAV),
		app.Catalog.Msg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.feedCheck = widget.NewCheck(app.Catalog.Msg(config.TKeyLblFeedEnable), nil)
	sw.feedCheck.Checked = app.Preferences.BoolWithFallback(config.PrefFeedEnabled, true)

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	return sw
}

// validatePort checks that s is a port in [MinPort, MaxPort].
func (app *AgeApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.Catalog.Msg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.Catalog.Msg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.Catalog.Msg(config.TKeyErrPortRange))
	}
	return nil
}

// buildSourceCard constructs the contact source selection UI.
func (app *AgeApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.Catalog.Msg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.Catalog.Msg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.Catalog.Msg(config.TKeyHelpURL)
	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.Catalog.Msg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.Catalog.Msg(config.TKeyLblPass), sw.passEntry),
	)

	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyMode := func(mode string) {
		if mode == app.Catalog.Msg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
	}
	sw.modeSelect.OnChanged = func(mode string) {
		applyMode(mode)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		sw.modeSelect.SetSelected(app.Catalog.Msg(config.TKeyModeLocal))
	} else {
		sw.modeSelect.SetSelected(app.Catalog.Msg(config.TKeyModeCardDAV))
	}
	applyMode(sw.modeSelect.Selected)

	return widget.NewCard(app.Catalog.Msg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// buildFeedCard constructs the calendar feed toggle and port field.
func (app *AgeApp) buildFeedCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	itemPort := widget.NewFormItem(app.Catalog.Msg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.Catalog.Msg(config.TKeyHelpPort)
	portForm := widget.NewForm(itemPort)

	sw.feedCheck.OnChanged = func(on bool) {
		if on {
			portForm.Show()
		} else {
			portForm.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	if !sw.feedCheck.Checked {
		portForm.Hide()
	}

	return widget.NewCard(app.Catalog.Msg(config.TKeyLblFeed), "", container.NewVBox(sw.feedCheck, portForm))
}

// saveSettings persists the preferences, then applies the language and restarts the feed.
func (app *AgeApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSavingPrefs, config.LogKeyComponent, config.CompUISet)

	modeMap := map[string]string{
		app.Catalog.Msg(config.TKeyModeCardDAV): config.SourceModeWeb,
		app.Catalog.Msg(config.TKeyModeLocal):   config.SourceModeLocal,
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, modeMap[sw.modeSelect.Selected])
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)
	app.Preferences.SetBool(config.PrefFeedEnabled, sw.feedCheck.Checked)
	if app.validatePort(sw.entryPort.Text) == nil {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	if sw.langSelect.Selected != "" && sw.langSelect.Selected != app.Catalog.Language() {
		if err := app.SetLanguage(sw.langSelect.Selected); err != nil {
			slog.Error(config.ErrUnknownLanguage, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.RestartFeed()
}

// Package ui is the Fyne desktop front end: main window, contact picker,
// settings window and system tray.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/live"
	"github.com/tartampluch/go-age/internal/present"
	"github.com/tartampluch/go-age/internal/server"
	"github.com/zalando/go-keyring"
)

// AgeApp owns the UI state and is the single writer of the displayed report.
type AgeApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Ctx         context.Context

	Clock     engine.Clock // Injected clock for testability
	Gate      *engine.Gate
	Catalog   *present.Catalog
	Presenter *present.Presenter
	Loader    *engine.ContactLoader

	// NewFeedServer builds the calendar server for a port; replaced in tests.
	NewFeedServer func(port string) *server.FeedServer

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayOpenItem     *fyne.MenuItem
	TrayContactsItem *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	debouncer *live.Debouncer
	ticker    *live.ElapsedTicker
	surface   *windowSurface

	entry       *FilteredEntry
	lblBirth    *widget.Label
	lblHelp     *widget.Label
	btnCalc     *widget.Button
	btnContacts *widget.Button

	reportMu sync.RWMutex
	report   *engine.AgeReport

	feedMu     sync.Mutex
	feed       *server.FeedServer
	feedCancel context.CancelFunc
	feedDone   chan struct{}
	feedData   []byte

	// Contacts State
	ContactsMut    sync.RWMutex
	Contacts       []engine.BirthdayEntry
	contactsWindow fyne.Window
	settingsWindow fyne.Window
}

// NewAgeApp wires the application. The catalog language comes from the preferences.
func NewAgeApp(a fyne.App, ctx context.Context, fetcher engine.VCardFetcher) (*AgeApp, error) {
	prefs := a.Preferences()

	catalog, err := present.NewCatalog(prefs.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))
	if err != nil {
		slog.Warn(config.ErrUnknownLanguage,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		if catalog, err = present.NewCatalog(config.DefaultLanguage); err != nil {
			return nil, err
		}
	}

	clock := engine.Clock(engine.RealClock{})
	app := &AgeApp{
		App:           a,
		Preferences:   prefs,
		Ctx:           ctx,
		Clock:         clock,
		Gate:          engine.NewGate(clock),
		Catalog:       catalog,
		Presenter:     present.NewPresenter(catalog),
		Loader:        &engine.ContactLoader{Clock: clock, Fetcher: fetcher},
		NewFeedServer: server.NewFeedServer,
		surface:       newWindowSurface(),
		Contacts:      make([]engine.BirthdayEntry, 0),
	}

	app.debouncer = live.NewDebouncer(config.DebounceInterval, app.Calculate)
	app.ticker = live.NewElapsedTicker(clock, config.TickInterval, func(seconds int64) {
		app.Presenter.PatchElapsed(app.surface, seconds)
	})

	return app, nil
}

// SetClock replaces the time source of every component.
// A running ticker is stopped and resumed on the new clock.
func (app *AgeApp) SetClock(clock engine.Clock) {
	wasRunning := app.ticker.Running()
	app.ticker.Stop()

	app.Clock = clock
	app.Gate.Clock = clock
	app.Loader.Clock = clock
	app.ticker = live.NewElapsedTicker(clock, config.TickInterval, func(seconds int64) {
		app.Presenter.PatchElapsed(app.surface, seconds)
	})

	if report := app.Report(); wasRunning && report != nil {
		app.ticker.Start(app.Ctx, report.Birth)
	}
}

// Run launches the feed, the tray and the main UI loop.
func (app *AgeApp) Run() {
	app.setupMainWindow()
	app.RestartFeed()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(theme.HistoryIcon())
		app.setupTrayMenu()
		// With a tray, closing the window only hides it.
		app.Window.SetCloseIntercept(func() { app.Window.Hide() })
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go func() {
		<-app.Ctx.Done()
		app.Shutdown()
	}()

	app.Window.Show()
	app.App.Run()
}

// Shutdown stops the background schedulers and the feed.
func (app *AgeApp) Shutdown() {
	app.debouncer.Stop()
	app.ticker.Stop()
	app.stopFeed()
}

// setupMainWindow builds the birth date form and the report area.
func (app *AgeApp) setupMainWindow() {
	app.Window = app.App.NewWindow(app.Catalog.Msg(config.TKeyWinTitle))
	app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))

	app.entry = NewDateEntry()
	app.entry.OnChanged = app.onInputChanged
	app.entry.OnSubmitted = func(s string) { app.debouncer.Flush(s) }

	app.lblBirth = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	app.lblHelp = widget.NewLabel("")
	app.lblHelp.SizeName = theme.SizeNameCaptionText

	app.btnCalc = widget.NewButtonWithIcon("", theme.ConfirmIcon(), func() {
		app.debouncer.Flush(app.entry.Text)
	})
	app.btnCalc.Importance = widget.HighImportance
	app.btnContacts = widget.NewButtonWithIcon("", theme.AccountIcon(), app.ShowContactsWindow)

	form := container.NewVBox(
		app.lblBirth,
		container.NewBorder(nil, nil, nil, app.btnContacts, app.entry),
		app.lblHelp,
		app.btnCalc,
	)

	app.refreshLabels()
	app.Window.SetContent(container.NewPadded(container.NewVBox(
		form,
		widget.NewSeparator(),
		app.surface.Content(),
	)))
}

// refreshLabels applies the active language to the main window.
func (app *AgeApp) refreshLabels() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.Catalog.Msg(config.TKeyWinTitle))
	app.lblBirth.SetText(app.Catalog.Msg(config.TKeyLblBirthDate))
	app.lblHelp.SetText(app.Catalog.Msg(config.TKeyHelpBirthDate))
	app.btnCalc.SetText(app.Catalog.Msg(config.TKeyBtnCalculate))
	app.btnContacts.SetText(app.Catalog.Msg(config.TKeyBtnContacts))
}

// onInputChanged debounces typing. Clearing the field clears the display
// without an error.
func (app *AgeApp) onInputChanged(text string) {
	if text == "" {
		app.debouncer.Cancel()
		app.clearReport()
		return
	}
	app.debouncer.Trigger(text)
}

// Calculate runs the gate on raw and renders the outcome.
// An error hides the previous report, stops the ticker and withdraws the feed.
func (app *AgeApp) Calculate(raw string) {
	report, err := app.Gate.Submit(raw)
	if err != nil {
		slog.Debug(config.MsgInputRejected,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.ticker.Stop()
		app.setReport(nil)
		app.Presenter.RenderError(app.surface, err)
		app.publishFeed(nil)
		app.updateTrayStatus()
		return
	}

	slog.Info(config.MsgReportComputed,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyYears, report.Years,
		config.LogKeyDaysUntil, report.NextBirthday.DaysUntil)

	app.Presenter.Render(app.surface, report)
	app.setReport(&report)
	app.ticker.Start(app.Ctx, report.Birth)
	app.publishFeed(&report)
	app.updateTrayStatus()
}

func (app *AgeApp) clearReport() {
	app.ticker.Stop()
	app.setReport(nil)
	app.surface.Clear()
	app.publishFeed(nil)
	app.updateTrayStatus()
}

// Report returns the last successful report, or nil.
func (app *AgeApp) Report() *engine.AgeReport {
	app.reportMu.RLock()
	defer app.reportMu.RUnlock()
	return app.report
}

func (app *AgeApp) setReport(r *engine.AgeReport) {
	app.reportMu.Lock()
	app.report = r
	app.reportMu.Unlock()
}

// setupTrayMenu constructs the system tray menu.
func (app *AgeApp) setupTrayMenu() {
	// The status item opens the main window.
	app.TrayStatusItem = fyne.NewMenuItem(app.Presenter.TrayStatus(app.Report()), app.showMainWindow)
	app.TrayOpenItem = fyne.NewMenuItem(app.Catalog.Msg(config.TKeyMenuOpen), app.showMainWindow)
	app.TrayContactsItem = fyne.NewMenuItem(app.Catalog.Msg(config.TKeyMenuContacts), app.ShowContactsWindow)
	app.TraySettingsItem = fyne.NewMenuItem(app.Catalog.Msg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayOpenItem,
		app.TrayContactsItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *AgeApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayOpenItem.Label = app.Catalog.Msg(config.TKeyMenuOpen)
	app.TrayContactsItem.Label = app.Catalog.Msg(config.TKeyMenuContacts)
	app.TraySettingsItem.Label = app.Catalog.Msg(config.TKeyMenuSettings)
	app.updateTrayStatus()
}

// updateTrayStatus shows the days left until the next birthday.
func (app *AgeApp) updateTrayStatus() {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	label := app.Presenter.TrayStatus(app.Report())
	fyne.Do(func() {
		app.TrayStatusItem.Label = label
		app.Menu.Refresh()
	})
}

func (app *AgeApp) showMainWindow() {
	if app.Window == nil {
		return
	}
	app.Window.Show()
	app.Window.RequestFocus()
}

// SetLanguage switches the catalog and redraws every localized surface.
func (app *AgeApp) SetLanguage(lang string) error {
	if err := app.Catalog.SetLanguage(lang); err != nil {
		return err
	}
	slog.Info(config.MsgLanguageChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLang, lang)

	app.refreshLabels()
	app.RefreshTrayMenu()
	if r := app.Report(); r != nil {
		app.Presenter.Render(app.surface, *r)
		app.publishFeed(r)
	}
	return nil
}

// loadSourceConfig assembles the contact source from preferences and the keyring.
func (app *AgeApp) loadSourceConfig() engine.SourceConfig {
	cfg := engine.SourceConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeWeb),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}

// RestartFeed stops the running calendar server, if any, and starts a new
// one on the configured port when the feed is enabled. The last rendered
// calendar is carried over.
func (app *AgeApp) RestartFeed() {
	app.stopFeed()

	app.feedMu.Lock()
	defer app.feedMu.Unlock()

	if !app.Preferences.BoolWithFallback(config.PrefFeedEnabled, true) {
		slog.Info(config.MsgFeedDisabled, config.LogKeyComponent, config.CompUI)
		return
	}

	port := app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := app.NewFeedServer(port)
	if app.feedData != nil {
		srv.Update(app.feedData)
	}

	ctx, cancel := context.WithCancel(app.Ctx)
	done := make(chan struct{})
	app.feed, app.feedCancel, app.feedDone = srv, cancel, done

	slog.Info(config.MsgFeedRestart,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPort, port)

	go func() {
		defer close(done)
		if err := srv.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, port)))
		}
	}()
}

// Feed returns the running calendar server, or nil when disabled.
func (app *AgeApp) Feed() *server.FeedServer {
	app.feedMu.Lock()
	defer app.feedMu.Unlock()
	return app.feed
}

func (app *AgeApp) stopFeed() {
	app.feedMu.Lock()
	cancel, done := app.feedCancel, app.feedDone
	app.feed, app.feedCancel, app.feedDone = nil, nil, nil
	app.feedMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	// The port must be released before a new server binds it.
	<-done
}

// publishFeed renders the birthday calendar for report, or withdraws it.
func (app *AgeApp) publishFeed(report *engine.AgeReport) {
	var data []byte
	if report != nil {
		var err error
		data, err = app.Presenter.Calendar(report.Birth, app.Clock.Now())
		if err != nil {
			slog.Error(config.ErrICalEncode,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			data = nil
		}
	}

	app.feedMu.Lock()
	defer app.feedMu.Unlock()
	app.feedData = data
	if app.feed == nil {
		return
	}
	if data == nil {
		app.feed.Clear()
		return
	}
	app.feed.Update(data)
}

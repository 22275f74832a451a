package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/present"
)

// windowSurface renders report views into the main window.
// Every method marshals onto the Fyne goroutine, so the debouncer and the
// ticker may call it from their own goroutines.
type windowSurface struct {
	summary *widget.Label
	stats   *fyne.Container
	details *fyne.Container
	errText *widget.Label
	report  *fyne.Container

	seconds *widget.Label
	view    present.ReportView
}

func newWindowSurface() *windowSurface {
	s := &windowSurface{
		summary: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		stats:   container.NewGridWithColumns(config.LayoutColumnsStats),
		details: container.NewVBox(),
		errText: widget.NewLabel(""),
	}
	s.summary.Wrapping = fyne.TextWrapWord
	s.errText.Importance = widget.DangerImportance
	s.errText.Wrapping = fyne.TextWrapWord
	s.errText.Hide()

	s.report = container.NewVBox(s.summary, widget.NewSeparator(), s.stats, widget.NewSeparator(), s.details)
	s.report.Hide()
	return s
}

// Content returns the canvas object to embed in the window.
func (s *windowSurface) Content() fyne.CanvasObject {
	return container.NewVBox(s.errText, s.report)
}

func (s *windowSurface) ShowReport(view present.ReportView) {
	fyne.Do(func() {
		s.view = view
		s.errText.Hide()
		s.summary.SetText(view.Summary)

		s.seconds = nil
		cells := make([]fyne.CanvasObject, 0, len(view.Stats))
		for _, st := range view.Stats {
			value := widget.NewLabelWithStyle(st.Value, fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
			if st.Key == config.TKeyStatSeconds {
				s.seconds = value
			}
			label := widget.NewLabelWithStyle(st.Label, fyne.TextAlignCenter, fyne.TextStyle{})
			label.SizeName = theme.SizeNameCaptionText
			cells = append(cells, container.NewVBox(value, label))
		}
		s.stats.Objects = cells
		s.stats.Refresh()

		rows := make([]fyne.CanvasObject, 0, len(view.Details))
		for _, d := range view.Details {
			rows = append(rows, container.NewBorder(nil, nil,
				widget.NewLabelWithStyle(d.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), nil,
				widget.NewLabel(d.Value)))
		}
		s.details.Objects = rows
		s.details.Refresh()

		s.report.Show()
	})
}

func (s *windowSurface) PatchSeconds(value string) {
	fyne.Do(func() {
		if s.seconds != nil {
			s.seconds.SetText(value)
		}
	})
}

func (s *windowSurface) ShowError(message string) {
	fyne.Do(func() {
		s.errText.SetText(message)
		s.errText.Show()
	})
}

func (s *windowSurface) HideReport() {
	fyne.Do(func() {
		s.view = present.ReportView{}
		s.seconds = nil
		s.report.Hide()
	})
}

// Clear hides both the report and any error (empty input).
func (s *windowSurface) Clear() {
	s.HideReport()
	fyne.Do(func() {
		s.errText.SetText("")
		s.errText.Hide()
	})
}

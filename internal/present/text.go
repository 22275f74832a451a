package present

import (
	"fmt"
	"io"
	"sync"

	"github.com/tartampluch/go-age/internal/config"
)

// TextSurface renders reports as plain lines on a terminal.
// Errors go to a separate writer so stdout stays machine friendly.
// The seconds stat is always the last line so a live patch can rewrite it.
type TextSurface struct {
	out io.Writer
	err io.Writer
	// live leaves the seconds line open for PatchSeconds.
	live bool

	mu           sync.Mutex
	secondsLabel string
}

// NewTextSurface writes reports to out and errors to errOut.
func NewTextSurface(out, errOut io.Writer) *TextSurface {
	return &TextSurface{out: out, err: errOut}
}

// NewLiveTextSurface is a TextSurface whose seconds line stays unterminated,
// so each PatchSeconds overwrites it. The caller ends the line when done.
func NewLiveTextSurface(out, errOut io.Writer) *TextSurface {
	return &TextSurface{out: out, err: errOut, live: true}
}

// ShowReport prints the summary, the stats, the details and finally the seconds.
func (t *TextSurface) ShowReport(view ReportView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintln(t.out, view.Summary)
	for _, s := range view.Stats {
		if s.Key == config.TKeyStatSeconds {
			continue
		}
		_, _ = fmt.Fprintf(t.out, config.FormatTextLine, s.Label, s.Value)
	}
	for _, d := range view.Details {
		_, _ = fmt.Fprintf(t.out, config.FormatTextLine, d.Label, d.Value)
	}

	s, ok := view.Seconds()
	if !ok {
		return
	}
	t.secondsLabel = s.Label
	if t.live {
		_, _ = fmt.Fprintf(t.out, config.FormatTextOpenLine, s.Label, s.Value)
		return
	}
	_, _ = fmt.Fprintf(t.out, config.FormatTextLine, s.Label, s.Value)
}

// PatchSeconds rewrites the seconds line in place with a carriage return.
func (t *TextSurface) PatchSeconds(value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.out, config.FormatTextPatch, t.secondsLabel, value)
}

// ShowError prints message on the error writer.
func (t *TextSurface) ShowError(message string) {
	_, _ = fmt.Fprintln(t.err, message)
}

// HideReport is a no-op: printed lines cannot be taken back.
func (t *TextSurface) HideReport() {}

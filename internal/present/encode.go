package present

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by Encode for an unknown format name.
var ErrUnsupportedFormat = errors.New(config.ErrUnsupportedFormat)

// Formats lists the names accepted by Encode.
func Formats() []string {
	return []string{config.FormatText, config.FormatJSON, config.FormatYAML, config.FormatICS}
}

// Document is the machine-readable report: the raw figures plus the localized
// strings a reader would otherwise have to recompute.
type Document struct {
	engine.AgeReport `yaml:",inline"`

	Language string `json:"language" yaml:"language"`
	Summary  string `json:"summary" yaml:"summary"`
	BornOn   string `json:"born_on" yaml:"born_on"`
}

// Document builds the serializable form of report.
func (p *Presenter) Document(report engine.AgeReport) Document {
	return Document{
		AgeReport: report,
		Language:  p.catalog.Language(),
		Summary:   p.View(report).Summary,
		BornOn:    p.BornOn(report),
	}
}

// Calendar renders the birthday feed with localized event titles.
func (p *Presenter) Calendar(birth engine.CalendarDate, now time.Time) ([]byte, error) {
	return engine.BirthdayCalendar(birth, now, engine.CalendarOptions{Summary: p.CalendarSummary})
}

// Encode writes report to w in the given format. now only matters for ics,
// which anchors the previous/current/next year window.
func (p *Presenter) Encode(w io.Writer, format string, report engine.AgeReport, now time.Time) error {
	switch format {
	case config.FormatText:
		p.Render(NewTextSurface(w, w), report)
		return nil

	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", config.JSONIndent)
		if err := enc.Encode(p.Document(report)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncodeReport, err)
		}
		return nil

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		if err := enc.Encode(p.Document(report)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncodeReport, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncodeReport, err)
		}
		return nil

	case config.FormatICS:
		data, err := p.Calendar(report.Birth, now)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncodeReport, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

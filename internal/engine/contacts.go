package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-age/internal/config"
)

// SourceConfig describes where contact cards are read from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// BirthdayEntry is a contact whose card carries a complete birth date.
// It lets the user pick a birth date instead of typing it.
type BirthdayEntry struct {
	// UID is a stable hash of name and birth date.
	UID string

	Name  string
	Birth CalendarDate

	// Next is the projection of the contact's next birthday relative to load time.
	Next NextBirthday
}

// ContactLoader reads vCards and extracts birth dates.
type ContactLoader struct {
	Clock   Clock
	Fetcher VCardFetcher
}

// Load fetches the configured source and returns the contacts sorted by name.
// Cards without BDAY, with a year-less BDAY or with an unreadable date are skipped.
func (l *ContactLoader) Load(ctx context.Context, cfg SourceConfig) ([]BirthdayEntry, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := l.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := l.decode(ctx, reader)
	if err == nil {
		log.Debug(config.MsgImportFinished,
			config.LogKeyCount, len(entries),
			config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return entries, err
}

// acquireStream opens the appropriate data source based on configuration.
func (l *ContactLoader) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return l.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func (l *ContactLoader) decode(ctx context.Context, r io.Reader) ([]BirthdayEntry, error) {
	now := l.now()
	decoder := vcard.NewDecoder(r)
	stats := struct{ processed, withBday int }{}
	var entries []BirthdayEntry

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, ErrSourceTooLarge) {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, err := ParseBirthday(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++

		// FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		entries = append(entries, BirthdayEntry{
			UID:   contactUID(name, birth),
			Name:  name,
			Birth: birth,
			Next:  ProjectNextBirthday(birth, now),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	slog.Info(config.MsgImportSuccess,
		config.LogKeyComponent, config.CompContacts,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
		),
	)
	return entries, nil
}

// ParseBirthday reads a vCard BDAY value. Truncated dates (--MM-DD) carry no year
// and are rejected with ErrYearUnknown since an age cannot be derived from them.
func ParseBirthday(value string) (CalendarDate, error) {
	for _, layout := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if _, err := time.Parse(layout, value); err == nil {
			return CalendarDate{}, ErrYearUnknown
		}
	}
	return ParseCalendarDate(value)
}

// ErrYearUnknown is returned for vCard birthdays without a year.
var ErrYearUnknown = errors.New(config.ErrYearUnknown)

// contactUID derives a deterministic identifier for list stability across reloads.
func contactUID(name string, birth CalendarDate) string {
	input := fmt.Sprintf(config.FormatHashInput, name, birth.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

func (l *ContactLoader) now() time.Time {
	if l.Clock == nil {
		return time.Now()
	}
	return l.Clock.Now()
}

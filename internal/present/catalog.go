package present

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Catalog resolves translation keys for the active language.
// It is safe for concurrent use.
type Catalog struct {
	bundle    *i18n.Bundle
	languages []string

	mu        sync.RWMutex
	lang      string
	localizer *i18n.Localizer
}

// NewCatalog loads every embedded locale and activates lang.
// An empty lang selects config.DefaultLanguage.
func NewCatalog(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	c := &Catalog{bundle: bundle}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
		c.languages = append(c.languages, langCode)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	if err := c.SetLanguage(lang); err != nil {
		return nil, err
	}
	return c, nil
}

// Languages returns the language codes found in the embedded locales.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// Language returns the active language code.
func (c *Catalog) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

// Tag returns the active language as a BCP 47 tag.
func (c *Catalog) Tag() language.Tag {
	tag, err := language.Parse(c.Language())
	if err != nil {
		return language.English
	}
	return tag
}

// SetLanguage switches the active language.
func (c *Catalog) SetLanguage(lang string) error {
	if !slices.Contains(c.languages, lang) {
		return fmt.Errorf("%s: %q", config.ErrUnknownLanguage, lang)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lang != lang {
		slog.Debug(config.MsgLanguageChanged,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang)
	}
	c.lang = lang
	c.localizer = i18n.NewLocalizer(c.bundle, lang)
	return nil
}

// Msg translates a key. A missing key is returned verbatim.
func (c *Catalog) Msg(key string) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: key})
}

// Format translates a templated message.
func (c *Catalog) Format(key string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural translates a message carrying plural forms; count is exposed as {{.Count}}.
func (c *Catalog) Plural(key string, count int) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]any{config.TmplCount: count},
		PluralCount:  count,
	})
}

// FormatWeekday implements engine.WeekdayFormatter.
func (c *Catalog) FormatWeekday(w time.Weekday) string {
	key := fmt.Sprintf(config.FormatWeekdayKey, int(w))
	if msg := c.Msg(key); msg != key {
		return msg
	}
	return w.String()
}

// Zodiac translates a sign name, falling back to the name itself.
func (c *Catalog) Zodiac(sign string) string {
	key := fmt.Sprintf(config.FormatZodiacKey, strings.ToLower(sign))
	if msg := c.Msg(key); msg != key {
		return msg
	}
	return sign
}

func (c *Catalog) localize(lc *i18n.LocalizeConfig) string {
	c.mu.RLock()
	localizer := c.localizer
	c.mu.RUnlock()

	msg, err := localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

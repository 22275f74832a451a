package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-age/internal/config"
)

// Address book download failures, matched with errors.Is.
var (
	ErrSourceAuth     = errors.New(config.ErrSourceAuth)
	ErrSourceTooLarge = errors.New(config.ErrSourceTooLarge)
	ErrSourceNotVCard = errors.New(config.ErrSourceNotVCard)
)

// VCardFetcher retrieves a remote address book as a vCard stream.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// CardDAVFetcher downloads an address book export: a CardDAV collection
// export link or any plain .vcf URL, optionally behind Basic auth.
type CardDAVFetcher struct {
	Client *http.Client
	// MaxBytes caps the body. Zero means config.MaxHTTPResponseSize.
	MaxBytes int64
}

// NewCardDAVFetcher creates a fetcher bounded by config.HTTPTimeout and config.MaxRedirects.
func NewCardDAVFetcher() *CardDAVFetcher {
	return &CardDAVFetcher{
		Client: &http.Client{
			Timeout:       config.HTTPTimeout,
			CheckRedirect: limitRedirects,
		},
		MaxBytes: config.MaxHTTPResponseSize,
	}
}

// Fetch downloads the address book at rawURL. Credentials embedded in the URL
// are used when user and pass are both empty. The stream fails with
// ErrSourceTooLarge once it passes MaxBytes.
func (f *CardDAVFetcher) Fetch(ctx context.Context, rawURL, user, pass string) (io.ReadCloser, error) {
	target, user, pass, err := resolveAddressBook(rawURL, user, pass)
	if err != nil {
		return nil, err
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, target.Scheme+"://"+target.Host+target.Path),
	)
	log.Debug(config.MsgFetchStart, slog.Bool(config.LogKeyUser, user != ""))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBuildRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.AcceptVCard)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	limit := f.limit()
	if err := checkAddressBook(resp, limit); err != nil {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchRejected,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
			slog.String(config.LogKeyMime, resp.Header.Get(config.HeaderContentType)),
			slog.Any(config.LogKeyError, err))
		return nil, err
	}

	log.Info(config.MsgFetchOK, slog.Int64(config.LogKeySizeBytes, resp.ContentLength))
	return &cappedBody{
		Reader: io.LimitReader(resp.Body, limit+1),
		Closer: resp.Body,
		limit:  limit,
	}, nil
}

func (f *CardDAVFetcher) limit() int64 {
	if f.MaxBytes <= 0 {
		return config.MaxHTTPResponseSize
	}
	return f.MaxBytes
}

// resolveAddressBook validates rawURL and moves any user:pass@ userinfo out of
// it. Explicit credentials take precedence over embedded ones.
func resolveAddressBook(rawURL, user, pass string) (*url.URL, string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, "", "", fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	if u.User != nil {
		if user == "" && pass == "" {
			user = u.User.Username()
			pass, _ = u.User.Password()
		}
		u.User = nil
	}
	return u, user, pass, nil
}

// checkAddressBook rejects responses that cannot be a vCard export: auth
// failures, other error statuses, HTML login pages and declared oversize bodies.
func checkAddressBook(resp *http.Response, limit int64) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %d", ErrSourceAuth, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf(config.FormatBadStatus, config.ErrBadStatus, resp.StatusCode)
	}

	if ct := resp.Header.Get(config.HeaderContentType); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil && mediaType == config.MimeTextHTML {
			slog.Debug(config.MsgFetchNotVCard,
				config.LogKeyComponent, config.CompFetcher,
				config.LogKeyMime, mediaType)
			return fmt.Errorf("%w: %s", ErrSourceNotVCard, mediaType)
		}
	}

	if resp.ContentLength > limit {
		return fmt.Errorf("%w: %d > %d", ErrSourceTooLarge, resp.ContentLength, limit)
	}
	return nil
}

func limitRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= config.MaxRedirects {
		return fmt.Errorf("%s: %d", config.ErrRedirects, len(via))
	}
	return nil
}

// cappedBody fails with ErrSourceTooLarge once more than limit bytes arrive.
// The failure is sticky.
type cappedBody struct {
	io.Reader // limited to limit+1 bytes so an overflow is observable
	io.Closer

	limit    int64
	read     int64
	overflow bool
}

func (c *cappedBody) Read(p []byte) (int, error) {
	if c.overflow {
		return 0, ErrSourceTooLarge
	}
	n, err := c.Reader.Read(p)
	c.read += int64(n)
	if c.read > c.limit {
		c.overflow = true
		return n - int(c.read-c.limit), ErrSourceTooLarge
	}
	return n, err
}

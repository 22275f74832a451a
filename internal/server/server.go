package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// feedItem stores the rendered calendar and its HTTP validators.
type feedItem struct {
	data     []byte
	etag     string
	modified time.Time
}

// FeedServer publishes the birthday calendar on the loopback interface.
// The feed is replaced on every new computation and read by calendar clients,
// so the cache is an atomic.Pointer rather than a mutex.
type FeedServer struct {
	cache atomic.Pointer[feedItem]
	addr  atomic.Pointer[string]
	port  string
	now   func() time.Time
}

// NewFeedServer creates a server for the given port. "0" picks a free port.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{port: port, now: time.Now}
}

// Port returns the configured port.
func (s *FeedServer) Port() string {
	return s.port
}

// Addr returns the bound address once listening, or "" before.
func (s *FeedServer) Addr() string {
	if a := s.addr.Load(); a != nil {
		return *a
	}
	return ""
}

// Start binds the listener and serves until ctx is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.port == "" {
		return errors.New(config.ErrPortRequired)
	}

	ln, err := net.Listen("tcp", config.LocalhostBindAddr+config.AddrSeparator+s.port)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
	bound := ln.Addr().String()
	s.addr.Store(&bound)

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeed)

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, bound,
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update publishes data. Republishing identical bytes keeps the current
// ETag and Last-Modified.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))
	item := &feedItem{
		data:     data,
		etag:     etag,
		modified: s.now().UTC().Truncate(time.Second),
	}

	for {
		prev := s.cache.Load()
		if prev != nil && prev.etag == etag {
			return
		}
		if s.cache.CompareAndSwap(prev, item) {
			break
		}
	}

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// Clear drops the feed; clients get 503 until the next Update.
func (s *FeedServer) Clear() {
	s.cache.Store(nil)
}

// Ready reports whether a calendar is available.
func (s *FeedServer) Ready() bool {
	return s.cache.Load() != nil
}

// handleFeed serves the calendar. Conditional requests (If-None-Match lists,
// If-Modified-Since), HEAD and ranges are resolved by http.ServeContent
// against the validators stored with the feed.
func (s *FeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, item.etag)

	http.ServeContent(w, r, config.FeedFileName, item.modified, bytes.NewReader(item.data))
}

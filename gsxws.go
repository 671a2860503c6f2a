package gsxws

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/servicetools/go-gsxws/pkg/cache"
	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/locale"
	"github.com/servicetools/go-gsxws/pkg/objectify"
	"github.com/servicetools/go-gsxws/pkg/session"
)

// cacheApp is the bucket all session entries live under.
const cacheApp = "gsxws"

// Config collects everything needed to open a connection.
type Config struct {
	// UserID, Password and SoldTo identify the service account.
	UserID   string
	Password string
	SoldTo   string

	// Environment defaults to locale.Testing, Region to "emea",
	// Language to "en", Timezone to "CEST" and Locale to
	// locale.DefaultLocale.
	Environment locale.Environment
	Region      string
	Language    string
	Timezone    string
	Locale      string

	// CachePath is the session cache file. Empty uses a file under
	// the user cache directory. Set NoCache to authenticate on every
	// Connect instead.
	CachePath string
	NoCache   bool

	// Endpoint overrides the service URL (tests, proxies).
	Endpoint string

	Logger *slog.Logger
}

// Conn is an authenticated connection handle. It carries the session,
// environment and locale explicitly so no process-wide state is
// involved; independent Conns never interfere.
type Conn struct {
	client  *client.Client
	session *session.Session
	cache   *cache.Store
	formats locale.Formats
}

// Connect authenticates (or adopts a cached session) and returns a
// ready-to-use connection.
func Connect(ctx context.Context, cfg *Config) (*Conn, error) {
	if cfg.Environment == "" {
		cfg.Environment = locale.Testing
	}
	if cfg.Region == "" {
		cfg.Region = "emea"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "CEST"
	}
	if cfg.Locale == "" {
		cfg.Locale = locale.DefaultLocale
	}

	formats, err := locale.GetFormats(cfg.Locale)
	if err != nil {
		return nil, err
	}

	cl, err := client.New(&client.Config{
		Environment: cfg.Environment,
		Region:      cfg.Region,
		Endpoint:    cfg.Endpoint,
		Logger:      cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if !cfg.NoCache {
		path := cfg.CachePath
		if path == "" {
			dir, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("gsxws: locating cache dir: %w", err)
			}
			if err := os.MkdirAll(filepath.Join(dir, cacheApp), 0o700); err != nil {
				return nil, fmt.Errorf("gsxws: creating cache dir: %w", err)
			}
			path = filepath.Join(dir, cacheApp, "sessions.db")
		}
		store, err = cache.Open(path, cacheApp)
		if err != nil {
			return nil, err
		}
	}

	sess, err := session.New(&session.Config{
		UserID:      cfg.UserID,
		Password:    cfg.Password,
		SoldTo:      cfg.SoldTo,
		Language:    cfg.Language,
		Timezone:    cfg.Timezone,
		Environment: cfg.Environment,
		Client:      cl,
		Cache:       store,
		Logger:      cfg.Logger,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	if err := sess.Login(ctx); err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	return &Conn{client: cl, session: sess, cache: store, formats: formats}, nil
}

// Submit sends an operation with the active session header injected.
// It satisfies client.Submitter, so the per-operation packages accept
// a Conn directly.
func (c *Conn) Submit(ctx context.Context, req client.Request) ([]*objectify.Node, error) {
	if req.SessionHeader == nil && req.Operation != client.AuthenticateOperation {
		req.SessionHeader = c.session.HeaderElement()
	}
	return c.client.Submit(ctx, req)
}

// Bag returns an empty field bag encoding dates and times with the
// connection's locale formats.
func (c *Conn) Bag(prefix string) *field.Bag {
	return field.New(prefix, field.WithFormats(c.formats))
}

// Session exposes the underlying session.
func (c *Conn) Session() *session.Session { return c.session }

// Logout ends the session on the service side. The cached token is
// left to expire on its own TTL.
func (c *Conn) Logout(ctx context.Context) error {
	return c.session.Logout(ctx)
}

// Close releases the session cache. It does not log out.
func (c *Conn) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

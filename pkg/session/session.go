// Copyright (c) 2026 ServiceTools
// SPDX-License-Identifier: BSD-2-Clause

// Package session manages authentication against the GSX web service
// and the reuse of session tokens across calls and process
// invocations.
//
// Tokens are cached under a key derived from (user, account,
// environment), so distinct accounts and environments never share a
// token. A cache hit skips the network entirely; a miss authenticates
// and stores the fresh token for the next caller.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/servicetools/go-gsxws/pkg/cache"
	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/locale"
)

// Config configures a Session.
type Config struct {
	// UserID and Password are the GSX web services credentials.
	UserID   string
	Password string

	// SoldTo is the service account number the session acts under.
	SoldTo string

	// Language and Timezone are declared at authentication time.
	Language string
	Timezone string

	// Environment the session authenticates against. Tokens are never
	// shared across environments.
	Environment locale.Environment

	// Client submits the authentication and logout envelopes.
	Client *client.Client

	// Cache persists tokens across process invocations. Optional; a
	// nil cache authenticates on every Login.
	Cache *cache.Store

	// Logger receives debug traces.
	Logger *slog.Logger
}

// Session is an authenticated (or to-be-authenticated) GSX session.
type Session struct {
	cfg    Config
	logger *slog.Logger
	key    string
	token  string
}

// New creates a Session. It performs no network I/O; call Login to
// authenticate.
func New(cfg *Config) (*Session, error) {
	if cfg.UserID == "" || cfg.Password == "" {
		return nil, fmt.Errorf("session: user id and password are required")
	}
	if cfg.SoldTo == "" {
		return nil, fmt.Errorf("session: service account number is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("session: client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		cfg:    *cfg,
		logger: logger,
		key:    cacheKey(cfg.UserID, cfg.SoldTo, cfg.Environment),
	}, nil
}

// cacheKey derives the cache key for a credential set. The
// environment participates so a testing token can never leak into
// production requests.
func cacheKey(userID, soldTo string, env locale.Environment) string {
	sum := sha256.Sum256([]byte(userID + "|" + soldTo + "|" + string(env)))
	return hex.EncodeToString(sum[:])
}

// Authenticated reports whether the session holds a token.
func (s *Session) Authenticated() bool { return s.token != "" }

// Token returns the opaque session token, empty before Login.
func (s *Session) Token() string { return s.token }

// HeaderElement returns the <userSession> element injected into every
// authenticated request. The caller receives a fresh element per
// call; the token itself stays owned by the session.
func (s *Session) HeaderElement() *etree.Element {
	el := etree.NewElement("userSession")
	el.CreateElement("userSessionId").SetText(s.token)
	return el
}

// Login adopts a cached token when one is still valid, otherwise
// authenticates against the service and caches the fresh token.
// Authentication failures surface as a *fault.Fault; there is no
// silent retry.
func (s *Session) Login(ctx context.Context) error {
	if s.cfg.Cache != nil {
		tok, ok, err := s.cfg.Cache.Get(s.key)
		if err != nil {
			return err
		}
		if ok {
			s.logger.Debug("adopting cached session", "key", s.key)
			s.token = tok
			return nil
		}
	}

	bag := field.New("glob")
	for _, f := range []struct{ name, value string }{
		{"userId", s.cfg.UserID},
		{"password", s.cfg.Password},
		{"serviceAccountNo", s.cfg.SoldTo},
		{"languageCode", s.cfg.Language},
		{"userTimeZone", s.cfg.Timezone},
	} {
		if err := bag.Set(f.name, f.value); err != nil {
			return err
		}
	}

	nodes, err := s.cfg.Client.Submit(ctx, client.Request{
		Operation:   client.AuthenticateOperation,
		PayloadName: "AuthenticateRequest",
		ResponseTag: "AuthenticateResponse",
		Payload:     bag,
	})
	if err != nil {
		return err
	}

	token := nodes[0].GetString("userSessionId")
	if token == "" {
		return fmt.Errorf("session: no userSessionId in authentication response")
	}
	s.token = token

	if s.cfg.Cache != nil {
		if err := s.cfg.Cache.Set(s.key, token); err != nil {
			return err
		}
	}
	s.logger.Debug("authenticated", "key", s.key)
	return nil
}

// Logout submits a logout for the active token. The cached copy is
// left to expire on its own TTL, matching the service's historical
// behavior: a logged-out token may still be adopted from cache until
// then.
func (s *Session) Logout(ctx context.Context) error {
	if !s.Authenticated() {
		return fmt.Errorf("session: not logged in")
	}

	bag := field.New("glob")
	if err := bag.Set("userId", s.cfg.UserID); err != nil {
		return err
	}

	_, err := s.cfg.Client.Submit(ctx, client.Request{
		Operation:     "Logout",
		PayloadName:   "LogoutRequest",
		ResponseTag:   "LogoutResponse",
		Payload:       bag,
		SessionHeader: s.HeaderElement(),
	})
	if err != nil {
		return err
	}

	s.token = ""
	return nil
}

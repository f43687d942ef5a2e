package provider

import (
	"context"
	"time"

	"github.com/aprs3/f1dashboard-go/pkg/model"
	"github.com/aprs3/f1dashboard-go/pkg/utils/cache"
	"github.com/aprs3/f1dashboard-go/pkg/utils/cache/loadercache"
)

type sessionKey struct {
	year  int
	event string
	sType model.SessionType
}

// CachedSource decorates a SessionSource with an in-memory session cache.
// Historical sessions are immutable, so entries only leave the cache via
// expiration.
type CachedSource struct {
	delegate SessionSource
	sessions cache.Cache[sessionKey, model.Session]
}

type CachedOption func(*cachedConfig)

type cachedConfig struct {
	expiration time.Duration
}

func WithExpiration(arg time.Duration) CachedOption {
	return func(c *cachedConfig) {
		c.expiration = arg
	}
}

func NewCachedSource(delegate SessionSource, opts ...CachedOption) *CachedSource {
	cfg := &cachedConfig{expiration: time.Hour}
	for _, opt := range opts {
		opt(cfg)
	}
	ret := &CachedSource{delegate: delegate}
	ret.sessions = loadercache.New(
		loadercache.WithExpiration[sessionKey, model.Session](cfg.expiration),
		loadercache.WithLoader(
			func(ctx context.Context, key sessionKey) (*model.Session, error) {
				return delegate.LoadSession(ctx, key.year, key.event, key.sType)
			}),
	)
	return ret
}

func (c *CachedSource) Events(ctx context.Context, years YearRange) (
	[]model.EventDescriptor, error,
) {
	return c.delegate.Events(ctx, years)
}

//nolint:whitespace // editor/linter issue
func (c *CachedSource) LoadSession(
	ctx context.Context,
	year int,
	eventName string,
	sessionType model.SessionType,
) (*model.Session, error) {
	return c.sessions.Get(ctx,
		sessionKey{year: year, event: eventName, sType: sessionType})
}

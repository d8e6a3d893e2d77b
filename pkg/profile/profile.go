// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package profile

import (
	"context"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	lru "github.com/hashicorp/golang-lru/v2"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
	"github.com/pkg/errors"
)

// Resolver resolves contact profile details.
type Resolver interface {
	// Resolve returns the profile associated to address.
	Resolve(ctx context.Context, address string) (rostermodel.Profile, error)
}

// ResolverFunc is an adapter to allow the use of ordinary functions as profile resolvers.
type ResolverFunc func(ctx context.Context, address string) (rostermodel.Profile, error)

// Resolve calls f(ctx, address).
func (f ResolverFunc) Resolve(ctx context.Context, address string) (rostermodel.Profile, error) {
	return f(ctx, address)
}

// Config contains profile resolution configuration parameters.
type Config struct {
	CacheSize int `fig:"cache_size" default:"1024"`
}

// Cached is a Resolver decorator that keeps resolved profiles in a LRU cache keyed by contact id.
type Cached struct {
	rs     Resolver
	cache  *lru.Cache[string, rostermodel.Profile]
	logger kitlog.Logger
}

// NewCached returns a new cached resolver wrapping rs.
func NewCached(rs Resolver, cfg Config, logger kitlog.Logger) (*Cached, error) {
	cache, err := lru.New[string, rostermodel.Profile](cfg.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "profile: failed to create cache")
	}
	return &Cached{
		rs:     rs,
		cache:  cache,
		logger: logger,
	}, nil
}

// Resolve satisfies Resolver interface.
func (c *Cached) Resolve(ctx context.Context, address string) (rostermodel.Profile, error) {
	contactID, err := rostermodel.ContactID(address)
	if err != nil {
		return rostermodel.Profile{}, err
	}
	if p, ok := c.cache.Get(contactID); ok {
		reportCacheHit()
		return p, nil
	}
	reportCacheMiss()

	p, err := c.rs.Resolve(ctx, address)
	if err != nil {
		return rostermodel.Profile{}, err
	}
	c.cache.Add(contactID, p)

	level.Debug(c.logger).Log("msg", "profile resolved", "contact_id", contactID)
	return p, nil
}

// Invalidate drops the cached profile of contactID.
func (c *Cached) Invalidate(contactID string) {
	c.cache.Remove(contactID)
}

// Purge drops every cached profile.
func (c *Cached) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached profiles.
func (c *Cached) Len() int {
	return c.cache.Len()
}

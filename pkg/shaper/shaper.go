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

package shaper

import (
	"sync"

	"github.com/ortuman/rostersync/pkg/util/stringmatcher"
	"golang.org/x/time/rate"
)

var defaultShaper = Shaper{
	Name:      "default",
	rateLimit: 10,
	burst:     5,
}

// Shapers represents a command shaper collection ordered by priority.
type Shapers []Shaper

// Matching returns the shaper that should be applied to commands addressed to contactID.
func (ss Shapers) Matching(contactID string) *Shaper {
	for i := range ss {
		if ss[i].matcher.Matches(contactID) {
			return &ss[i]
		}
	}
	return &defaultShaper
}

// Default returns default command shaper.
func (ss Shapers) Default() *Shaper {
	return &defaultShaper
}

// Shaper represents an outgoing command traffic constraint set.
type Shaper struct {
	// Name is the shaper name.
	Name string

	rateLimit float64
	burst     int
	matcher   stringmatcher.Matcher
}

// Config contains Shaper configuration parameters.
type Config struct {
	Name string `fig:"name"`
	Rate struct {
		Limit float64 `fig:"limit" default:"10"`
		Burst int     `fig:"burst" default:"5"`
	} `fig:"rate"`
	Matching struct {
		Contact struct {
			In    []string `fig:"in"`
			RegEx string   `fig:"regex"`
		} `fig:"contact"`
	} `fig:"matching"`
}

// New returns a new Shaper given a configuration.
func New(cfg Config) (Shaper, error) {
	var matcher stringmatcher.Matcher
	switch {
	case len(cfg.Matching.Contact.In) > 0:
		matcher = stringmatcher.NewStringMatcher(cfg.Matching.Contact.In)
	case len(cfg.Matching.Contact.RegEx) > 0:
		var err error
		matcher, err = stringmatcher.NewRegExMatcher(cfg.Matching.Contact.RegEx)
		if err != nil {
			return Shaper{}, err
		}
	default:
		matcher = stringmatcher.Any
	}
	return Shaper{
		Name:      cfg.Name,
		rateLimit: cfg.Rate.Limit,
		burst:     cfg.Rate.Burst,
		matcher:   matcher,
	}, nil
}

// NewShapers returns a shaper collection given a configuration set, preserving its order.
func NewShapers(cfgs []Config) (Shapers, error) {
	ss := make(Shapers, 0, len(cfgs))
	for _, cfg := range cfgs {
		s, err := New(cfg)
		if err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}
	return ss, nil
}

// RateLimiter returns a new rate limiter configured with shaper parameters.
func (s *Shaper) RateLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(s.rateLimit), s.burst)
}

// Limiters hands out one shared rate limiter per shaper.
type Limiters struct {
	ss Shapers

	mu   sync.Mutex
	lims map[string]*rate.Limiter
}

// NewLimiters returns a new limiter set over ss.
func NewLimiters(ss Shapers) *Limiters {
	return &Limiters{
		ss:   ss,
		lims: make(map[string]*rate.Limiter),
	}
}

// For returns the rate limiter to be applied to commands addressed to contactID.
func (l *Limiters) For(contactID string) *rate.Limiter {
	s := l.ss.Matching(contactID)

	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.lims[s.Name]
	if !ok {
		lim = s.RateLimiter()
		l.lims[s.Name] = lim
	}
	return lim
}

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

package xmpp

import "time"

// BreakerConfig contains circuit breaker configuration parameters.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failed requests that opens the breaker.
	MaxFailures uint32 `fig:"max_failures" default:"5"`

	// OpenTimeout is the period the breaker stays open before letting a request through.
	OpenTimeout time.Duration `fig:"open_timeout" default:"30s"`
}

// Config contains XMPP adapter configuration parameters.
type Config struct {
	// UserJID is the full JID the adapter acts on behalf of.
	UserJID string `fig:"user_jid" default:"user@localhost/rostersim"`

	// RequestTimeout bounds every IQ round trip.
	RequestTimeout time.Duration `fig:"request_timeout" default:"10s"`

	Breaker BreakerConfig `fig:"breaker"`
}

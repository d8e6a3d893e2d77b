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

package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	xmppparser "github.com/ortuman/rostersync/pkg/parser"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const maxRawStanzaSize = 32768

// ErrInvalidScenario is returned when a scenario script fails validation.
var ErrInvalidScenario = errors.New("scenario: invalid script")

// Game describes an in-game activity attached to a presence.
type Game struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Joinable     bool   `yaml:"joinable"`
	Broadcasting bool   `yaml:"broadcasting"`
}

// Presence describes a presence stanza sent to the user.
type Presence struct {
	From   string `yaml:"from"`
	Type   string `yaml:"type"`
	Show   string `yaml:"show"`
	Status string `yaml:"status"`
	Game   *Game  `yaml:"game"`
}

// Item describes a roster item.
type Item struct {
	JID          string `yaml:"jid"`
	Name         string `yaml:"name"`
	Subscription string `yaml:"subscription"`
	Ask          bool   `yaml:"ask"`
}

// Profile describes the vCard and capabilities a contact exposes.
type Profile struct {
	Nickname string `yaml:"nickname"`
	FullName string `yaml:"full_name"`
	Given    string `yaml:"given"`
	Family   string `yaml:"family"`
	Voice    bool   `yaml:"voice"`
}

// Event is a scripted push delivered once After has elapsed since the connection was established.
// Exactly one action must be set.
type Event struct {
	After      time.Duration `yaml:"after"`
	Presence   *Presence     `yaml:"presence"`
	Roster     *Item         `yaml:"roster"`
	Block      []string      `yaml:"block"`
	Unblock    []string      `yaml:"unblock"`
	UnblockAll bool          `yaml:"unblock_all"`
	Raw        string        `yaml:"raw"`
	Disconnect bool          `yaml:"disconnect"`

	elems []stravaganza.Element
}

// Scenario is a scripted server side session.
type Scenario struct {
	// RosterDelay delays the roster fetch response.
	RosterDelay time.Duration `yaml:"roster_delay"`

	// AutoAccept makes every contact accept the friend requests sent by the user.
	AutoAccept bool `yaml:"auto_accept"`

	Roster    []Item             `yaml:"roster"`
	BlockList []string           `yaml:"block_list"`
	Profiles  map[string]Profile `yaml:"profiles"`
	Events    []Event            `yaml:"events"`
}

// Load reads and validates the scenario script stored at path.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario: failed to read %s", path)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML scenario script.
func Parse(b []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.UnmarshalStrict(b, &sc); err != nil {
		return nil, errors.Wrap(err, "scenario: failed to decode script")
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	for i, item := range sc.Roster {
		if err := validateAddress(item.JID); err != nil {
			return invalid("roster item %d: %v", i, err)
		}
		if err := validateSubscription(item.Subscription); err != nil {
			return invalid("roster item %d: %v", i, err)
		}
	}
	for _, addr := range sc.BlockList {
		if err := validateAddress(addr); err != nil {
			return invalid("block list: %v", err)
		}
	}
	var last time.Duration
	for i := range sc.Events {
		ev := &sc.Events[i]
		if ev.After < last {
			return invalid("event %d: events must be sorted by 'after'", i)
		}
		last = ev.After

		if err := ev.validate(); err != nil {
			return invalid("event %d: %v", i, err)
		}
	}
	return nil
}

func (ev *Event) validate() error {
	var actions int
	if ev.Presence != nil {
		actions++
		if err := validateAddress(ev.Presence.From); err != nil {
			return err
		}
	}
	if ev.Roster != nil {
		actions++
		if err := validateAddress(ev.Roster.JID); err != nil {
			return err
		}
		if err := validateSubscription(ev.Roster.Subscription); err != nil {
			return err
		}
	}
	if len(ev.Block) > 0 {
		actions++
	}
	if len(ev.Unblock) > 0 || ev.UnblockAll {
		actions++
	}
	if len(ev.Raw) > 0 {
		actions++
		elems, err := xmppparser.ParseString(ev.Raw, maxRawStanzaSize)
		if err != nil {
			return err
		}
		if len(elems) == 0 {
			return errors.New("raw event contains no elements")
		}
		ev.elems = elems
	}
	if ev.Disconnect {
		actions++
	}
	if actions != 1 {
		return fmt.Errorf("expected exactly one action, found %d", actions)
	}
	return nil
}

func validateAddress(address string) error {
	if len(address) == 0 {
		return errors.New("missing address")
	}
	_, err := jid.NewWithString(address, false)
	return err
}

func validateSubscription(subscription string) error {
	switch subscription {
	case "", "none", "to", "from", "both", "remove":
		return nil
	}
	return fmt.Errorf("unknown subscription %q", subscription)
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidScenario, format, args...)
}

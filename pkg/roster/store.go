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

package roster

import (
	"sort"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/rostersync/pkg/hook"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
	"github.com/pkg/errors"
)

var (
	// ErrMalformedEvent is returned when a push event cannot be mapped to a contact.
	ErrMalformedEvent = errors.New("roster: malformed event")

	// ErrUnknownView is returned when requesting a view that has not been declared.
	ErrUnknownView = errors.New("roster: unknown view")
)

// Store is the authoritative contact store. Every mutation goes through Upsert, Remove or Clear,
// which fan out to the filtered views and the game-presence index.
//
// A Store is not safe for concurrent use: it is meant to be owned by a single writer.
type Store struct {
	selfID        string
	self          rostermodel.Presence
	selfInvisible bool
	loaded        bool

	contacts map[string]*rostermodel.Contact
	views    *Views
	games    *GameIndex
	em       hook.Emitter
	logger   kitlog.Logger
}

// Option configures a Store.
type Option func(s *Store)

// WithClock sets the time source used to stamp last-played records.
func WithClock(nowFn func() time.Time) Option {
	return func(s *Store) {
		s.games.nowFn = nowFn
	}
}

// NewStore returns a new contact store for the user identified by selfAddress,
// with the standard views already declared.
func NewStore(selfAddress string, em hook.Emitter, logger kitlog.Logger, opts ...Option) *Store {
	selfID, err := rostermodel.ContactID(selfAddress)
	if err != nil {
		selfID = selfAddress
	}
	s := &Store{
		selfID:   selfID,
		self:     rostermodel.UnavailablePresence(),
		contacts: make(map[string]*rostermodel.Contact),
		em:       em,
		logger:   logger,
	}
	s.views = newViews(s, em)
	s.games = newGameIndex(time.Now)
	for _, opt := range opts {
		opt(s)
	}
	for _, sv := range standardViews {
		s.views.Declare(sv.name, sv.pred)
	}
	return s
}

// SelfID returns the current user contact identifier.
func (s *Store) SelfID() string { return s.selfID }

// Views returns store's filtered view registry.
func (s *Store) Views() *Views { return s.views }

// Games returns store's game-presence index.
func (s *Store) Games() *GameIndex { return s.games }

// Loaded tells whether the roster bulk load has completed.
func (s *Store) Loaded() bool { return s.loaded }

// SetLoaded marks the roster bulk load as completed (or pending).
func (s *Store) SetLoaded(loaded bool) { s.loaded = loaded }

// Count returns the number of stored contacts.
func (s *Store) Count() int { return len(s.contacts) }

// Get returns a copy of the contact identified by contactID.
func (s *Store) Get(contactID string) (*rostermodel.Contact, bool) {
	c, ok := s.contacts[contactID]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// SelfPresence returns the current user's own presence and invisibility flag.
func (s *Store) SelfPresence() (rostermodel.Presence, bool) {
	return s.self.Clone(), s.selfInvisible
}

// SetSelfPresence updates the current user's own presence slot.
// It does not touch any contact and notifies only when something changed.
func (s *Store) SetSelfPresence(presence rostermodel.Presence, invisible bool) bool {
	if s.self.Equal(presence) && s.selfInvisible == invisible {
		return false
	}
	s.self = presence.Clone()
	s.selfInvisible = invisible
	s.em.Emit(hook.On(hook.SelfPresenceChanged, s.selfID), &hook.PresenceInfo{
		Presence:  s.self.Clone(),
		Invisible: invisible,
	})
	return true
}

// Upsert merges patch into the contact identified by contactID, creating it with defaults when absent.
// A patch setting the Removed relationship removes the contact instead.
// It returns false, and notifies nobody, when the resulting contact is identical to the stored one.
func (s *Store) Upsert(contactID string, patch *rostermodel.Patch) bool {
	return s.upsert(contactID, patch, false)
}

// upsert applies patch. inbound tells the patch grants the contact a subscription to the user's presence,
// which answers a pending incoming request even when the friendship is not mutual yet.
func (s *Store) upsert(contactID string, patch *rostermodel.Patch, inbound bool) bool {
	if rel, ok := patch.Relationship(); ok && rel == rostermodel.Removed {
		return s.Remove(contactID)
	}
	prev, exists := s.contacts[contactID]

	var next *rostermodel.Contact
	if exists {
		next = prev.Clone()
	} else {
		next = &rostermodel.Contact{
			ID:       contactID,
			Address:  contactID,
			Presence: rostermodel.UnavailablePresence(),
		}
	}
	patch.Apply(next)
	next.ID = contactID

	accepted := exists && prev.State() == rostermodel.PendingIncoming &&
		(inbound || next.Relationship == rostermodel.Mutual)
	if accepted && next.Presence.Kind == rostermodel.KindSubscribe {
		// the subscription request has been answered
		next.Presence = rostermodel.UnavailablePresence()
	}
	if exists && prev.Equal(next) {
		return false
	}
	s.contacts[contactID] = next

	if !exists || !prev.Presence.Equal(next.Presence) {
		s.games.reconcile(contactID, next.Presence.GameID())
	}
	s.views.onChanged(next)

	inf := &hook.ContactInfo{Contact: next.Clone()}
	if exists {
		inf.Previous = prev.Clone()
	}
	s.em.Emit(hook.On(hook.ContactChanged, contactID), inf)
	if accepted {
		s.em.Emit(hook.On(hook.AcceptanceConfirmed, contactID), inf)
	}
	reportContacts(len(s.contacts))
	return true
}

// Remove deletes the contact identified by contactID from the store and from every view containing it.
func (s *Store) Remove(contactID string) bool {
	c, ok := s.contacts[contactID]
	if !ok {
		return false
	}
	delete(s.contacts, contactID)

	s.games.reconcile(contactID, "")
	s.views.onRemoved(c)

	s.em.Emit(hook.On(hook.ContactRemoved, contactID), &hook.ContactInfo{Contact: c.Clone()})
	reportContacts(len(s.contacts))
	return true
}

// Clear removes every contact, firing a cleared notification for each populated view.
func (s *Store) Clear() {
	s.views.onCleared()

	s.contacts = make(map[string]*rostermodel.Contact)
	s.games.reset()
	s.self = rostermodel.UnavailablePresence()
	s.selfInvisible = false
	s.loaded = false

	reportContacts(0)
}

// InsertEntry applies a bulk roster entry. New contacts start unavailable;
// a contact already known from a live push keeps its presence and stops being provisional.
func (s *Store) InsertEntry(entry rostermodel.Entry) (bool, error) {
	contactID, err := rostermodel.ContactID(entry.Address)
	if err != nil {
		return false, errors.Wrap(ErrMalformedEvent, err.Error())
	}
	p := rostermodel.NewPatch().
		WithRelationship(entry.Relationship).
		WithOutgoingRequestSent(entry.OutgoingRequestSent).
		WithProvisional(false)
	if len(entry.DisplayName) > 0 {
		p.WithDisplayName(entry.DisplayName)
	}
	if _, ok := s.contacts[contactID]; !ok {
		p.WithAddress(entry.Address).WithPresence(rostermodel.UnavailablePresence())
	}
	return s.Upsert(contactID, p), nil
}

// ApplyRosterChange applies a roster push.
func (s *Store) ApplyRosterChange(change rostermodel.Change) (bool, error) {
	contactID, err := rostermodel.ContactID(change.Address)
	if err != nil {
		return false, errors.Wrap(ErrMalformedEvent, err.Error())
	}
	p := rostermodel.NewPatch().
		WithRelationship(change.Relationship).
		WithOutgoingRequestSent(change.OutgoingRequestSent).
		WithProvisional(false)
	if _, ok := s.contacts[contactID]; !ok {
		p.WithAddress(change.Address)
	}
	return s.upsert(contactID, p, change.Inbound), nil
}

// ApplyPresence merges a presence push into the store.
func (s *Store) ApplyPresence(ev rostermodel.PresenceEvent) (bool, error) {
	contactID, err := rostermodel.ContactID(ev.Address)
	if err != nil {
		reportPresenceUpdate("malformed")
		return false, errors.Wrap(ErrMalformedEvent, err.Error())
	}
	if contactID == s.selfID {
		reportPresenceUpdate("self")
		return s.SetSelfPresence(ev.Presence, s.selfInvisible), nil
	}
	c, known := s.contacts[contactID]
	if !known {
		return s.applyUnknownPresence(contactID, ev), nil
	}
	switch ev.Presence.Kind {
	case rostermodel.KindError:
		if c.State() == rostermodel.PendingIncoming {
			s.em.Emit(hook.On(hook.AcceptanceFailed, contactID), &hook.ContactInfo{Contact: c.Clone()})
		}
		reportPresenceUpdate("error")
		return false, nil

	case rostermodel.KindUnsubscribe:
		if c.Presence.Kind != rostermodel.KindSubscribe {
			reportPresenceUpdate("ignored")
			return false, nil
		}
		// incoming request cancelled by its sender
		reportPresenceUpdate("cancelled")
		return s.Upsert(contactID, rostermodel.NewPatch().WithPresence(rostermodel.UnavailablePresence())), nil
	}
	changed := s.Upsert(contactID, rostermodel.NewPatch().
		WithAddress(ev.Address).
		WithPresence(ev.Presence),
	)
	if changed {
		reportPresenceUpdate("applied")
	} else {
		reportPresenceUpdate("unchanged")
	}
	return changed, nil
}

func (s *Store) applyUnknownPresence(contactID string, ev rostermodel.PresenceEvent) bool {
	switch ev.Presence.Kind {
	case rostermodel.KindSubscribe:
		pr := ev.Presence.Clone()
		pr.Availability = rostermodel.Unavailable

		reportPresenceUpdate("request")
		return s.Upsert(contactID, rostermodel.NewPatch().
			WithAddress(ev.Address).
			WithRelationship(rostermodel.None).
			WithPresence(pr),
		)

	case rostermodel.KindUnsubscribe, rostermodel.KindError:
		reportPresenceUpdate("ignored")
		return false
	}
	if s.loaded || ev.Presence.Availability == rostermodel.Unavailable {
		level.Debug(s.logger).Log("msg", "dropped presence from unknown contact", "contact_id", contactID)
		reportPresenceUpdate("ignored")
		return false
	}
	reportPresenceUpdate("provisional")
	return s.Upsert(contactID, rostermodel.NewPatch().
		WithAddress(ev.Address).
		WithPresence(ev.Presence).
		WithProvisional(true),
	)
}

// ReconcileProvisional confirms every contact still flagged as provisional once the bulk load is over,
// so that none of them is silently lost. It returns the number of reconciled contacts.
func (s *Store) ReconcileProvisional() int {
	var ids []string
	for id, c := range s.contacts {
		if c.Provisional {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		s.Upsert(id, rostermodel.NewPatch().WithProvisional(false))
	}
	return len(ids)
}

// ContactIDs returns every stored contact identifier, sorted.
func (s *Store) ContactIDs() []string {
	ret := make([]string, 0, len(s.contacts))
	for id := range s.contacts {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}

func (s *Store) rangeContacts(fn func(c *rostermodel.Contact)) {
	for _, c := range s.contacts {
		fn(c)
	}
}

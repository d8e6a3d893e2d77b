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

	"github.com/ortuman/rostersync/pkg/hook"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
)

// Standard view names.
const (
	AllView       = "ALL"
	FriendsView   = "FRIENDS"
	IncomingView  = "INCOMING"
	OutgoingView  = "OUTGOING"
	OnlineView    = "ONLINE"
	FavoritesView = "FAVORITES"
)

// Predicate decides whether a contact belongs to a view.
// It is always evaluated against the post-mutation contact and must not have side effects.
type Predicate func(c *rostermodel.Contact) bool

var standardViews = []struct {
	name string
	pred Predicate
}{
	{AllView, func(_ *rostermodel.Contact) bool { return true }},
	{FriendsView, func(c *rostermodel.Contact) bool {
		return c.Relationship == rostermodel.Mutual
	}},
	{IncomingView, func(c *rostermodel.Contact) bool {
		return c.Relationship == rostermodel.None && !c.OutgoingRequestSent && c.Presence.Kind == rostermodel.KindSubscribe
	}},
	{OutgoingView, func(c *rostermodel.Contact) bool {
		return c.Relationship == rostermodel.None && c.OutgoingRequestSent
	}},
	{OnlineView, func(c *rostermodel.Contact) bool {
		return c.Relationship == rostermodel.Mutual && c.Presence.IsOnline()
	}},
	// no favorites for now
	{FavoritesView, func(_ *rostermodel.Contact) bool { return false }},
}

// View is a named, predicate-defined subset of the contact store.
type View struct {
	name    string
	pred    Predicate
	members map[string]*rostermodel.Contact
}

// Name returns view name.
func (v *View) Name() string { return v.name }

// Len returns the number of contacts in the view.
func (v *View) Len() int { return len(v.members) }

// Contains tells whether contactID is a member of the view.
func (v *View) Contains(contactID string) bool {
	_, ok := v.members[contactID]
	return ok
}

// Matches evaluates view predicate against c.
func (v *View) Matches(c *rostermodel.Contact) bool { return v.pred(c) }

// IDs returns sorted member identifiers.
func (v *View) IDs() []string {
	ret := make([]string, 0, len(v.members))
	for id := range v.members {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}

// Snapshot returns a copy of the view members, safe to be handed out to readers.
func (v *View) Snapshot() map[string]*rostermodel.Contact {
	ret := make(map[string]*rostermodel.Contact, len(v.members))
	for id, c := range v.members {
		ret[id] = c.Clone()
	}
	return ret
}

// Views keeps a set of filtered views incrementally in sync with a contact store.
type Views struct {
	src   contactSource
	em    hook.Emitter
	order []*View
	byKey map[string]*View
}

type contactSource interface {
	rangeContacts(fn func(c *rostermodel.Contact))
}

func newViews(src contactSource, em hook.Emitter) *Views {
	return &Views{
		src:   src,
		em:    em,
		byKey: make(map[string]*View),
	}
}

// Declare registers a new view, backfilling it from the current store contents.
// Declaring an already existing name keeps the first predicate and returns the existing view.
func (r *Views) Declare(name string, pred Predicate) *View {
	if v, ok := r.byKey[name]; ok {
		return v
	}
	v := &View{
		name:    name,
		pred:    pred,
		members: make(map[string]*rostermodel.Contact),
	}
	r.src.rangeContacts(func(c *rostermodel.Contact) {
		if pred(c) {
			v.members[c.ID] = c
		}
	})
	r.order = append(r.order, v)
	r.byKey[name] = v
	return v
}

// Get returns the view registered under name.
func (r *Views) Get(name string) (*View, bool) {
	v, ok := r.byKey[name]
	return v, ok
}

// Names returns registered view names in declaration order.
func (r *Views) Names() []string {
	ret := make([]string, 0, len(r.order))
	for _, v := range r.order {
		ret = append(ret, v.name)
	}
	return ret
}

// onChanged reconciles every view membership against the post-mutation contact.
// It must only be invoked when the contact data actually changed.
func (r *Views) onChanged(c *rostermodel.Contact) {
	for _, v := range r.order {
		_, present := v.members[c.ID]
		switch matches := v.pred(c); {
		case matches:
			v.members[c.ID] = c
			r.em.Emit(hook.On(hook.ViewItemUpdated, v.name), &hook.ViewInfo{View: v.name, Contact: c.Clone()})

		case present:
			delete(v.members, c.ID)
			r.em.Emit(hook.On(hook.ViewItemRemoved, v.name), &hook.ViewInfo{View: v.name, Contact: c.Clone()})
		}
	}
	reportViewSizes(r)
}

func (r *Views) onRemoved(c *rostermodel.Contact) {
	for _, v := range r.order {
		if _, ok := v.members[c.ID]; !ok {
			continue
		}
		delete(v.members, c.ID)
		r.em.Emit(hook.On(hook.ViewItemRemoved, v.name), &hook.ViewInfo{View: v.name, Contact: c.Clone()})
	}
	reportViewSizes(r)
}

func (r *Views) onCleared() {
	for _, v := range r.order {
		if len(v.members) == 0 {
			continue
		}
		r.em.Emit(hook.On(hook.ViewCleared, v.name), &hook.ViewInfo{View: v.name})
		v.members = make(map[string]*rostermodel.Contact)
	}
	reportViewSizes(r)
}

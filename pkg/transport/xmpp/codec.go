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

import (
	"strconv"

	"github.com/jackal-xmpp/stravaganza/v2"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
)

const (
	rosterNamespace    = "jabber:iq:roster"
	blockingNamespace  = "urn:xmpp:blocking"
	invisibleNamespace = "urn:xmpp:invisible:0"
	vCardNamespace     = "vcard-temp"
	discoInfoNamespace = "http://jabber.org/protocol/disco#info"
	activityNamespace  = "urn:rostersync:activity"

	voiceFeature = "urn:xmpp:jingle:apps:rtp:audio"
)

// decodePresence maps a presence stanza onto a presence push event.
// It returns false for presence types the roster engine does not care about.
func decodePresence(elem stravaganza.Element) (rostermodel.PresenceEvent, bool) {
	ev := rostermodel.PresenceEvent{Address: elem.Attribute(stravaganza.From)}

	switch elem.Attribute(stravaganza.Type) {
	case stravaganza.AvailableType:
		ev.Presence = rostermodel.Presence{
			Availability: decodeShow(elem),
			Kind:         rostermodel.KindAvailable,
			Status:       childText(elem, "status"),
			Activity:     decodeActivity(elem),
		}
	case stravaganza.UnavailableType:
		ev.Presence = rostermodel.UnavailablePresence()
		ev.Presence.Status = childText(elem, "status")

	case stravaganza.SubscribeType:
		ev.Presence = rostermodel.Presence{Kind: rostermodel.KindSubscribe, Status: childText(elem, "status")}

	case stravaganza.UnsubscribeType:
		ev.Presence = rostermodel.Presence{Kind: rostermodel.KindUnsubscribe}

	case stravaganza.ErrorType:
		ev.Presence = rostermodel.Presence{Kind: rostermodel.KindError}

	default:
		// subscribed/unsubscribed answers are followed by a roster push
		return rostermodel.PresenceEvent{}, false
	}
	return ev, true
}

func decodeShow(elem stravaganza.Element) rostermodel.Availability {
	switch childText(elem, "show") {
	case "away", "xa":
		return rostermodel.Away
	case "dnd":
		return rostermodel.Busy
	}
	return rostermodel.Online
}

func decodeActivity(elem stravaganza.Element) *rostermodel.Activity {
	game := elem.ChildNamespace("game", activityNamespace)
	if game == nil || len(game.Attribute("id")) == 0 {
		return nil
	}
	joinable, _ := strconv.ParseBool(game.Attribute("joinable"))
	broadcasting, _ := strconv.ParseBool(game.Attribute("broadcasting"))
	return &rostermodel.Activity{
		GameID:       game.Attribute("id"),
		Title:        game.Attribute("title"),
		Joinable:     joinable,
		Broadcasting: broadcasting,
	}
}

// encodePresence builds the presence stanza broadcasting current user presence.
func encodePresence(from, to string, p rostermodel.Presence) (*stravaganza.Presence, error) {
	b := stravaganza.NewPresenceBuilder().
		WithAttribute(stravaganza.From, from).
		WithAttribute(stravaganza.To, to)

	if p.Kind == rostermodel.KindUnavailable || p.Availability == rostermodel.Unavailable {
		b.WithAttribute(stravaganza.Type, stravaganza.UnavailableType)
	} else {
		b.WithAttribute(stravaganza.Type, stravaganza.AvailableType)
		switch p.Availability {
		case rostermodel.Away:
			b.WithChild(stravaganza.NewBuilder("show").WithText("away").Build())
		case rostermodel.Busy:
			b.WithChild(stravaganza.NewBuilder("show").WithText("dnd").Build())
		}
		if a := p.Activity; a != nil && len(a.GameID) > 0 {
			b.WithChild(
				stravaganza.NewBuilder("game").
					WithAttribute(stravaganza.Namespace, activityNamespace).
					WithAttribute("id", a.GameID).
					WithAttribute("title", a.Title).
					WithAttribute("joinable", strconv.FormatBool(a.Joinable)).
					WithAttribute("broadcasting", strconv.FormatBool(a.Broadcasting)).
					Build(),
			)
		}
	}
	if len(p.Status) > 0 {
		b.WithChild(stravaganza.NewBuilder("status").WithText(p.Status).Build())
	}
	return b.BuildPresence()
}

// decodedItem is a decoded roster item element.
type decodedItem struct {
	address string
	name    string
	rel     rostermodel.RelationshipState
	ask     bool

	// inbound is set when the contact is subscribed to user presence ('from' or 'both').
	inbound bool
}

func decodeRosterItem(item stravaganza.Element) decodedItem {
	ri := decodedItem{
		address: item.Attribute("jid"),
		name:    item.Attribute("name"),
		ask:     item.Attribute("ask") == "subscribe",
	}
	switch item.Attribute("subscription") {
	case "both":
		ri.rel = rostermodel.Mutual
		ri.inbound = true
	case "from":
		ri.rel = rostermodel.None
		ri.inbound = true
	case "remove":
		ri.rel = rostermodel.Removed
	default:
		ri.rel = rostermodel.None
	}
	return ri
}

func decodeRosterEntries(query stravaganza.Element) []rostermodel.Entry {
	items := query.Children("item")
	entries := make([]rostermodel.Entry, 0, len(items))
	for _, item := range items {
		ri := decodeRosterItem(item)
		entries = append(entries, rostermodel.Entry{
			Address:             ri.address,
			DisplayName:         ri.name,
			Relationship:        ri.rel,
			OutgoingRequestSent: ri.ask,
		})
	}
	return entries
}

func decodeBlockItems(elem stravaganza.Element) []string {
	items := elem.Children("item")
	ret := make([]string, 0, len(items))
	for _, item := range items {
		if jd := item.Attribute("jid"); len(jd) > 0 {
			ret = append(ret, jd)
		}
	}
	return ret
}

func blockItems(name string, addresses ...string) stravaganza.Element {
	b := stravaganza.NewBuilder(name).
		WithAttribute(stravaganza.Namespace, blockingNamespace)
	for _, addr := range addresses {
		b.WithChild(
			stravaganza.NewBuilder("item").
				WithAttribute("jid", addr).
				Build(),
		)
	}
	return b.Build()
}

func rosterRemoveQuery(address string) stravaganza.Element {
	return stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, rosterNamespace).
		WithChild(
			stravaganza.NewBuilder("item").
				WithAttribute("jid", address).
				WithAttribute("subscription", "remove").
				Build(),
		).
		Build()
}

func decodeVCard(vCard stravaganza.Element, p *rostermodel.Profile) {
	if vCard == nil {
		return
	}
	p.DisplayName = childText(vCard, "NICKNAME")
	if len(p.DisplayName) == 0 {
		p.DisplayName = childText(vCard, "FN")
	}
	if n := vCard.Child("N"); n != nil {
		p.GivenName = childText(n, "GIVEN")
		p.FamilyName = childText(n, "FAMILY")
	}
}

func decodeVoiceCapable(query stravaganza.Element) bool {
	if query == nil {
		return false
	}
	for _, feature := range query.Children("feature") {
		if feature.Attribute("var") == voiceFeature {
			return true
		}
	}
	return false
}

func childText(elem stravaganza.Element, name string) string {
	child := elem.Child(name)
	if child == nil {
		return ""
	}
	return child.Text()
}

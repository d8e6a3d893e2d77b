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

package admin

import (
	"github.com/ortuman/rostersync/pkg/hook"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
	"github.com/ortuman/rostersync/pkg/roster"
)

type activityJSON struct {
	GameID       string `json:"game_id"`
	Title        string `json:"title,omitempty"`
	Joinable     bool   `json:"joinable"`
	Broadcasting bool   `json:"broadcasting"`
}

type presenceJSON struct {
	Availability string        `json:"availability"`
	Kind         string        `json:"kind"`
	Status       string        `json:"status,omitempty"`
	Activity     *activityJSON `json:"activity,omitempty"`
}

type contactJSON struct {
	ID                  string       `json:"id"`
	Address             string       `json:"address"`
	DisplayName         string       `json:"display_name,omitempty"`
	GivenName           string       `json:"given_name,omitempty"`
	FamilyName          string       `json:"family_name,omitempty"`
	Relationship        string       `json:"relationship"`
	State               string       `json:"state"`
	OutgoingRequestSent bool         `json:"outgoing_request_sent"`
	VoiceCapable        bool         `json:"voice_capable"`
	Provisional         bool         `json:"provisional,omitempty"`
	Presence            presenceJSON `json:"presence"`
}

type rosterJSON struct {
	View     string         `json:"view"`
	Contacts []*contactJSON `json:"contacts"`
}

type selfJSON struct {
	ID        string       `json:"id"`
	State     string       `json:"state"`
	Invisible bool         `json:"invisible"`
	Presence  presenceJSON `json:"presence"`
	Views     []string     `json:"views"`
}

type gameJSON struct {
	GameID     string   `json:"game_id"`
	ContactIDs []string `json:"contact_ids"`
}

type errorJSON struct {
	Error string `json:"error"`
}

type eventJSON struct {
	Kind       string        `json:"kind"`
	Key        string        `json:"key,omitempty"`
	View       string        `json:"view,omitempty"`
	Contact    *contactJSON  `json:"contact,omitempty"`
	Previous   *contactJSON  `json:"previous,omitempty"`
	Presence   *presenceJSON `json:"presence,omitempty"`
	Invisible  *bool         `json:"invisible,omitempty"`
	Count      *int          `json:"count,omitempty"`
	Error      string        `json:"error,omitempty"`
	ContactIDs []string      `json:"contact_ids,omitempty"`
	From       string        `json:"from,omitempty"`
	To         string        `json:"to,omitempty"`
}

func toPresenceJSON(p rostermodel.Presence) presenceJSON {
	ret := presenceJSON{
		Availability: p.Availability.String(),
		Kind:         p.Kind.String(),
		Status:       p.Status,
	}
	if a := p.Activity; a != nil {
		ret.Activity = &activityJSON{
			GameID:       a.GameID,
			Title:        a.Title,
			Joinable:     a.Joinable,
			Broadcasting: a.Broadcasting,
		}
	}
	return ret
}

func toContactJSON(c *rostermodel.Contact) *contactJSON {
	if c == nil {
		return nil
	}
	return &contactJSON{
		ID:                  c.ID,
		Address:             c.Address,
		DisplayName:         c.DisplayName,
		GivenName:           c.GivenName,
		FamilyName:          c.FamilyName,
		Relationship:        c.Relationship.String(),
		State:               c.State().String(),
		OutgoingRequestSent: c.OutgoingRequestSent,
		VoiceCapable:        c.VoiceCapable,
		Provisional:         c.Provisional,
		Presence:            toPresenceJSON(c.Presence),
	}
}

func toGamesJSON(popular []roster.GamePopularity) []gameJSON {
	ret := make([]gameJSON, 0, len(popular))
	for _, gp := range popular {
		ret = append(ret, gameJSON{GameID: gp.GameID, ContactIDs: gp.PlayingContactIDs})
	}
	return ret
}

func toEventJSON(execCtx *hook.ExecutionContext) *eventJSON {
	ev := &eventJSON{Kind: execCtx.Topic.Kind.String(), Key: execCtx.Topic.Key}

	switch inf := execCtx.Info.(type) {
	case *hook.ContactInfo:
		ev.Contact = toContactJSON(inf.Contact)
		ev.Previous = toContactJSON(inf.Previous)

	case *hook.ViewInfo:
		ev.View = inf.View
		ev.Contact = toContactJSON(inf.Contact)

	case *hook.PresenceInfo:
		p := toPresenceJSON(inf.Presence)
		invisible := inf.Invisible
		ev.Presence, ev.Invisible = &p, &invisible

	case *hook.RosterInfo:
		count := inf.Count
		ev.Count = &count
		if inf.Err != nil {
			ev.Error = inf.Err.Error()
		}

	case *hook.BlockListInfo:
		ev.ContactIDs = inf.ContactIDs

	case *hook.SessionInfo:
		ev.From, ev.To = inf.From, inf.To
	}
	return ev
}

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

package xmpputil

import (
	"github.com/google/uuid"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/pkg/errors"
)

// ErrUnsupportedStanza is returned when building a stanza from a non-stanza element.
var ErrUnsupportedStanza = errors.New("xmpputil: unsupported stanza type")

// MakeIQ creates a new IQ of type typ carrying child, identified by a random id.
func MakeIQ(typ, from, to string, child stravaganza.Element) (*stravaganza.IQ, error) {
	return stravaganza.NewIQBuilder().
		WithAttribute(stravaganza.ID, uuid.New().String()).
		WithAttribute(stravaganza.Type, typ).
		WithAttribute(stravaganza.From, from).
		WithAttribute(stravaganza.To, to).
		WithChild(child).
		BuildIQ()
}

// MakeResultIQ creates a new result stanza derived from iq.
func MakeResultIQ(iq *stravaganza.IQ, queryChild stravaganza.Element) *stravaganza.IQ {
	b := iq.ResultBuilder()
	if queryChild != nil {
		b.WithChild(queryChild)
	}
	resIQ, _ := b.BuildIQ()
	return resIQ
}

// MakePresence creates presence of type typ using from and to addresses.
func MakePresence(from, to, typ string, children ...stravaganza.Element) *stravaganza.Presence {
	pr, _ := stravaganza.NewPresenceBuilder().
		WithAttribute(stravaganza.From, from).
		WithAttribute(stravaganza.To, to).
		WithAttribute(stravaganza.Type, typ).
		WithChildren(children...).
		BuildPresence()
	return pr
}

// MakeErrorStanza creates an error stanza using errReason as reason.
func MakeErrorStanza(stanza stravaganza.Stanza, errReason stanzaerror.Reason) stravaganza.Stanza {
	errStanza, _ := stanzaerror.E(errReason, stanza).
		Stanza(false)
	return errStanza
}

// BuildStanza builds a typed stanza out of elem, filling in missing addresses
// with defaultFrom and defaultTo.
func BuildStanza(elem stravaganza.Element, defaultFrom, defaultTo string) (stravaganza.Stanza, error) {
	if st, ok := elem.(stravaganza.Stanza); ok && len(elem.Attribute(stravaganza.From)) > 0 && len(elem.Attribute(stravaganza.To)) > 0 {
		return st, nil
	}
	sb := stravaganza.NewBuilderFromElement(elem).
		WithoutAttribute(stravaganza.Namespace)
	if len(elem.Attribute(stravaganza.From)) == 0 {
		sb.WithAttribute(stravaganza.From, defaultFrom)
	}
	if len(elem.Attribute(stravaganza.To)) == 0 {
		sb.WithAttribute(stravaganza.To, defaultTo)
	}
	switch elem.Name() {
	case "iq":
		return sb.BuildIQ()
	case "presence":
		return sb.BuildPresence()
	case "message":
		return sb.BuildMessage()
	}
	return nil, ErrUnsupportedStanza
}

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
	"context"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/ortuman/rostersync/pkg/transport/xmpp"
	xmpputil "github.com/ortuman/rostersync/pkg/util/xmpp"
	"github.com/pkg/errors"
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

// Acceptor accepts incoming element streams.
type Acceptor interface {
	Accept(ctx context.Context) (xmpp.Stream, error)
}

// Server plays a scenario script against every stream accepted through an Acceptor.
// Roster and block list state is kept across connections.
type Server struct {
	sc      *Scenario
	acc     Acceptor
	userJID *jid.JID
	logger  kitlog.Logger

	mu        sync.RWMutex
	roster    []Item
	blockList []string
}

// NewServer returns a new scenario server acting on behalf of userJID.
func NewServer(sc *Scenario, acc Acceptor, userJID string, logger kitlog.Logger) (*Server, error) {
	usrJID, err := jid.NewWithString(userJID, false)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario: invalid user jid %s", userJID)
	}
	return &Server{
		sc:        sc,
		acc:       acc,
		userJID:   usrJID,
		logger:    logger,
		roster:    append([]Item(nil), sc.Roster...),
		blockList: append([]string(nil), sc.BlockList...),
	}, nil
}

// Serve accepts and serves streams until ctx is cancelled or the acceptor is closed.
func (s *Server) Serve(ctx context.Context) error {
	for {
		st, err := s.acc.Accept(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, xmpp.ErrStreamClosed) {
				return nil
			}
			return err
		}
		level.Info(s.logger).Log("msg", "scenario stream accepted")

		sCtx, cancel := context.WithCancel(ctx)
		go s.play(sCtx, st)
		go func() {
			s.serveStream(sCtx, st)
			cancel()
		}()
	}
}

// Roster returns the current server side roster.
func (s *Server) Roster() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.roster...)
}

// BlockList returns the current server side block list.
func (s *Server) BlockList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.blockList...)
}

func (s *Server) play(ctx context.Context, st xmpp.Stream) {
	t0 := time.Now()
	for i := range s.sc.Events {
		ev := &s.sc.Events[i]

		select {
		case <-time.After(time.Until(t0.Add(ev.After))):
		case <-ctx.Done():
			return
		}
		if ev.Disconnect {
			level.Info(s.logger).Log("msg", "scenario closing stream", "event", i)
			_ = st.Close()
			return
		}
		for _, stanza := range s.eventStanzas(ev) {
			if err := s.send(ctx, st, stanza); err != nil {
				level.Warn(s.logger).Log("msg", "failed to play scenario event", "event", i, "err", err)
				return
			}
		}
		level.Debug(s.logger).Log("msg", "scenario event played", "event", i)
	}
}

func (s *Server) eventStanzas(ev *Event) []stravaganza.Element {
	switch {
	case ev.Presence != nil:
		return []stravaganza.Element{s.presence(ev.Presence)}

	case ev.Roster != nil:
		s.updateRoster(*ev.Roster)
		return []stravaganza.Element{s.rosterPush(*ev.Roster)}

	case len(ev.Block) > 0:
		s.block(ev.Block)
		return []stravaganza.Element{s.blockPush("block", ev.Block)}

	case len(ev.Unblock) > 0 || ev.UnblockAll:
		s.unblock(ev.Unblock)
		return []stravaganza.Element{s.blockPush("unblock", ev.Unblock)}

	default:
		return ev.elems
	}
}

func (s *Server) serveStream(ctx context.Context, st xmpp.Stream) {
	defer func() { _ = st.Close() }()
	for {
		elem, err := st.Receive(ctx)
		if err != nil {
			level.Info(s.logger).Log("msg", "scenario stream closed", "err", err)
			return
		}
		stanza, err := xmpputil.BuildStanza(elem, s.userJID.String(), s.userJID.Domain())
		if err != nil {
			level.Warn(s.logger).Log("msg", "dropped client element", "name", elem.Name(), "err", err)
			continue
		}
		switch stz := stanza.(type) {
		case *stravaganza.IQ:
			s.handleIQ(ctx, st, stz)
		case *stravaganza.Presence:
			s.handlePresence(ctx, st, stz)
		}
	}
}

func (s *Server) handleIQ(ctx context.Context, st xmpp.Stream, iq *stravaganza.IQ) {
	if iq.IsResult() || iq.IsError() {
		return
	}
	switch {
	case iq.IsGet() && iq.ChildNamespace("query", rosterNamespace) != nil:
		go func() {
			select {
			case <-time.After(s.sc.RosterDelay):
			case <-ctx.Done():
				return
			}
			_ = s.send(ctx, st, xmpputil.MakeResultIQ(iq, s.rosterQuery(s.Roster()...)))
		}()

	case iq.IsSet() && iq.ChildNamespace("query", rosterNamespace) != nil:
		var pushes []stravaganza.Element
		for _, itemElem := range iq.ChildNamespace("query", rosterNamespace).Children("item") {
			item := Item{JID: itemElem.Attribute("jid"), Subscription: itemElem.Attribute("subscription"), Name: itemElem.Attribute("name")}
			s.updateRoster(item)
			pushes = append(pushes, s.rosterPush(item))
		}
		s.reply(ctx, st, xmpputil.MakeResultIQ(iq, nil), pushes...)

	case iq.IsGet() && iq.ChildNamespace("blocklist", blockingNamespace) != nil:
		s.reply(ctx, st, xmpputil.MakeResultIQ(iq, s.blockListElement("blocklist", s.BlockList())))

	case iq.IsSet() && iq.ChildNamespace("block", blockingNamespace) != nil:
		addresses := itemAddresses(iq.ChildNamespace("block", blockingNamespace))
		s.block(addresses)
		s.reply(ctx, st, xmpputil.MakeResultIQ(iq, nil), s.blockPush("block", addresses))

	case iq.IsSet() && iq.ChildNamespace("unblock", blockingNamespace) != nil:
		addresses := itemAddresses(iq.ChildNamespace("unblock", blockingNamespace))
		s.unblock(addresses)
		s.reply(ctx, st, xmpputil.MakeResultIQ(iq, nil), s.blockPush("unblock", addresses))

	case iq.IsSet() && (iq.ChildNamespace("invisible", invisibleNamespace) != nil || iq.ChildNamespace("visible", invisibleNamespace) != nil):
		s.reply(ctx, st, xmpputil.MakeResultIQ(iq, nil))

	case iq.IsGet() && iq.ChildNamespace("vCard", vCardNamespace) != nil:
		p, ok := s.sc.Profiles[iq.ToJID().ToBareJID().String()]
		if !ok {
			s.reply(ctx, st, xmpputil.MakeErrorStanza(iq, stanzaerror.ItemNotFound))
			return
		}
		s.reply(ctx, st, xmpputil.MakeResultIQ(iq, vCardElement(p)))

	case iq.IsGet() && iq.ChildNamespace("query", discoInfoNamespace) != nil:
		p := s.sc.Profiles[iq.ToJID().ToBareJID().String()]
		s.reply(ctx, st, xmpputil.MakeResultIQ(iq, discoInfoElement(p)))

	default:
		s.reply(ctx, st, xmpputil.MakeErrorStanza(iq, stanzaerror.ServiceUnavailable))
	}
}

func (s *Server) handlePresence(ctx context.Context, st xmpp.Stream, pr *stravaganza.Presence) {
	to := pr.ToJID().ToBareJID().String()

	var items []Item
	switch sub := s.subscription(to); pr.Attribute(stravaganza.Type) {
	case stravaganza.SubscribeType:
		switch {
		case sub == "both":
			return
		case sub == "from":
			// the contact asked first, so it approves the user's request right away
			items = []Item{
				{JID: to, Subscription: "from", Ask: true},
				{JID: to, Subscription: "both"},
			}
		case s.sc.AutoAccept:
			items = []Item{{JID: to, Subscription: "both"}}
		default:
			items = []Item{{JID: to, Subscription: sub, Ask: true}}
		}

	case stravaganza.SubscribedType:
		switch sub {
		case "to", "both":
			items = []Item{{JID: to, Subscription: "both"}}
		default:
			items = []Item{{JID: to, Subscription: "from"}}
		}

	case stravaganza.UnsubscribeType, stravaganza.UnsubscribedType:
		items = []Item{{JID: to, Subscription: "none"}}

	default:
		level.Debug(s.logger).Log("msg", "user presence broadcast", "type", pr.Attribute(stravaganza.Type))
		return
	}
	for _, item := range items {
		if len(item.Subscription) == 0 {
			item.Subscription = "none"
		}
		s.updateRoster(item)
		if err := s.send(ctx, st, s.rosterPush(item)); err != nil {
			return
		}
	}
}

func (s *Server) reply(ctx context.Context, st xmpp.Stream, reply stravaganza.Element, pushes ...stravaganza.Element) {
	for _, elem := range append([]stravaganza.Element{reply}, pushes...) {
		if err := s.send(ctx, st, elem); err != nil {
			level.Warn(s.logger).Log("msg", "failed to reply client request", "err", err)
			return
		}
	}
}

func (s *Server) send(ctx context.Context, st xmpp.Stream, elem stravaganza.Element) error {
	return st.Send(ctx, elem)
}

func (s *Server) subscription(address string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.roster {
		if item.JID == address {
			return item.Subscription
		}
	}
	return ""
}

func (s *Server) updateRoster(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.roster {
		if it.JID != item.JID {
			continue
		}
		if item.Subscription == "remove" {
			s.roster = append(s.roster[:i:i], s.roster[i+1:]...)
			return
		}
		if len(item.Name) == 0 {
			item.Name = it.Name
		}
		s.roster[i] = item
		return
	}
	if item.Subscription != "remove" {
		s.roster = append(s.roster, item)
	}
}

func (s *Server) block(addresses []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, addr := range addresses {
		if !contains(s.blockList, addr) {
			s.blockList = append(s.blockList, addr)
		}
	}
}

func (s *Server) unblock(addresses []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(addresses) == 0 {
		s.blockList = nil
		return
	}
	var ret []string
	for _, addr := range s.blockList {
		if !contains(addresses, addr) {
			ret = append(ret, addr)
		}
	}
	s.blockList = ret
}

func (s *Server) presence(p *Presence) stravaganza.Element {
	b := stravaganza.NewPresenceBuilder().
		WithAttribute(stravaganza.From, p.From).
		WithAttribute(stravaganza.To, s.userJID.String())
	if len(p.Type) > 0 {
		b.WithAttribute(stravaganza.Type, p.Type)
	}
	if len(p.Show) > 0 {
		b.WithChild(stravaganza.NewBuilder("show").WithText(p.Show).Build())
	}
	if len(p.Status) > 0 {
		b.WithChild(stravaganza.NewBuilder("status").WithText(p.Status).Build())
	}
	if g := p.Game; g != nil {
		gb := stravaganza.NewBuilder("game").
			WithAttribute(stravaganza.Namespace, activityNamespace).
			WithAttribute("id", g.ID).
			WithAttribute("title", g.Title)
		if g.Joinable {
			gb.WithAttribute("joinable", "true")
		}
		if g.Broadcasting {
			gb.WithAttribute("broadcasting", "true")
		}
		b.WithChild(gb.Build())
	}
	return b.Build()
}

func (s *Server) rosterPush(item Item) stravaganza.Element {
	iq, _ := xmpputil.MakeIQ(stravaganza.SetType, s.userJID.ToBareJID().String(), s.userJID.String(), s.rosterQuery(item))
	return iq
}

func (s *Server) rosterQuery(items ...Item) stravaganza.Element {
	b := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, rosterNamespace)
	for _, item := range items {
		ib := stravaganza.NewBuilder("item").
			WithAttribute("jid", item.JID)
		if len(item.Subscription) > 0 {
			ib.WithAttribute("subscription", item.Subscription)
		}
		if len(item.Name) > 0 {
			ib.WithAttribute("name", item.Name)
		}
		if item.Ask {
			ib.WithAttribute("ask", "subscribe")
		}
		b.WithChild(ib.Build())
	}
	return b.Build()
}

func (s *Server) blockPush(name string, addresses []string) stravaganza.Element {
	iq, _ := xmpputil.MakeIQ(stravaganza.SetType, s.userJID.ToBareJID().String(), s.userJID.String(), s.blockListElement(name, addresses))
	return iq
}

func (s *Server) blockListElement(name string, addresses []string) stravaganza.Element {
	b := stravaganza.NewBuilder(name).
		WithAttribute(stravaganza.Namespace, blockingNamespace)
	for _, addr := range addresses {
		b.WithChild(stravaganza.NewBuilder("item").WithAttribute("jid", addr).Build())
	}
	return b.Build()
}

func vCardElement(p Profile) stravaganza.Element {
	b := stravaganza.NewBuilder("vCard").
		WithAttribute(stravaganza.Namespace, vCardNamespace)
	if len(p.FullName) > 0 {
		b.WithChild(stravaganza.NewBuilder("FN").WithText(p.FullName).Build())
	}
	if len(p.Nickname) > 0 {
		b.WithChild(stravaganza.NewBuilder("NICKNAME").WithText(p.Nickname).Build())
	}
	if len(p.Given) > 0 || len(p.Family) > 0 {
		b.WithChild(
			stravaganza.NewBuilder("N").
				WithChild(stravaganza.NewBuilder("GIVEN").WithText(p.Given).Build()).
				WithChild(stravaganza.NewBuilder("FAMILY").WithText(p.Family).Build()).
				Build(),
		)
	}
	return b.Build()
}

func discoInfoElement(p Profile) stravaganza.Element {
	b := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, discoInfoNamespace).
		WithChild(
			stravaganza.NewBuilder("identity").
				WithAttribute("category", "client").
				WithAttribute("type", "pc").
				Build(),
		)
	if p.Voice {
		b.WithChild(stravaganza.NewBuilder("feature").WithAttribute("var", voiceFeature).Build())
	}
	return b.Build()
}

func itemAddresses(elem stravaganza.Element) []string {
	var ret []string
	for _, item := range elem.Children("item") {
		if jd := item.Attribute("jid"); len(jd) > 0 {
			ret = append(ret, jd)
		}
	}
	return ret
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}

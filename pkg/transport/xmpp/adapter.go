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
	"context"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
	"github.com/ortuman/rostersync/pkg/transport"
	xmpputil "github.com/ortuman/rostersync/pkg/util/xmpp"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
)

var (
	// ErrNotConnected is returned when the adapter stream is not established.
	ErrNotConnected = transport.ErrNotConnected

	// ErrMalformedStanza is returned when an incoming element cannot be interpreted.
	ErrMalformedStanza = errors.New("xmpp: malformed stanza")

	// ErrUnknownCommand is returned when sending an unrecognized command.
	ErrUnknownCommand = errors.New("xmpp: unknown command")
)

// IQError represents an IQ answered with an error type.
type IQError struct {
	Name      string
	Condition string
}

// Error satisfies error interface.
func (e *IQError) Error() string {
	return "xmpp: " + e.Name + " request failed: " + e.Condition
}

type iqCallback func(iq *stravaganza.IQ, err error)

// Adapter implements the roster engine transport and profile resolution on top of an XMPP stream.
type Adapter struct {
	cfg     Config
	dialer  Dialer
	userJID *jid.JID
	cb      *gobreaker.CircuitBreaker
	logger  kitlog.Logger

	mu        sync.RWMutex
	st        Stream
	connected bool
	readDone  chan struct{}
	pending   map[string]iqCallback
	invisible *bool

	blMu      sync.Mutex
	blockList []string
	blKnown   bool

	connectedLs    listeners[func()]
	disconnectedLs listeners[func()]
	presenceLs     listeners[func(rostermodel.PresenceEvent)]
	rosterLs       listeners[func(rostermodel.Change)]
	blockListLs    listeners[func([]string)]
}

// New returns a new initialized Adapter.
func New(dialer Dialer, cfg Config, logger kitlog.Logger) (*Adapter, error) {
	userJID, err := jid.NewWithString(cfg.UserJID, false)
	if err != nil {
		return nil, errors.Wrapf(err, "xmpp: invalid user jid %s", cfg.UserJID)
	}
	a := &Adapter{
		cfg:     cfg,
		dialer:  dialer,
		userJID: userJID,
		logger:  kitlog.With(logger, "jid", userJID.String()),
		pending: make(map[string]iqCallback),
	}
	a.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "xmpp",
		Timeout: cfg.Breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			var iqErr *IQError
			return err == nil || errors.As(err, &iqErr)
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			level.Info(a.logger).Log("msg", "circuit breaker state changed", "from", from, "to", to)
			reportBreakerState(to)
		},
	})
	return a, nil
}

// IsConnected satisfies transport.Transport interface.
func (a *Adapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

// Connect satisfies transport.Transport interface.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	if a.connected {
		a.mu.Unlock()
		return nil
	}
	prevDone := a.readDone
	a.mu.Unlock()

	// previous read loop must have delivered its disconnected push
	if prevDone != nil {
		select {
		case <-prevDone:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	st, err := a.dialer.Dial(ctx)
	if err != nil {
		return errors.Wrap(err, "xmpp: failed to dial")
	}
	readDone := make(chan struct{})

	a.mu.Lock()
	if a.connected {
		a.mu.Unlock()
		_ = st.Close()
		return nil
	}
	a.st = st
	a.connected = true
	a.readDone = readDone
	a.invisible = nil
	a.mu.Unlock()

	a.blMu.Lock()
	a.blockList = nil
	a.blKnown = false
	a.blMu.Unlock()

	level.Info(a.logger).Log("msg", "xmpp stream connected")

	go a.readLoop(st, readDone)
	return nil
}

// Disconnect satisfies transport.Transport interface.
func (a *Adapter) Disconnect(ctx context.Context) error {
	a.mu.RLock()
	st, readDone := a.st, a.readDone
	connected := a.connected
	a.mu.RUnlock()

	if !connected {
		return nil
	}
	if err := st.Close(); err != nil {
		return errors.Wrap(err, "xmpp: failed to close stream")
	}
	select {
	case <-readDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestRoster satisfies transport.Transport interface.
func (a *Adapter) RequestRoster(ctx context.Context) ([]rostermodel.Entry, error) {
	query := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, rosterNamespace).
		Build()
	res, err := a.guardedRequest(ctx, "roster", stravaganza.GetType, a.userJID.ToBareJID().String(), query)
	if err != nil {
		return nil, err
	}
	q := res.ChildNamespace("query", rosterNamespace)
	if q == nil {
		return nil, nil
	}
	return decodeRosterEntries(q), nil
}

// UpdatePresence satisfies transport.Transport interface.
func (a *Adapter) UpdatePresence(ctx context.Context, presence rostermodel.Presence, invisible bool) error {
	a.mu.RLock()
	sent := a.invisible
	a.mu.RUnlock()

	if sent == nil || *sent != invisible {
		name := "visible"
		if invisible {
			name = "invisible"
		}
		elem := stravaganza.NewBuilder(name).
			WithAttribute(stravaganza.Namespace, invisibleNamespace).
			Build()
		if _, err := a.request(ctx, name, stravaganza.SetType, a.userJID.Domain(), elem); err != nil {
			return err
		}
		a.mu.Lock()
		a.invisible = &invisible
		a.mu.Unlock()
	}
	pr, err := encodePresence(a.userJID.String(), a.userJID.ToBareJID().String(), presence)
	if err != nil {
		return errors.Wrap(err, "xmpp: failed to build presence")
	}
	return a.send(ctx, pr)
}

// Send satisfies transport.Transport interface.
func (a *Adapter) Send(ctx context.Context, cmd transport.Command, address string) error {
	toJID, err := jid.NewWithString(address, false)
	if err != nil {
		return errors.Wrapf(err, "xmpp: invalid address %s", address)
	}
	to := toJID.ToBareJID().String()

	switch cmd {
	case transport.SendFriendRequest:
		return a.sendPresence(ctx, to, stravaganza.SubscribeType)

	case transport.AcceptFriendRequest:
		if err := a.sendPresence(ctx, to, stravaganza.SubscribedType); err != nil {
			return err
		}
		return a.sendPresence(ctx, to, stravaganza.SubscribeType)

	case transport.RejectFriendRequest:
		return a.sendPresence(ctx, to, stravaganza.UnsubscribedType)

	case transport.RevokeFriendRequest:
		return a.sendPresence(ctx, to, stravaganza.UnsubscribeType)

	case transport.RemoveFriend:
		return a.removeRosterItem(ctx, to)

	case transport.BlockUser:
		return a.block(ctx, "block", to)

	case transport.UnblockUser:
		return a.block(ctx, "unblock", to)

	case transport.RemoveAndBlock:
		if err := a.removeRosterItem(ctx, to); err != nil {
			return err
		}
		return a.block(ctx, "block", to)

	case transport.CancelAndBlock:
		if err := a.sendPresence(ctx, to, stravaganza.UnsubscribeType); err != nil {
			return err
		}
		return a.block(ctx, "block", to)

	case transport.IgnoreAndBlock:
		if err := a.sendPresence(ctx, to, stravaganza.UnsubscribedType); err != nil {
			return err
		}
		return a.block(ctx, "block", to)
	}
	return errors.Wrapf(ErrUnknownCommand, "command %d", cmd)
}

// Resolve satisfies profile.Resolver interface.
func (a *Adapter) Resolve(ctx context.Context, address string) (rostermodel.Profile, error) {
	toJID, err := jid.NewWithString(address, false)
	if err != nil {
		return rostermodel.Profile{}, errors.Wrapf(err, "xmpp: invalid address %s", address)
	}
	var p rostermodel.Profile

	vCardElem := stravaganza.NewBuilder("vCard").
		WithAttribute(stravaganza.Namespace, vCardNamespace).
		Build()
	res, err := a.guardedRequest(ctx, "vcard", stravaganza.GetType, toJID.ToBareJID().String(), vCardElem)
	switch {
	case err == nil:
		decodeVCard(res.ChildNamespace("vCard", vCardNamespace), &p)
	case isIQError(err):
		level.Debug(a.logger).Log("msg", "vcard not available", "address", address, "err", err)
	default:
		return rostermodel.Profile{}, err
	}

	discoElem := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, discoInfoNamespace).
		Build()
	res, err = a.guardedRequest(ctx, "disco_info", stravaganza.GetType, toJID.String(), discoElem)
	switch {
	case err == nil:
		p.VoiceCapable = decodeVoiceCapable(res.ChildNamespace("query", discoInfoNamespace))
	case isIQError(err):
		level.Debug(a.logger).Log("msg", "disco info not available", "address", address, "err", err)
	default:
		return rostermodel.Profile{}, err
	}
	return p, nil
}

// BlockList returns the last known list of blocked addresses.
func (a *Adapter) BlockList() []string {
	a.blMu.Lock()
	defer a.blMu.Unlock()
	return append([]string{}, a.blockList...)
}

// OnConnected satisfies transport.Transport interface.
func (a *Adapter) OnConnected(fn func()) transport.Subscription {
	return a.connectedLs.add(fn)
}

// OnDisconnected satisfies transport.Transport interface.
func (a *Adapter) OnDisconnected(fn func()) transport.Subscription {
	return a.disconnectedLs.add(fn)
}

// OnPresenceChanged satisfies transport.Transport interface.
func (a *Adapter) OnPresenceChanged(fn func(ev rostermodel.PresenceEvent)) transport.Subscription {
	return a.presenceLs.add(fn)
}

// OnRosterChanged satisfies transport.Transport interface.
func (a *Adapter) OnRosterChanged(fn func(change rostermodel.Change)) transport.Subscription {
	return a.rosterLs.add(fn)
}

// OnBlockListChanged satisfies transport.Transport interface.
// A block list already retrieved on the current connection is replayed to fn right away.
func (a *Adapter) OnBlockListChanged(fn func(addresses []string)) transport.Subscription {
	a.blMu.Lock()
	defer a.blMu.Unlock()

	sub := a.blockListLs.add(fn)
	if a.blKnown {
		fn(append([]string{}, a.blockList...))
	}
	return sub
}

func (a *Adapter) readLoop(st Stream, done chan struct{}) {
	defer close(done)

	for _, fn := range a.connectedLs.all() {
		fn()
	}
	a.fetchBlockList(st)

	for {
		elem, err := st.Receive(context.Background())
		if err != nil {
			a.onStreamClosed(st, err)
			return
		}
		a.handleElement(st, elem)
	}
}

func (a *Adapter) onStreamClosed(st Stream, err error) {
	_ = st.Close()

	a.mu.Lock()
	pending := a.pending
	a.pending = make(map[string]iqCallback)
	a.connected = false
	a.st = nil
	a.mu.Unlock()

	for _, cb := range pending {
		cb(nil, ErrNotConnected)
	}
	level.Info(a.logger).Log("msg", "xmpp stream disconnected", "err", err)

	for _, fn := range a.disconnectedLs.all() {
		fn()
	}
}

func (a *Adapter) handleElement(st Stream, elem stravaganza.Element) {
	stanza, err := xmpputil.BuildStanza(elem, a.userJID.Domain(), a.userJID.String())
	if err != nil {
		level.Warn(a.logger).Log("msg", "dropped incoming element", "name", elem.Name(), "err", errors.Wrap(ErrMalformedStanza, err.Error()))
		return
	}
	reportIncomingStanza(stanza.Name(), stanza.Attribute(stravaganza.Type))

	switch stz := stanza.(type) {
	case *stravaganza.IQ:
		a.handleIQ(st, stz)
	case *stravaganza.Presence:
		a.handlePresence(stz)
	default:
		level.Debug(a.logger).Log("msg", "ignored incoming stanza", "name", stanza.Name())
	}
}

func (a *Adapter) handleIQ(st Stream, iq *stravaganza.IQ) {
	if iq.IsResult() || iq.IsError() {
		a.mu.Lock()
		cb, ok := a.pending[iq.Attribute(stravaganza.ID)]
		delete(a.pending, iq.Attribute(stravaganza.ID))
		a.mu.Unlock()

		if !ok {
			level.Debug(a.logger).Log("msg", "unexpected IQ response", "id", iq.Attribute(stravaganza.ID))
			return
		}
		cb(iq, nil)
		return
	}
	if !iq.IsSet() || !a.isServerAddress(iq.FromJID()) {
		a.reply(st, xmpputil.MakeErrorStanza(iq, stanzaerror.ServiceUnavailable))
		return
	}
	switch {
	case iq.ChildNamespace("query", rosterNamespace) != nil:
		a.reply(st, xmpputil.MakeResultIQ(iq, nil))
		a.handleRosterPush(iq.ChildNamespace("query", rosterNamespace))

	case iq.ChildNamespace("block", blockingNamespace) != nil:
		a.reply(st, xmpputil.MakeResultIQ(iq, nil))
		a.handleBlockPush(decodeBlockItems(iq.ChildNamespace("block", blockingNamespace)), true)

	case iq.ChildNamespace("unblock", blockingNamespace) != nil:
		a.reply(st, xmpputil.MakeResultIQ(iq, nil))
		a.handleBlockPush(decodeBlockItems(iq.ChildNamespace("unblock", blockingNamespace)), false)

	default:
		a.reply(st, xmpputil.MakeErrorStanza(iq, stanzaerror.ServiceUnavailable))
	}
}

func (a *Adapter) handleRosterPush(query stravaganza.Element) {
	for _, item := range query.Children("item") {
		ri := decodeRosterItem(item)
		if len(ri.address) == 0 {
			level.Warn(a.logger).Log("msg", "dropped roster push item", "err", ErrMalformedStanza)
			continue
		}
		change := rostermodel.Change{
			Address:             ri.address,
			Relationship:        ri.rel,
			OutgoingRequestSent: ri.ask,
			Inbound:             ri.inbound,
		}
		for _, fn := range a.rosterLs.all() {
			fn(change)
		}
	}
}

func (a *Adapter) handleBlockPush(addresses []string, block bool) {
	a.blMu.Lock()
	defer a.blMu.Unlock()

	switch {
	case block:
		a.blockList = mergeAddresses(a.blockList, addresses)
	case len(addresses) == 0:
		// unblock without items clears the whole list
		a.blockList = nil
	default:
		a.blockList = subtractAddresses(a.blockList, addresses)
	}
	a.blKnown = true
	a.notifyBlockList()
}

func (a *Adapter) handlePresence(pr *stravaganza.Presence) {
	if pr.FromJID().ToBareJID().String() == a.userJID.ToBareJID().String() {
		return
	}
	ev, ok := decodePresence(pr)
	if !ok {
		return
	}
	for _, fn := range a.presenceLs.all() {
		fn(ev)
	}
}

func (a *Adapter) fetchBlockList(st Stream) {
	elem := stravaganza.NewBuilder("blocklist").
		WithAttribute(stravaganza.Namespace, blockingNamespace).
		Build()
	iq, err := xmpputil.MakeIQ(stravaganza.GetType, a.userJID.String(), a.userJID.ToBareJID().String(), elem)
	if err != nil {
		return
	}
	t0 := time.Now()
	err = a.sendIQ(context.Background(), st, iq, func(res *stravaganza.IQ, err error) {
		reportIQRequest("blocklist", err == nil && res.IsResult(), time.Since(t0))
		if err != nil || !res.IsResult() {
			level.Warn(a.logger).Log("msg", "failed to fetch block list", "err", err)
			return
		}
		var addresses []string
		if bl := res.ChildNamespace("blocklist", blockingNamespace); bl != nil {
			addresses = decodeBlockItems(bl)
		}
		a.blMu.Lock()
		a.blockList = mergeAddresses(nil, addresses)
		a.blKnown = true
		a.notifyBlockList()
		a.blMu.Unlock()
	})
	if err != nil {
		level.Warn(a.logger).Log("msg", "failed to request block list", "err", err)
	}
}

// notifyBlockList must be called holding blMu.
func (a *Adapter) notifyBlockList() {
	for _, fn := range a.blockListLs.all() {
		fn(append([]string{}, a.blockList...))
	}
}

func (a *Adapter) sendPresence(ctx context.Context, to, typ string) error {
	return a.send(ctx, xmpputil.MakePresence(a.userJID.String(), to, typ))
}

func (a *Adapter) removeRosterItem(ctx context.Context, address string) error {
	_, err := a.request(ctx, "roster_remove", stravaganza.SetType, a.userJID.ToBareJID().String(), rosterRemoveQuery(address))
	return err
}

func (a *Adapter) block(ctx context.Context, name, address string) error {
	_, err := a.request(ctx, name, stravaganza.SetType, a.userJID.ToBareJID().String(), blockItems(name, address))
	return err
}

func (a *Adapter) guardedRequest(ctx context.Context, name, typ, to string, child stravaganza.Element) (*stravaganza.IQ, error) {
	res, err := a.cb.Execute(func() (interface{}, error) {
		return a.request(ctx, name, typ, to, child)
	})
	if err != nil {
		return nil, err
	}
	return res.(*stravaganza.IQ), nil
}

func (a *Adapter) request(ctx context.Context, name, typ, to string, child stravaganza.Element) (*stravaganza.IQ, error) {
	iq, err := xmpputil.MakeIQ(typ, a.userJID.String(), to, child)
	if err != nil {
		return nil, errors.Wrapf(err, "xmpp: failed to build %s request", name)
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()

	a.mu.RLock()
	st := a.st
	a.mu.RUnlock()
	if st == nil {
		return nil, ErrNotConnected
	}
	type response struct {
		iq  *stravaganza.IQ
		err error
	}
	resCh := make(chan response, 1)

	t0 := time.Now()
	err = a.sendIQ(ctx, st, iq, func(res *stravaganza.IQ, err error) {
		resCh <- response{iq: res, err: err}
	})
	if err != nil {
		reportIQRequest(name, false, time.Since(t0))
		return nil, err
	}
	select {
	case res := <-resCh:
		if res.err != nil {
			reportIQRequest(name, false, time.Since(t0))
			return nil, res.err
		}
		if res.iq.IsError() {
			reportIQRequest(name, false, time.Since(t0))
			return nil, &IQError{Name: name, Condition: errorCondition(res.iq)}
		}
		reportIQRequest(name, true, time.Since(t0))
		return res.iq, nil

	case <-ctx.Done():
		a.mu.Lock()
		delete(a.pending, iq.Attribute(stravaganza.ID))
		a.mu.Unlock()

		reportIQRequest(name, false, time.Since(t0))
		return nil, errors.Wrapf(ctx.Err(), "xmpp: %s request", name)
	}
}

func (a *Adapter) sendIQ(ctx context.Context, st Stream, iq *stravaganza.IQ, cb iqCallback) error {
	id := iq.Attribute(stravaganza.ID)

	a.mu.Lock()
	if !a.connected || a.st != st {
		a.mu.Unlock()
		return ErrNotConnected
	}
	a.pending[id] = cb
	a.mu.Unlock()

	if err := a.write(ctx, st, iq); err != nil {
		a.mu.Lock()
		delete(a.pending, id)
		a.mu.Unlock()
		return err
	}
	return nil
}

func (a *Adapter) send(ctx context.Context, stanza stravaganza.Stanza) error {
	a.mu.RLock()
	st := a.st
	a.mu.RUnlock()
	if st == nil {
		return ErrNotConnected
	}
	return a.write(ctx, st, stanza)
}

func (a *Adapter) reply(st Stream, stanza stravaganza.Stanza) {
	if err := a.write(context.Background(), st, stanza); err != nil {
		level.Warn(a.logger).Log("msg", "failed to reply IQ", "err", err)
	}
}

func (a *Adapter) write(ctx context.Context, st Stream, stanza stravaganza.Stanza) error {
	if err := st.Send(ctx, stanza); err != nil {
		if errors.Is(err, ErrStreamClosed) {
			return ErrNotConnected
		}
		return errors.Wrap(err, "xmpp: failed to send stanza")
	}
	reportOutgoingStanza(stanza.Name(), stanza.Attribute(stravaganza.Type))
	return nil
}

func (a *Adapter) isServerAddress(from *jid.JID) bool {
	fromStr := from.String()
	return fromStr == a.userJID.Domain() || fromStr == a.userJID.ToBareJID().String()
}

func errorCondition(iq *stravaganza.IQ) string {
	errElem := iq.Child("error")
	if errElem == nil {
		return "undefined-condition"
	}
	for _, child := range errElem.AllChildren() {
		if child.Name() != "text" {
			return child.Name()
		}
	}
	return "undefined-condition"
}

func isIQError(err error) bool {
	var iqErr *IQError
	return errors.As(err, &iqErr)
}

func mergeAddresses(list []string, addresses []string) []string {
	seen := make(map[string]struct{}, len(list))
	ret := make([]string, 0, len(list)+len(addresses))
	for _, addr := range append(append([]string(nil), list...), addresses...) {
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		ret = append(ret, addr)
	}
	return ret
}

func subtractAddresses(list []string, addresses []string) []string {
	drop := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		drop[addr] = struct{}{}
	}
	ret := make([]string, 0, len(list))
	for _, addr := range list {
		if _, ok := drop[addr]; !ok {
			ret = append(ret, addr)
		}
	}
	return ret
}

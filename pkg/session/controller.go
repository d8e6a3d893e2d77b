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

package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/ortuman/rostersync/pkg/hook"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
	"github.com/ortuman/rostersync/pkg/profile"
	"github.com/ortuman/rostersync/pkg/roster"
	"github.com/ortuman/rostersync/pkg/shaper"
	"github.com/ortuman/rostersync/pkg/transport"
	"github.com/pkg/errors"
)

var (
	// ErrRosterLoadFailed is returned by GetRoster when the roster bulk fetch failed.
	ErrRosterLoadFailed = errors.New("session: roster load failed")

	// ErrSessionClosed is returned to pending operations interrupted by a logout or a disconnection.
	ErrSessionClosed = errors.New("session: closed")

	// ErrNotConnected is returned by request-scoped operations issued while the transport is disconnected.
	ErrNotConnected = errors.New("session: not connected")

	// ErrInvalidView is returned when declaring a view with no name or no predicate.
	ErrInvalidView = errors.New("session: invalid view")
)

// Controller drives the session lifecycle and owns the contact store.
//
// Every store mutation runs on the controller run queue. Read accessors are safe for concurrent use.
// Hook handlers run on the run queue too, after the store lock has been released, so they may call
// any accessor, or enqueue new operations, but must never block on an operation result.
type Controller struct {
	cfg    Config
	tr     transport.Transport
	rs     profile.Resolver
	lims   *shaper.Limiters
	hk     *hook.Hooks
	logger kitlog.Logger
	rq     *runqueue.RunQueue

	cancelled atomic.Bool
	profileCh chan profileRequest
	hooks     hook.Subscriptions
	stopOnce  sync.Once

	mu         sync.RWMutex
	state      State
	store      *roster.Store
	batch      *hook.Batch
	blocked    map[string]struct{}
	loadDone   chan struct{}
	loadClosed bool
	loadErr    error
	fetching   bool
	generation uint64
	accept     *pendingAccept

	connSubs []transport.Subscription
	liveSubs []transport.Subscription
}

// New returns a new session controller for the user identified by userAddress.
// rs may be nil, in which case contact profiles are never resolved.
func New(
	userAddress string,
	tr transport.Transport,
	rs profile.Resolver,
	shapers shaper.Shapers,
	hk *hook.Hooks,
	cfg Config,
	logger kitlog.Logger,
	opts ...roster.Option,
) *Controller {
	c := &Controller{
		cfg:      cfg,
		tr:       tr,
		rs:       rs,
		lims:     shaper.NewLimiters(shapers),
		hk:       hk,
		logger:   kitlog.With(logger, "user", userAddress),
		rq:       runqueue.New("session:" + userAddress),
		blocked:  make(map[string]struct{}),
		loadDone: make(chan struct{}),
	}
	c.batch = hook.NewBatch(hk, c, c.logger)
	c.store = roster.NewStore(userAddress, c.batch, c.logger, opts...)

	c.hooks.Add(hk.AddHook(hook.All(hook.AcceptanceConfirmed), c.onAcceptanceConfirmed, hook.HighestPriority))
	c.hooks.Add(hk.AddHook(hook.All(hook.AcceptanceFailed), c.onAcceptanceFailed, hook.HighestPriority))

	if rs != nil && cfg.ProfileWorkers > 0 {
		c.profileCh = make(chan profileRequest, cfg.ProfileQueueSize)
		for i := 0; i < cfg.ProfileWorkers; i++ {
			go c.profileWorker()
		}
		c.hooks.Add(hk.AddHook(hook.All(hook.ContactChanged), c.onContactChanged, hook.LowestPriority))
	}
	reportState(LoggedOut)
	return c
}

// Start authenticates the session and waits until the transport connection has been requested.
func (c *Controller) Start(ctx context.Context) error {
	select {
	case err := <-c.Authenticated(ctx):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop logs the session out and releases every controller resource.
func (c *Controller) Stop(ctx context.Context) error {
	var err error
	select {
	case err = <-c.Logout(ctx):
		break
	case <-ctx.Done():
		err = ctx.Err()
	}
	c.stopOnce.Do(func() {
		c.hooks.ReleaseAll()

		doneCh := make(chan struct{})
		c.rq.Stop(func() { close(doneCh) })
		<-doneCh

		if c.profileCh != nil {
			close(c.profileCh)
		}
	})
	return err
}

// Authenticated signals the user has been authenticated, triggering transport connection
// and roster retrieval.
func (c *Controller) Authenticated(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		if !c.canConnect() {
			errCh <- nil
			return
		}
		c.mutate(func() {
			c.setState(Connecting)
		})
		c.subscribeConnection()

		if c.tr.IsConnected() {
			c.onConnected()
			errCh <- nil
			return
		}
		go func() {
			err := c.tr.Connect(ctx)
			if err == nil {
				errCh <- nil
				return
			}
			c.rq.Run(func() {
				level.Warn(c.logger).Log("msg", "failed to connect transport", "err", err)
				if c.state == Connecting {
					c.releaseConnection()
					c.teardown()
				}
				errCh <- errors.Wrap(err, "session: failed to connect")
			})
		}()
	})
	return errCh
}

// Logout tears the session down. Any in-flight roster load is cancelled at its next chunk boundary.
func (c *Controller) Logout(ctx context.Context) <-chan error {
	c.cancelled.Store(true)

	errCh := make(chan error, 1)
	c.rq.Run(func() {
		c.releaseConnection()
		c.teardown()

		if !c.tr.IsConnected() {
			errCh <- nil
			return
		}
		go func() {
			errCh <- c.tr.Disconnect(ctx)
		}()
	})
	return errCh
}

// GetRoster returns a copy of the named view members. It waits until the roster bulk load
// has completed, whenever it is called.
func (c *Controller) GetRoster(ctx context.Context, view string) (map[string]*rostermodel.Contact, error) {
	c.mu.RLock()
	_, ok := c.store.Views().Get(view)
	loadDone := c.loadDone
	c.mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(roster.ErrUnknownView, "session: %s", view)
	}
	select {
	case <-loadDone:
		break
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.loadErr != nil {
		return nil, c.loadErr
	}
	v, _ := c.store.Views().Get(view)
	return v.Snapshot(), nil
}

// DeclareView registers a new filtered view, backfilled from the current store contents.
// Declaring an already existing name keeps the first predicate. Declared views outlive logouts.
func (c *Controller) DeclareView(name string, pred roster.Predicate) <-chan error {
	errCh := make(chan error, 1)
	if len(name) == 0 || pred == nil {
		errCh <- ErrInvalidView
		return errCh
	}
	c.rq.Run(func() {
		c.mutate(func() {
			v := c.store.Views().Declare(name, pred)
			level.Debug(c.logger).Log("msg", "view declared", "view", name, "members", v.Len())
		})
		errCh <- nil
	})
	return errCh
}

// Subscribe registers a consumer handler for topic.
func (c *Controller) Subscribe(topic hook.Topic, hnd hook.Handler, priority hook.Priority) *hook.Handle {
	return c.hk.AddHook(topic, hnd, priority)
}

// State returns current session state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SelfID returns current user contact identifier.
func (c *Controller) SelfID() string {
	return c.store.SelfID()
}

// SelfPresence returns current user's own presence.
func (c *Controller) SelfPresence() rostermodel.Presence {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, _ := c.store.SelfPresence()
	return p
}

// IsInvisible tells whether current user is invisible.
func (c *Controller) IsInvisible() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, invisible := c.store.SelfPresence()
	return invisible
}

// Contact returns a copy of the contact identified by contactID.
func (c *Controller) Contact(contactID string) (*rostermodel.Contact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Get(contactID)
}

// ContactCount returns the number of contacts currently stored.
func (c *Controller) ContactCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Count()
}

// ViewNames returns declared view names.
func (c *Controller) ViewNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Views().Names()
}

// WhoIsPlaying returns the contacts currently playing gameID.
func (c *Controller) WhoIsPlaying(gameID string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Games().WhoIsPlaying(gameID)
}

// WhoHasPlayed returns the contacts who stopped playing gameID during this session.
func (c *Controller) WhoHasPlayed(gameID string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Games().WhoHasPlayed(gameID)
}

// PopularUnownedGames returns the games being played by contacts, excluding owned ones,
// sorted by descending player count.
func (c *Controller) PopularUnownedGames(owned []string) []roster.GamePopularity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Games().PopularUnownedGames(owned)
}

func (c *Controller) canConnect() bool {
	switch c.state {
	case LoggedOut:
		return true
	case RosterLoading:
		// a failed load waits for an explicit connect cycle
		return c.loadErr != nil && !c.fetching
	}
	return false
}

func (c *Controller) subscribeConnection() {
	if len(c.connSubs) > 0 {
		return
	}
	c.connSubs = append(c.connSubs,
		c.tr.OnConnected(func() {
			c.rq.Run(c.onConnected)
		}),
		c.tr.OnDisconnected(func() {
			c.rq.Run(c.onDisconnected)
		}),
	)
}

func (c *Controller) releaseConnection() {
	for _, sub := range c.connSubs {
		sub.Cancel()
	}
	c.connSubs = nil
}

func (c *Controller) onConnected() {
	if c.state != Connecting || c.fetching {
		level.Debug(c.logger).Log("msg", "ignored connected push", "state", c.state)
		return
	}
	c.cancelled.Store(false)

	var gen uint64
	c.mutate(func() {
		c.generation++
		gen = c.generation
		c.fetching = true
		if c.loadClosed {
			c.loadDone = make(chan struct{})
			c.loadClosed = false
		}
		c.loadErr = nil
		c.setState(RosterLoading)
	})
	go c.fetchRoster(gen)
}

func (c *Controller) onDisconnected() {
	if c.state == LoggedOut {
		return
	}
	level.Warn(c.logger).Log("msg", "transport disconnected", "state", c.state)

	c.cancelled.Store(true)
	c.releaseConnection()
	c.teardown()
}

func (c *Controller) fetchRoster(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RosterTimeout)
	defer cancel()

	t0 := time.Now()
	entries, err := c.tr.RequestRoster(ctx)
	reportRosterFetch(err == nil, time.Since(t0))

	c.rq.Run(func() {
		c.onRosterFetched(gen, entries, err)
	})
}

func (c *Controller) onRosterFetched(gen uint64, entries []rostermodel.Entry, err error) {
	if gen != c.generation || c.state != RosterLoading {
		level.Debug(c.logger).Log("msg", "discarded stale roster fetch result")
		return
	}
	if err != nil {
		loadErr := errors.Wrap(ErrRosterLoadFailed, err.Error())
		level.Error(c.logger).Log("msg", "failed to fetch roster", "err", err)

		c.mutate(func() {
			c.fetching = false
			c.loadErr = loadErr
			c.closeLoadDone()
			c.batch.Emit(hook.On(hook.RosterLoadFailed, c.store.SelfID()), &hook.RosterInfo{Err: loadErr})
		})
		return
	}
	level.Info(c.logger).Log("msg", "roster fetched", "entries", len(entries))

	// live events must have listeners before the bulk walk starts
	c.subscribeLive(gen)
	c.insertChunk(gen, entries, 0)
}

func (c *Controller) insertChunk(gen uint64, entries []rostermodel.Entry, offset int) {
	if c.cancelled.Load() || gen != c.generation {
		level.Info(c.logger).Log("msg", "roster load cancelled", "inserted", offset, "total", len(entries))
		return
	}
	next := offset
	c.mutate(func() {
		start := time.Now()
		for next < len(entries) {
			entry := entries[next]
			next++
			if _, err := c.store.InsertEntry(entry); err != nil {
				level.Warn(c.logger).Log("msg", "dropped malformed roster entry", "address", entry.Address, "err", err)
			}
			if c.cfg.ChunkMaxEntries > 0 && next-offset >= c.cfg.ChunkMaxEntries {
				break
			}
			if time.Since(start) >= c.cfg.ChunkBudget {
				break
			}
		}
	})
	reportInsertChunk(next - offset)

	if next < len(entries) {
		c.rq.Run(func() {
			c.insertChunk(gen, entries, next)
		})
		return
	}
	c.finishLoad(gen)
}

func (c *Controller) finishLoad(gen uint64) {
	if c.cancelled.Load() || gen != c.generation {
		return
	}
	var reconciled int
	c.mutate(func() {
		c.fetching = false
		c.store.SetLoaded(true)
		reconciled = c.store.ReconcileProvisional()

		if self, invisible := c.store.SelfPresence(); self.Kind == rostermodel.KindUnavailable {
			c.store.SetSelfPresence(rostermodel.Presence{
				Availability: rostermodel.Online,
				Kind:         rostermodel.KindAvailable,
			}, invisible)
		}
		c.closeLoadDone()
		c.setState(Ready)
		c.batch.Emit(hook.On(hook.RosterLoaded, c.store.SelfID()), &hook.RosterInfo{Count: c.store.Count()})
	})
	level.Info(c.logger).Log("msg", "roster loaded", "contacts", c.store.Count(), "reconciled", reconciled)

	// others' presence only starts flowing once ours has been broadcast
	c.broadcastPresence(context.Background(), nil)
}

func (c *Controller) subscribeLive(gen uint64) {
	c.liveSubs = append(c.liveSubs,
		c.tr.OnPresenceChanged(func(ev rostermodel.PresenceEvent) {
			c.rq.Run(func() { c.onPresenceChanged(gen, ev) })
		}),
		c.tr.OnRosterChanged(func(change rostermodel.Change) {
			c.rq.Run(func() { c.onRosterChanged(gen, change) })
		}),
		c.tr.OnBlockListChanged(func(addresses []string) {
			c.rq.Run(func() { c.onBlockListChanged(gen, addresses) })
		}),
	)
}

func (c *Controller) releaseLive() {
	for _, sub := range c.liveSubs {
		sub.Cancel()
	}
	c.liveSubs = nil
}

func (c *Controller) onPresenceChanged(gen uint64, ev rostermodel.PresenceEvent) {
	if gen != c.generation {
		return
	}
	var err error
	c.mutate(func() {
		_, err = c.store.ApplyPresence(ev)
	})
	if err != nil {
		level.Warn(c.logger).Log("msg", "dropped malformed presence", "address", ev.Address, "err", err)
	}
}

func (c *Controller) onRosterChanged(gen uint64, change rostermodel.Change) {
	if gen != c.generation {
		return
	}
	var err error
	c.mutate(func() {
		_, err = c.store.ApplyRosterChange(change)
	})
	if err != nil {
		level.Warn(c.logger).Log("msg", "dropped malformed roster change", "address", change.Address, "err", err)
	}
}

func (c *Controller) teardown() {
	c.releaseLive()

	pending := c.accept
	c.mutate(func() {
		c.generation++
		c.fetching = false
		c.accept = nil
		c.blocked = make(map[string]struct{})
		c.store.Clear()
		if c.loadClosed {
			c.loadDone = make(chan struct{})
			c.loadClosed = false
		}
		c.loadErr = nil
		c.setState(LoggedOut)
	})
	if pending != nil {
		pending.resolve(ErrSessionClosed)
	}
}

// mutate runs fn holding the write lock, and flushes every notification fn emitted once the lock is released.
// It must only be called from the run queue.
func (c *Controller) mutate(fn func()) {
	c.mu.Lock()
	fn()
	c.mu.Unlock()

	c.batch.Flush(context.Background())
}

func (c *Controller) setState(st State) {
	if c.state == st {
		return
	}
	prev := c.state
	c.state = st
	reportState(st)

	level.Debug(c.logger).Log("msg", "session state changed", "from", prev, "to", st)
	c.batch.Emit(hook.On(hook.SessionStateChanged, c.store.SelfID()), &hook.SessionInfo{
		From: prev.String(),
		To:   st.String(),
	})
}

func (c *Controller) closeLoadDone() {
	if c.loadClosed {
		return
	}
	close(c.loadDone)
	c.loadClosed = true
}

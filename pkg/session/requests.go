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
	"time"

	"github.com/go-kit/log/level"
	"github.com/ortuman/rostersync/pkg/hook"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
	"github.com/ortuman/rostersync/pkg/transport"
	"github.com/pkg/errors"
)

var (
	// ErrAcceptInProgress is returned when accepting a friend request while another acceptance is pending.
	ErrAcceptInProgress = errors.New("session: friend request acceptance in progress")

	// ErrAcceptRejected is returned when the server answers an acceptance with an error.
	ErrAcceptRejected = errors.New("session: friend request acceptance rejected")

	// ErrNoPendingRequest is returned when accepting or ignoring a contact with no pending incoming request.
	ErrNoPendingRequest = errors.New("session: no pending friend request")
)

type pendingAccept struct {
	contactID string
	errCh     chan<- error
	doneCh    chan struct{}
}

func (pa *pendingAccept) resolve(err error) {
	pa.errCh <- err
	close(pa.doneCh)
}

// Accept accepts the incoming friend request sent by address.
// The returned channel is signaled once the server confirms the new friendship, or reports an error.
// Only one acceptance may be pending at a time.
func (c *Controller) Accept(ctx context.Context, address string) <-chan error {
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		if c.accept != nil {
			errCh <- ErrAcceptInProgress
			return
		}
		ct, err := c.pendingIncoming(address)
		if err != nil {
			errCh <- err
			return
		}
		if !c.tr.IsConnected() {
			errCh <- ErrNotConnected
			return
		}
		pa := &pendingAccept{contactID: ct.ID, errCh: errCh, doneCh: make(chan struct{})}
		c.mutate(func() {
			c.accept = pa
		})
		c.send(ctx, transport.AcceptFriendRequest, ct.ID, func(err error) {
			if err == nil {
				return
			}
			c.rq.Run(func() {
				c.resolvePending(pa, errors.Wrap(err, "session: failed to send acceptance"))
			})
		})
		go c.watchAccept(ctx, pa)
	})
	return errCh
}

// Ignore rejects the incoming friend request sent by address. The contact leaves the incoming view right away.
func (c *Controller) Ignore(ctx context.Context, address string) <-chan error {
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		ct, err := c.pendingIncoming(address)
		if err != nil {
			errCh <- err
			return
		}
		if !c.tr.IsConnected() {
			errCh <- ErrNotConnected
			return
		}
		c.mutate(func() {
			c.store.Upsert(ct.ID, rostermodel.NewPatch().WithPresence(rostermodel.UnavailablePresence()))
		})
		c.send(ctx, transport.RejectFriendRequest, ct.ID, func(err error) {
			errCh <- err
		})
	})
	return errCh
}

// Command issues a fire-and-forget friendship command. Commands issued while disconnected are dropped.
func (c *Controller) Command(ctx context.Context, cmd transport.Command, address string) <-chan error {
	errCh := make(chan error, 1)
	if _, err := rostermodel.ContactID(address); err != nil {
		errCh <- errors.Wrap(err, "session: invalid command address")
		return errCh
	}
	if !c.tr.IsConnected() {
		level.Warn(c.logger).Log("msg", "dropped command while disconnected", "command", cmd, "address", address)
		reportCommand(cmd.String(), "dropped")
		errCh <- nil
		return errCh
	}
	c.send(ctx, cmd, address, func(err error) {
		errCh <- err
	})
	return errCh
}

// SetPresence updates current user presence and broadcasts it.
// The broadcast is silently skipped while disconnected.
func (c *Controller) SetPresence(ctx context.Context, presence rostermodel.Presence) <-chan error {
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		c.mutate(func() {
			_, invisible := c.store.SelfPresence()
			c.store.SetSelfPresence(presence, invisible)
		})
		c.broadcastPresence(ctx, errCh)
	})
	return errCh
}

// SetInvisible toggles current user invisibility and broadcasts the resulting presence.
func (c *Controller) SetInvisible(ctx context.Context, invisible bool) <-chan error {
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		c.mutate(func() {
			p, _ := c.store.SelfPresence()
			c.store.SetSelfPresence(p, invisible)
		})
		c.broadcastPresence(ctx, errCh)
	})
	return errCh
}

// IsBlocked tells whether address is in current user block list.
func (c *Controller) IsBlocked(address string) bool {
	contactID, err := rostermodel.ContactID(address)
	if err != nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.blocked[contactID]
	return ok
}

// BlockList returns the blocked contact identifiers, sorted.
func (c *Controller) BlockList() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedIDs(c.blocked)
}

func (c *Controller) pendingIncoming(address string) (*rostermodel.Contact, error) {
	contactID, err := rostermodel.ContactID(address)
	if err != nil {
		return nil, errors.Wrap(err, "session: invalid address")
	}
	ct, ok := c.store.Get(contactID)
	if !ok || ct.State() != rostermodel.PendingIncoming {
		return nil, ErrNoPendingRequest
	}
	return ct, nil
}

func (c *Controller) onAcceptanceConfirmed(_ context.Context, execCtx *hook.ExecutionContext) error {
	if execCtx.Sender != c {
		return nil
	}
	c.resolveAccept(execCtx.Topic.Key, nil)
	return nil
}

func (c *Controller) onAcceptanceFailed(_ context.Context, execCtx *hook.ExecutionContext) error {
	if execCtx.Sender != c {
		return nil
	}
	c.resolveAccept(execCtx.Topic.Key, ErrAcceptRejected)
	return nil
}

func (c *Controller) resolveAccept(contactID string, err error) {
	c.mu.RLock()
	pending := c.accept
	c.mu.RUnlock()

	if pending == nil || pending.contactID != contactID {
		return
	}
	c.resolvePending(pending, err)
}

// resolvePending clears the acceptance guard, provided pa is still the pending acceptance.
func (c *Controller) resolvePending(pa *pendingAccept, err error) {
	c.mu.Lock()
	if c.accept != pa {
		c.mu.Unlock()
		return
	}
	c.accept = nil
	c.mu.Unlock()

	pa.resolve(err)
}

// watchAccept gives up on an acceptance whose confirmation does not arrive in time.
func (c *Controller) watchAccept(ctx context.Context, pa *pendingAccept) {
	var timeoutCh <-chan time.Time
	if c.cfg.AcceptTimeout > 0 {
		tm := time.NewTimer(c.cfg.AcceptTimeout)
		defer tm.Stop()
		timeoutCh = tm.C
	}
	var err error
	select {
	case <-pa.doneCh:
		return
	case <-ctx.Done():
		err = ctx.Err()
	case <-timeoutCh:
		err = context.DeadlineExceeded
	}
	c.rq.Run(func() {
		level.Warn(c.logger).Log("msg", "friend request acceptance not confirmed", "contact_id", pa.contactID, "err", err)
		c.resolvePending(pa, errors.Wrap(err, "session: acceptance not confirmed"))
	})
}

func (c *Controller) onBlockListChanged(gen uint64, addresses []string) {
	if gen != c.generation {
		return
	}
	blocked := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		contactID, err := rostermodel.ContactID(addr)
		if err != nil {
			level.Warn(c.logger).Log("msg", "dropped malformed block list item", "address", addr, "err", err)
			continue
		}
		blocked[contactID] = struct{}{}
	}
	c.mutate(func() {
		c.blocked = blocked
		c.batch.Emit(hook.On(hook.BlockListChanged, c.store.SelfID()), &hook.BlockListInfo{
			ContactIDs: sortedIDs(blocked),
		})
	})
}

// send issues cmd once the matching shaper allows it. done is invoked from a background goroutine.
func (c *Controller) send(ctx context.Context, cmd transport.Command, address string, done func(error)) {
	contactID, _ := rostermodel.ContactID(address)
	lim := c.lims.For(contactID)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, c.cfg.CommandTimeout)
		defer cancel()

		if err := lim.Wait(ctx); err != nil {
			reportCommand(cmd.String(), "throttled")
			done(errors.Wrap(err, "session: command throttled"))
			return
		}
		err := c.tr.Send(ctx, cmd, address)
		switch {
		case errors.Is(err, transport.ErrNotConnected):
			level.Warn(c.logger).Log("msg", "dropped command while disconnected", "command", cmd, "address", address)
			reportCommand(cmd.String(), "dropped")
			err = nil
		case err != nil:
			level.Warn(c.logger).Log("msg", "failed to send command", "command", cmd, "address", address, "err", err)
			reportCommand(cmd.String(), "failure")
		default:
			level.Debug(c.logger).Log("msg", "command sent", "command", cmd, "address", address)
			reportCommand(cmd.String(), "success")
		}
		done(err)
	}()
}

// broadcastPresence sends current user presence. When errCh is not nil it receives the outcome.
func (c *Controller) broadcastPresence(ctx context.Context, errCh chan<- error) {
	notify := func(err error) {
		if errCh != nil {
			errCh <- err
		}
	}
	if !c.tr.IsConnected() {
		level.Debug(c.logger).Log("msg", "skipped presence broadcast while disconnected")
		notify(nil)
		return
	}
	p, invisible := c.store.SelfPresence()
	go func() {
		err := c.tr.UpdatePresence(ctx, p, invisible)
		if err != nil && !errors.Is(err, transport.ErrNotConnected) {
			level.Warn(c.logger).Log("msg", "failed to broadcast presence", "err", err)
			notify(err)
			return
		}
		notify(nil)
	}()
}

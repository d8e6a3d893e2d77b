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
	"io"
	"sync"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/pkg/errors"
)

const loopbackBufferSize = 256

// ErrStreamClosed is returned when operating on a closed stream.
var ErrStreamClosed = errors.New("xmpp: stream closed")

// Stream represents an established XMPP element stream.
type Stream interface {
	// Send writes an element to the stream.
	Send(ctx context.Context, elem stravaganza.Element) error

	// Receive blocks until an element is read. It returns io.EOF once the stream is closed.
	Receive(ctx context.Context) (stravaganza.Element, error)

	// Close closes the stream.
	Close() error
}

// Dialer opens a new element stream.
type Dialer interface {
	Dial(ctx context.Context) (Stream, error)
}

// Loopback is an in-memory Dialer. Every dialed stream is paired with a server side
// stream delivered through Accept.
type Loopback struct {
	acceptCh chan Stream
	closeCh  chan struct{}
	once     sync.Once
}

// NewLoopback returns a new initialized Loopback dialer.
func NewLoopback() *Loopback {
	return &Loopback{
		acceptCh: make(chan Stream),
		closeCh:  make(chan struct{}),
	}
}

// Dial satisfies Dialer interface.
func (l *Loopback) Dial(ctx context.Context) (Stream, error) {
	client, server := newLoopbackPair()
	select {
	case l.acceptCh <- server:
		return client, nil
	case <-l.closeCh:
		return nil, ErrStreamClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Accept waits for the next dialed stream and returns its server side.
func (l *Loopback) Accept(ctx context.Context) (Stream, error) {
	select {
	case srv := <-l.acceptCh:
		return srv, nil
	case <-l.closeCh:
		return nil, ErrStreamClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting new streams.
func (l *Loopback) Close() error {
	l.once.Do(func() { close(l.closeCh) })
	return nil
}

type loopbackConn struct {
	done chan struct{}
	once sync.Once
}

func (c *loopbackConn) close() {
	c.once.Do(func() { close(c.done) })
}

type loopbackStream struct {
	conn *loopbackConn
	in   chan stravaganza.Element
	out  chan stravaganza.Element
}

func newLoopbackPair() (*loopbackStream, *loopbackStream) {
	conn := &loopbackConn{done: make(chan struct{})}
	c2s := make(chan stravaganza.Element, loopbackBufferSize)
	s2c := make(chan stravaganza.Element, loopbackBufferSize)
	return &loopbackStream{conn: conn, in: s2c, out: c2s},
		&loopbackStream{conn: conn, in: c2s, out: s2c}
}

func (s *loopbackStream) Send(ctx context.Context, elem stravaganza.Element) error {
	select {
	case <-s.conn.done:
		return ErrStreamClosed
	default:
	}
	select {
	case s.out <- elem:
		return nil
	case <-s.conn.done:
		return ErrStreamClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *loopbackStream) Receive(ctx context.Context) (stravaganza.Element, error) {
	select {
	case elem := <-s.in:
		return elem, nil
	case <-s.conn.done:
		// drain whatever was written before closing
		select {
		case elem := <-s.in:
			return elem, nil
		default:
			return nil, io.EOF
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *loopbackStream) Close() error {
	s.conn.close()
	return nil
}

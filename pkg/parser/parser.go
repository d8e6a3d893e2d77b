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

package xmppparser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/pkg/errors"
)

// ErrTooLargeStanza is returned by Next when an element exceeds the configured maximum size.
var ErrTooLargeStanza = errors.New("xmppparser: too large stanza")

// Parser reads a sequence of top-level XML elements.
type Parser struct {
	dec           *xml.Decoder
	stack         []*stravaganza.Builder
	startOffset   int64
	maxStanzaSize int64
}

// New creates a new Parser reading from r. A non positive maxStanzaSize disables the size check.
func New(r io.Reader, maxStanzaSize int) *Parser {
	return &Parser{
		dec:           xml.NewDecoder(r),
		maxStanzaSize: int64(maxStanzaSize),
	}
}

// Next returns the next top-level element. It returns io.EOF once the input is exhausted.
func (p *Parser) Next() (stravaganza.Element, error) {
	for {
		t, err := p.dec.RawToken()
		if err != nil {
			if errors.Is(err, io.EOF) && len(p.stack) > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if len(p.stack) > 0 && p.maxStanzaSize > 0 && p.dec.InputOffset()-p.startOffset > p.maxStanzaSize {
			return nil, ErrTooLargeStanza
		}
		switch tk := t.(type) {
		case xml.StartElement:
			p.push(tk)

		case xml.CharData:
			if len(p.stack) > 0 {
				top := p.stack[len(p.stack)-1]
				top.WithText(string(tk))
			}

		case xml.EndElement:
			elem, err := p.pop(xmlName(tk.Name.Space, tk.Name.Local))
			if err != nil {
				return nil, err
			}
			if elem != nil {
				return elem, nil
			}
		}
	}
}

func (p *Parser) push(t xml.StartElement) {
	if len(p.stack) == 0 {
		p.startOffset = p.dec.InputOffset()
	}
	var attrs []stravaganza.Attribute
	for _, a := range t.Attr {
		attrs = append(attrs, stravaganza.Attribute{Label: xmlName(a.Name.Space, a.Name.Local), Value: a.Value})
	}
	p.stack = append(p.stack, stravaganza.NewBuilder(xmlName(t.Name.Space, t.Name.Local)).WithAttributes(attrs...))
}

// pop closes the innermost open element. It returns the element once a top-level one is completed.
func (p *Parser) pop(name string) (stravaganza.Element, error) {
	if len(p.stack) == 0 {
		return nil, errUnexpectedEnd(name)
	}
	elem := p.stack[len(p.stack)-1].Build()
	if elem.Name() != name {
		return nil, errUnexpectedEnd(name)
	}
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 {
		return elem, nil
	}
	p.stack[len(p.stack)-1].WithChild(elem)
	return nil, nil
}

// ParseString returns every top-level element contained in s.
func ParseString(s string, maxStanzaSize int) ([]stravaganza.Element, error) {
	p := New(strings.NewReader(s), maxStanzaSize)

	var elems []stravaganza.Element
	for {
		elem, err := p.Next()
		switch {
		case err == nil:
			elems = append(elems, elem)
		case errors.Is(err, io.EOF):
			return elems, nil
		default:
			return nil, err
		}
	}
}

func xmlName(space, local string) string {
	if len(space) > 0 {
		return fmt.Sprintf("%s:%s", space, local)
	}
	return local
}

func errUnexpectedEnd(name string) error {
	return fmt.Errorf("xmppparser: unexpected end element </%s>", name)
}

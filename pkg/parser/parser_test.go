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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParser_TooLargeStanza(t *testing.T) {
	// given
	p := New(strings.NewReader(`<a/><status>too long for the limit</status>`), 8)

	// when
	a, err0 := p.Next()
	status, err1 := p.Next()

	// then
	require.Nil(t, err0)
	require.Equal(t, "<a/>", a.String())

	require.Nil(t, status)
	require.Equal(t, ErrTooLargeStanza, err1)
}

func TestParser_SeveralElements(t *testing.T) {
	// given
	p := New(strings.NewReader(`<?xml version="1.0" encoding="UTF-8"?><a/> <b/>
<c/>`), 1024)

	// when
	a, err1 := p.Next()
	b, err2 := p.Next()
	c, err3 := p.Next()
	_, err4 := p.Next()

	// then
	require.Nil(t, err1)
	require.Equal(t, "a", a.Name())
	require.Nil(t, err2)
	require.Equal(t, "b", b.Name())
	require.Nil(t, err3)
	require.Equal(t, "c", c.Name())
	require.Equal(t, io.EOF, err4)
}

func TestParser_ChildElements(t *testing.T) {
	// when
	elems, err := ParseString(`<presence from="noelia@jackal.im/balcony"><show>dnd</show><game xmlns="urn:rostersync:activity" id="g1"/></presence>`, 0)

	// then
	require.Nil(t, err)
	require.Len(t, elems, 1)

	pr := elems[0]
	require.Equal(t, "noelia@jackal.im/balcony", pr.Attribute("from"))
	require.Equal(t, "dnd", pr.Child("show").Text())
	require.NotNil(t, pr.ChildNamespace("game", "urn:rostersync:activity"))
	require.Len(t, pr.AllChildren(), 2)
}

func TestParser_UnexpectedEnd(t *testing.T) {
	// when
	_, err1 := ParseString(`<presence></iq>`, 0)
	_, err2 := ParseString(`<presence><show>`, 0)

	// then
	require.EqualError(t, err1, "xmppparser: unexpected end element </iq>")
	require.Equal(t, io.ErrUnexpectedEOF, err2)
}

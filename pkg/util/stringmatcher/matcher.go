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

package stringmatcher

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Matcher tells whether a contact address belongs to a given set.
type Matcher interface {
	Matches(str string) bool
}

type anyMatcher struct{}

func (anyMatcher) Matches(_ string) bool { return true }

// Any matches every string.
var Any Matcher = anyMatcher{}

// StringMatcher matches addresses contained in a fixed set. Entries starting with '@'
// match every address of that domain. Comparison is case insensitive and ignores the
// resource part of full addresses.
type StringMatcher struct {
	set     map[string]struct{}
	domains map[string]struct{}
}

// NewStringMatcher returns a new matcher over strs.
func NewStringMatcher(strs []string) *StringMatcher {
	m := &StringMatcher{
		set:     make(map[string]struct{}, len(strs)),
		domains: make(map[string]struct{}),
	}
	for _, s := range strs {
		s = strings.ToLower(s)
		if strings.HasPrefix(s, "@") {
			m.domains[s[1:]] = struct{}{}
			continue
		}
		m.set[s] = struct{}{}
	}
	return m
}

// Matches returns true if str is contained in the matcher set.
func (m *StringMatcher) Matches(str string) bool {
	addr := bareAddress(str)
	if _, ok := m.set[addr]; ok {
		return true
	}
	if len(m.domains) == 0 {
		return false
	}
	domain := addr
	if i := strings.IndexByte(addr, '@'); i >= 0 {
		domain = addr[i+1:]
	}
	_, ok := m.domains[domain]
	return ok
}

// RegexMatcher matches addresses against a regular expression anchored to the whole bare address.
type RegexMatcher struct {
	re *regexp.Regexp
}

// NewRegExMatcher returns a new initialized RegexMatcher.
func NewRegExMatcher(expr string) (*RegexMatcher, error) {
	re, err := regexp.Compile("(?i)^(?:" + expr + ")$")
	if err != nil {
		return nil, errors.Wrapf(err, "stringmatcher: invalid expression %q", expr)
	}
	return &RegexMatcher{re: re}, nil
}

// Matches returns true if the bare form of str matches the expression.
func (m *RegexMatcher) Matches(str string) bool {
	return m.re.MatchString(bareAddress(str))
}

func bareAddress(str string) string {
	if i := strings.IndexByte(str, '/'); i >= 0 {
		str = str[:i]
	}
	return strings.ToLower(str)
}

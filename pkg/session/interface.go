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
	"github.com/ortuman/rostersync/pkg/profile"
	"github.com/ortuman/rostersync/pkg/transport"
)

//go:generate moq -out transport.mock_test.go . rosterTransport:transportMock
type rosterTransport interface {
	transport.Transport
}

//go:generate moq -out resolver.mock_test.go . profileResolver:resolverMock
type profileResolver interface {
	profile.Resolver
}

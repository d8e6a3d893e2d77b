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

package log

import (
	"io"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

const (
	debugLevel   = "debug"
	infoLevel    = "info"
	warningLevel = "warn"
	errorLevel   = "error"
	offLevel     = "off"
)

const (
	logfmtFormat = "logfmt"
	jsonFormat   = "json"
)

// ErrInvalidConfig is returned by Validate when a logger option is not recognized.
var ErrInvalidConfig = errors.New("log: invalid config")

// Config contains logger configuration parameters.
type Config struct {
	Level  string `fig:"level" default:"info"`
	Format string `fig:"format" default:"logfmt"`
}

// Validate checks that both level and format are known values.
func (c Config) Validate() error {
	switch c.Level {
	case "", debugLevel, infoLevel, warningLevel, errorLevel, offLevel:
		break
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown level %q", c.Level)
	}
	switch c.Format {
	case "", logfmtFormat, jsonFormat:
		return nil
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown format %q", c.Format)
	}
}

// NewDefaultLogger creates a new go-kit logger writing to stderr with the configured level and format.
func NewDefaultLogger(lv, format string) kitlog.Logger {
	return NewLogger(os.Stderr, lv, format)
}

// NewLogger creates a new go-kit logger writing to w.
func NewLogger(w io.Writer, lv, format string) kitlog.Logger {
	var logger kitlog.Logger
	var allow level.Option

	sw := kitlog.NewSyncWriter(w)
	if format == jsonFormat {
		logger = kitlog.NewJSONLogger(sw)
	} else {
		logger = kitlog.NewLogfmtLogger(sw)
	}
	switch lv {
	case debugLevel:
		allow = level.AllowDebug()
	case infoLevel:
		allow = level.AllowInfo()
	case warningLevel:
		allow = level.AllowWarn()
	case errorLevel:
		allow = level.AllowError()
	case offLevel:
		allow = level.AllowNone()
	default:
		allow = level.AllowAll()
	}
	return kitlog.With(level.NewFilter(logger, allow), "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)
}

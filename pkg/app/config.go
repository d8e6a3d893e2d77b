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

package app

import (
	"path/filepath"

	"github.com/kkyr/fig"
	"github.com/pkg/errors"

	"github.com/ortuman/rostersync/pkg/admin"
	"github.com/ortuman/rostersync/pkg/log"
	"github.com/ortuman/rostersync/pkg/profile"
	"github.com/ortuman/rostersync/pkg/session"
	"github.com/ortuman/rostersync/pkg/shaper"
	"github.com/ortuman/rostersync/pkg/transport/xmpp"
)

// ScenarioConfig contains the simulated server script location.
type ScenarioConfig struct {
	File string `fig:"file" validate:"required"`
}

// Config contains the whole simulator configuration.
type Config struct {
	Logger log.Config `fig:"logger"`

	HTTPPort int `fig:"http_port" default:"6060"`

	Admin     admin.Config    `fig:"admin"`
	Session   session.Config  `fig:"session"`
	Shapers   []shaper.Config `fig:"shapers"`
	Transport xmpp.Config     `fig:"transport"`
	Profile   profile.Config  `fig:"profile"`
	Scenario  ScenarioConfig  `fig:"scenario"`
}

func loadConfig(configFile string) (*Config, error) {
	var cfg Config
	file := filepath.Base(configFile)
	dir := filepath.Dir(configFile)

	err := fig.Load(&cfg, fig.File(file), fig.Dirs(dir))
	if err != nil {
		return nil, err
	}
	if err := cfg.Logger.Validate(); err != nil {
		return nil, err
	}
	// scenario file is resolved relative to the config file directory
	if !filepath.IsAbs(cfg.Scenario.File) {
		cfg.Scenario.File = filepath.Join(dir, cfg.Scenario.File)
	}
	if cfg.Profile.CacheSize <= 0 {
		return nil, errors.Errorf("app: invalid profile cache size %d", cfg.Profile.CacheSize)
	}
	return &cfg, nil
}

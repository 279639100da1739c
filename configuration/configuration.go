// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package configuration

import (
	"github.com/spf13/viper"

	"github.com/trabucador/iroha/vanilla/throw"
)

// Configuration is the top-level, unmarshal target for irohad's config
// file, following the flat per-subsystem struct layout the teacher uses
// (configuration.Ledger, configuration.TestWalletAPI, ...).
type Configuration struct {
	MST     MST
	Log     Log
	Gossip  Gossip
	Metrics Metrics
}

func NewConfiguration() Configuration {
	return Configuration{
		MST:     NewMST(),
		Log:     NewLog(),
		Gossip:  NewGossip(),
		Metrics: NewMetrics(),
	}
}

// Load reads configPath (if non-empty) over the defaults returned by
// NewConfiguration, following cmd/testpulsard's vp.SetConfigFile /
// vp.ReadInConfig / vp.Unmarshal sequence. A missing or malformed file is
// not fatal — the caller decides whether to proceed on defaults, matching
// the teacher's "warn and continue" behavior.
func Load(configPath string) (Configuration, error) {
	cfg := NewConfiguration()

	vp := viper.New()
	if configPath != "" {
		vp.SetConfigFile(configPath)
		if err := vp.ReadInConfig(); err != nil {
			return cfg, throw.W(err, "failed to load configuration from file")
		}
	}
	if err := vp.Unmarshal(&cfg); err != nil {
		return cfg, throw.W(err, "failed to unmarshal configuration")
	}
	return cfg, nil
}

package main

import (
	"sync"

	"github.com/urfave/cli"

	"github.com/foliomarket/folio-go/config"
	"github.com/foliomarket/folio-go/contract"
	"github.com/foliomarket/folio-go/logctx"
	"github.com/foliomarket/folio-go/runtime"
	"github.com/foliomarket/folio-go/state"
)

var configPath = "folio.yaml"
var identityOverride string

var runtimeMtx sync.Mutex
var runtimeCached *runtime.Runtime
var configCached *config.Node

func init() {
	folioFlags = append(folioFlags, state.Flags...)
	folioFlags = append(
		folioFlags,
		cli.StringFlag{
			Name:        "config",
			Usage:       "the path to the node config",
			EnvVar:      "FOLIO_CONFIG",
			Value:       configPath,
			Destination: &configPath,
		},
		cli.StringFlag{
			Name:        "identity",
			Usage:       "the party identity to invoke as, overrides the config",
			Destination: &identityOverride,
		},
	)
}

// GetConfig loads / returns the node config.
func GetConfig() (*config.Node, error) {
	runtimeMtx.Lock()
	defer runtimeMtx.Unlock()

	return getConfigLocked()
}

func getConfigLocked() (*config.Node, error) {
	if configCached != nil {
		return configCached, nil
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if identityOverride != "" {
		conf.Identity = identityOverride
	}

	configCached = conf
	return configCached, nil
}

// GetRuntime builds / returns the ledger runtime.
func GetRuntime() (*runtime.Runtime, error) {
	runtimeMtx.Lock()
	defer runtimeMtx.Unlock()

	if runtimeCached != nil {
		return runtimeCached, nil
	}

	if _, err := getConfigLocked(); err != nil {
		return nil, err
	}

	le := logctx.GetLogEntry(rootContext)
	st, err := state.BuildCliStore(le)
	if err != nil {
		return nil, err
	}

	runtimeCached = runtime.NewRuntime(st, contract.NewTable())
	return runtimeCached, nil
}

// GetIdentity returns the configured caller identity.
func GetIdentity() (string, error) {
	conf, err := GetConfig()
	if err != nil {
		return "", err
	}
	return conf.Identity, nil
}

// Package config loads the node configuration file.
package config

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Node is the folio node configuration.
type Node struct {
	// Identity is the party identifier used as the invocation caller.
	Identity string `yaml:"identity"`
	// StoreType selects the state store backend, badgerdb or inmem.
	StoreType string `yaml:"store_type"`
	// StorePath is where the badgerdb backend keeps its data.
	StorePath string `yaml:"store_path"`
	// Wishlist seeds the wishlist watcher with document IDs.
	Wishlist []string `yaml:"wishlist"`
}

// Default returns the configuration defaults.
func Default() *Node {
	return &Node{
		Identity:  "Org1MSP",
		StoreType: "badgerdb",
		StorePath: "./data",
	}
}

// Load reads a config file, applying defaults for unset fields and the
// FOLIO_IDENTITY environment override.
func Load(path string) (*Node, error) {
	conf := Default()

	dat, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "read config")
		}
	} else if err := yaml.Unmarshal(dat, conf); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if ident := os.Getenv("FOLIO_IDENTITY"); ident != "" {
		conf.Identity = ident
	}
	if conf.StoreType == "" {
		conf.StoreType = "badgerdb"
	}
	if conf.StorePath == "" {
		conf.StorePath = "./data"
	}
	return conf, nil
}

// Save writes the configuration to a file.
func (n *Node) Save(path string) error {
	dat, err := yaml.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return os.WriteFile(path, dat, 0644)
}

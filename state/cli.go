package state

import (
	"os"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// Flags are the flags we append for setting state store arguments.
var Flags []cli.Flag

var cliStoreArgs = struct {
	// StoreType is the store type to use.
	// badgerdb and inmem are the supported values.
	StoreType string
	// StorePath is the path to store data in.
	StorePath string
}{
	StoreType: "badgerdb",
	StorePath: "./data",
}

func init() {
	Flags = append(
		Flags,
		cli.StringFlag{
			Name:        "store-type",
			Usage:       "The state store type to use, badgerdb or inmem.",
			EnvVar:      "STORE_TYPE",
			Value:       cliStoreArgs.StoreType,
			Destination: &cliStoreArgs.StoreType,
		},
		cli.StringFlag{
			Name:        "store-path",
			Usage:       "The path to store ledger state in.",
			EnvVar:      "STORE_PATH",
			Value:       cliStoreArgs.StorePath,
			Destination: &cliStoreArgs.StorePath,
		},
	)
}

// BuildCliStore builds the state store from CLI args.
func BuildCliStore(le *logrus.Entry) (Store, error) {
	switch cliStoreArgs.StoreType {
	case "inmem":
		return NewInmemStore(), nil
	case "badgerdb":
	default:
		return nil, errors.Errorf("unsupported store type: %s", cliStoreArgs.StoreType)
	}

	if err := os.MkdirAll(cliStoreArgs.StorePath, 0755); err != nil {
		return nil, err
	}

	badgerOpts := badger.DefaultOptions(cliStoreArgs.StorePath)
	badgerOpts.Logger = le
	bdb, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return NewBadgerStore(bdb), nil
}

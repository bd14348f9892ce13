// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/configuration"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/genesis"
	"github.com/bitmark-inc/kittiesd/publish"
	"github.com/bitmark-inc/kittiesd/rpc"
	"github.com/bitmark-inc/kittiesd/rpc/listeners"
	"github.com/bitmark-inc/kittiesd/storage"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPublicKeyFile   = "publish.public"
	defaultPrivateKeyFile  = "publish.private"
	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "kitties"

	defaultLogDirectory = "log"
	defaultLogFile      = "kittiesd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients         = 10
	defaultStake              = 100
	defaultExistentialDeposit = 1
	defaultSignatureWindow    = 300 // seconds
)

// DatabaseType - location and backend of the ledger database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
	Backend   string `gluamapper:"backend" json:"backend"`
}

// RateLimitType - per service token buckets
type RateLimitType struct {
	Kitties rpc.RateConfiguration `gluamapper:"kitties" json:"kitties"`
	Node    rpc.RateConfiguration `gluamapper:"node" json:"node"`
}

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Stake              uint64             `gluamapper:"stake" json:"stake"`
	ExistentialDeposit uint64             `gluamapper:"existential_deposit" json:"existential_deposit"`
	SignatureWindow    int                `gluamapper:"signature_window" json:"signature_window"`
	Genesis            genesis.Allocation `gluamapper:"genesis" json:"genesis"`

	ClientRPC  listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC   listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	RateLimit  RateLimitType                `gluamapper:"rate_limit" json:"rate_limit"`
	Publishing publish.Configuration        `gluamapper:"publishing" json:"publishing"`
	Logging    logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
			Backend:   storage.BackendLevelDB,
		},

		Stake:              defaultStake,
		ExistentialDeposit: defaultExistentialDeposit,
		SignatureWindow:    defaultSignatureWindow,

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share config with normal RPC
		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Publishing: publish.Configuration{
			PublicKey:  defaultPublicKeyFile,
			PrivateKey: defaultPrivateKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	options.DataDirectory, err = configuration.DataDirectory(configurationFileName, options.DataDirectory)
	if nil != err {
		return nil, err
	}

	if options.Stake < options.ExistentialDeposit {
		return nil, fault.ErrStakeBelowDeposit
	}
	if options.SignatureWindow <= 0 {
		return nil, fault.ErrInvalidTimestamp
	}

	switch options.Database.Backend {
	case storage.BackendLevelDB, storage.BackendBolt:
	default:
		return nil, fault.ErrInvalidBackend
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = configuration.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// must be plain names, the database gets its directory prefix
	options.Database.Name, err = configuration.PlainName(options.Database.Directory, options.Database.Name)
	if nil != err {
		return nil, err
	}
	if _, err := configuration.PlainName(options.Logging.Directory, options.Logging.File); nil != err {
		return nil, err
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

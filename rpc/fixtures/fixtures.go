// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for rpc tests
package fixtures

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/storage"
)

const (
	testingDirName = "testing"
	LogCategory    = "testing"
)

// SetupTestLogger - log to a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	_ = logger.Initialise(logging)
}

// TeardownTestLogger - remove the scratch directory
func TeardownTestLogger() {
	removeFiles()
}

// SetupTestDatabase - logger and a fresh LevelDB
func SetupTestDatabase() error {
	SetupTestLogger()
	return storage.Initialise(filepath.Join(testingDirName, "rpc"), storage.BackendLevelDB, storage.ReadWrite)
}

// TeardownTestDatabase - close the database and remove all files
func TeardownTestDatabase() {
	storage.Finalise()
	removeFiles()
}

// Key - deterministic private key number n
func Key(n byte) *account.PrivateKey {
	seed := make([]byte, account.SeedSize)
	seed[0] = n
	key, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		panic(err)
	}
	return key
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

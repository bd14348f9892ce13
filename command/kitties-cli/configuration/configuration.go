// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - identities and connections of kitties-cli
package configuration

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/fault"
)

// Configuration - configuration file data format
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	Connections     []string            `json:"connections"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - mix of plain and encrypted data
type Identity struct {
	Description string `json:"description"`
	Account     string `json:"account"`
	Data        string `json:"data"`
	Salt        string `json:"salt"`
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {
	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(filename)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	options := &Configuration{}
	if err := json.NewDecoder(f).Decode(options); nil != err {
		return nil, err
	}
	if nil == options.Identities {
		options.Identities = make(map[string]Identity)
	}
	return options, nil
}

// Save - write the configuration keeping the previous one as a backup
func Save(filename string, config *Configuration) error {
	tempFile := filename + ".new"
	previousFile := filename + ".bk"

	data, err := json.MarshalIndent(config, "", "  ")
	if nil != err {
		return err
	}
	if err := os.WriteFile(tempFile, append(data, '\n'), 0600); nil != err {
		return err
	}

	if err := os.Remove(previousFile); nil != err && !os.IsNotExist(err) {
		return err
	}
	if err := os.Rename(filename, previousFile); nil != err && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tempFile, filename)
}

// Names - sorted identity names
func (config *Configuration) Names() []string {
	names := make([]string, 0, len(config.Identities))
	for name := range config.Identities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.ErrNotFoundIdentity
	}
	return &id, nil
}

// Account - identity name or base58 account string to an account
func (config *Configuration) Account(name string) (*account.Account, error) {
	id, err := config.Identity(name)
	if nil == err {
		return account.FromBase58(id.Account)
	}
	if a, aerr := account.FromBase58(name); nil == aerr {
		return a, nil
	}
	return nil, err
}

// Private - find identity and decrypt its seed
func (config *Configuration) Private(password string, name string) (*Private, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}
	return decryptIdentity(password, id)
}

// AddIdentity - store an identity with its seed encrypted by password
func (config *Configuration) AddIdentity(name string, description string, seed []byte, password string) error {
	if _, ok := config.Identities[name]; ok {
		return fault.ErrIdentityExists
	}

	private, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		return err
	}

	salt, secretKey, err := hashPassword(password)
	if nil != err {
		return err
	}

	encrypted, err := encryptData(hex.EncodeToString(seed), secretKey)
	if nil != err {
		return err
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     private.Account().String(),
		Data:        encrypted,
		Salt:        salt.String(),
	}
	return nil
}

// AddReceiveOnlyIdentity - store public-only identity
func (config *Configuration) AddReceiveOnlyIdentity(name string, description string, acc string) error {
	if _, ok := config.Identities[name]; ok {
		return fault.ErrIdentityExists
	}

	if _, err := account.FromBase58(acc); nil != err {
		return err
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     acc,
	}
	return nil
}

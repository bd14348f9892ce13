// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/command/kitties-cli/configuration"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/kitty"
)

var (
	ErrRequiredConnect     = fault.InvalidError("connect is required")
	ErrRequiredDescription = fault.InvalidError("description is required")
	ErrRequiredKitty       = fault.InvalidError("kitty id is required")
	ErrRequiredPrice       = fault.InvalidError("price is required")
	ErrRequiredReceiver    = fault.InvalidError("receiver is required")
	ErrPriceOrWithdraw     = fault.InvalidError("select one of price or withdraw")
	ErrNoConnections       = fault.NotFoundError("no connections configured")
)

// true if path is a directory, error if it does not exist
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return s.IsDir(), nil
}

// identity is required, but is not checked against the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", fault.ErrRequiredIdentity
	}
	return name, nil
}

// connect is required.
func checkConnect(connect string) (string, error) {
	connect = strings.TrimSpace(connect)
	if "" == connect {
		return "", ErrRequiredConnect
	}
	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}
	return description, nil
}

// blank phrase generates a fresh one
func checkMnemonic(phrase string) (string, []byte, error) {
	if "" == phrase {
		return configuration.NewMnemonic()
	}
	seed, err := configuration.SeedFromMnemonic(phrase)
	return phrase, seed, err
}

// kitty id is required
func checkKitty(id string) (kitty.Index, error) {
	if "" == id {
		return 0, ErrRequiredKitty
	}
	n, err := strconv.ParseUint(id, 10, 32)
	if nil != err {
		return 0, fault.ErrInvalidKittyId
	}
	return kitty.Index(n), nil
}

// price is required
func checkPrice(price string) (uint64, error) {
	if "" == price {
		return 0, ErrRequiredPrice
	}
	return strconv.ParseUint(price, 10, 64)
}

func identityName(c *cli.Context, config *configuration.Configuration) string {
	name := c.GlobalString("identity")
	if "" == name {
		name = config.DefaultIdentity
	}
	return name
}

// account for a name or account string, blank means the global identity
func checkAccount(name string, c *cli.Context, config *configuration.Configuration) (*account.Account, error) {
	if "" == name {
		name = identityName(c, config)
	}
	return config.Account(name)
}

// unlock the private key of the global identity
func checkOwnerWithPasswordPrompt(c *cli.Context, config *configuration.Configuration) (string, *account.PrivateKey, error) {
	name, err := checkName(identityName(c, config))
	if nil != err {
		return "", nil, err
	}

	if _, err := config.Identity(name); nil != err {
		return "", nil, err
	}

	password := c.GlobalString("password")
	if "" == password {
		password, err = promptPassword()
		if nil != err {
			return "", nil, err
		}
	}

	private, err := config.Private(password, name)
	if nil != err {
		return "", nil, err
	}
	return name, private.PrivateKey, nil
}

func connection(config *configuration.Configuration) (string, error) {
	if 0 == len(config.Connections) {
		return "", ErrNoConnections
	}
	return config.Connections[0], nil
}

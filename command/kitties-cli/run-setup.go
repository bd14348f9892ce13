// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/kittiesd/command/kitties-cli/configuration"
)

type generated struct {
	Mnemonic string `json:"mnemonic"`
	Account  string `json:"account"`
}

func runGenerate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	phrase, seed, err := configuration.NewMnemonic()
	if nil != err {
		return err
	}

	r, err := generatedIdentity(phrase, seed)
	if nil != err {
		return err
	}
	return printJson(m.w, r)
}

func runSetup(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	connect, err := checkConnect(c.String("connect"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	phrase, seed, err := checkMnemonic(c.String("mnemonic"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "config: %s\n", m.file)
		fmt.Fprintf(m.e, "connect: %s\n", connect)
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	// create the folder hierarchy for configuration if not existing
	configDir := filepath.Dir(m.file)
	d, err := checkFileExists(configDir)
	if nil != err {
		if err := os.MkdirAll(configDir, 0o750); nil != err {
			return err
		}
	} else if !d {
		return fmt.Errorf("path: %q is not a directory", configDir)
	}

	config := &configuration.Configuration{
		DefaultIdentity: name,
		Connections:     strings.Split(connect, ","),
		Identities:      make(map[string]configuration.Identity),
	}

	password, err := newPassword(c)
	if nil != err {
		return err
	}

	if err := config.AddIdentity(name, description, seed, password); nil != err {
		return err
	}

	m.config = config
	m.save = true

	r, err := generatedIdentity(phrase, seed)
	if nil != err {
		return err
	}
	return printJson(m.w, r)
}

func runAdd(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	if acc := c.String("account"); "" != acc {
		if err := m.config.AddReceiveOnlyIdentity(name, description, acc); nil != err {
			return err
		}
		m.save = true
		return nil
	}

	phrase, seed, err := checkMnemonic(c.String("mnemonic"))
	if nil != err {
		return err
	}

	password, err := newPassword(c)
	if nil != err {
		return err
	}

	if err := m.config.AddIdentity(name, description, seed, password); nil != err {
		return err
	}
	m.save = true

	r, err := generatedIdentity(phrase, seed)
	if nil != err {
		return err
	}
	return printJson(m.w, r)
}

type identityItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Account     string `json:"account"`
	Default     bool   `json:"default,omitempty"`
	ReceiveOnly bool   `json:"receive_only,omitempty"`
}

func runList(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	items := make([]identityItem, 0, len(m.config.Identities))
	for _, name := range m.config.Names() {
		id := m.config.Identities[name]
		items = append(items, identityItem{
			Name:        name,
			Description: id.Description,
			Account:     id.Account,
			Default:     name == m.config.DefaultIdentity,
			ReceiveOnly: "" == id.Data,
		})
	}
	return printJson(m.w, items)
}

func newPassword(c *cli.Context) (string, error) {
	password := c.GlobalString("password")
	if "" == password {
		return promptNewPassword()
	}
	if err := checkPasswordLength(password); nil != err {
		return "", err
	}
	return password, nil
}

func generatedIdentity(phrase string, seed []byte) (*generated, error) {
	key, err := accountFromSeed(seed)
	if nil != err {
		return nil, err
	}
	return &generated{
		Mnemonic: phrase,
		Account:  key,
	}, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/command/kitties-cli/rpccalls"
	"github.com/bitmark-inc/kittiesd/kitty"
	rpckitties "github.com/bitmark-inc/kittiesd/rpc/kitties"
)

func runInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Info()
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runBalance(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount(c.String("owner"), c, m.config)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Balance(owner)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runCreate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	name, key, err := checkOwnerWithPasswordPrompt(c, m.config)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", name)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Create(key)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runBreed(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	parent1, err := checkKitty(c.String("parent1"))
	if nil != err {
		return err
	}
	parent2, err := checkKitty(c.String("parent2"))
	if nil != err {
		return err
	}

	name, key, err := checkOwnerWithPasswordPrompt(c, m.config)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", name)
		fmt.Fprintf(m.e, "parents: %d %d\n", parent1, parent2)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Breed(key, parent1, parent2)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runTransfer(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := checkKitty(c.String("kitty"))
	if nil != err {
		return err
	}

	receiver := c.String("receiver")
	if "" == receiver {
		return ErrRequiredReceiver
	}
	to, err := m.config.Account(receiver)
	if nil != err {
		return err
	}

	name, key, err := checkOwnerWithPasswordPrompt(c, m.config)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", name)
		fmt.Fprintf(m.e, "receiver: %s\n", to)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Transfer(key, to, id)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runAsk(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := checkKitty(c.String("kitty"))
	if nil != err {
		return err
	}

	var price *uint64
	withdraw := c.Bool("withdraw")
	switch p := c.String("price"); {
	case "" == p && withdraw:
	case "" != p && !withdraw:
		value, err := checkPrice(p)
		if nil != err {
			return err
		}
		price = &value
	default:
		return ErrPriceOrWithdraw
	}

	_, key, err := checkOwnerWithPasswordPrompt(c, m.config)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Ask(key, id, price)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runBuy(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := checkKitty(c.String("kitty"))
	if nil != err {
		return err
	}
	price, err := checkPrice(c.String("price"))
	if nil != err {
		return err
	}

	_, key, err := checkOwnerWithPasswordPrompt(c, m.config)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Buy(key, id, price)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

type kittyDetails struct {
	*rpckitties.KittyReply
	Children []kitty.Index `json:"children"`
	Partners []kitty.Index `json:"partners"`
}

func runKitty(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := checkKitty(c.String("kitty"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Kitty(id)
	if nil != err {
		return err
	}
	lineage, err := client.Lineage(id)
	if nil != err {
		return err
	}

	details := kittyDetails{
		KittyReply: reply,
		Children:   lineage.Children,
		Partners:   lineage.Partners,
	}
	return printJson(m.w, details)
}

func runOwned(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount(c.String("owner"), c, m.config)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Owned(owner, c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func connect(m *metadata) (*rpccalls.Client, error) {
	address, err := connection(m.config)
	if nil != err {
		return nil, err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", address)
	}
	return rpccalls.NewClient(address, m.verbose, m.e)
}

func accountFromSeed(seed []byte) (string, error) {
	key, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		return "", err
	}
	return key.Account().String(), nil
}

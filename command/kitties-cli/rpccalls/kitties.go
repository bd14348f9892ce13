// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/kitty"
	rpckitties "github.com/bitmark-inc/kittiesd/rpc/kitties"
)

// Create - mint a random kitty for key
func (c *Client) Create(key *account.PrivateKey) (*rpckitties.IdReply, error) {
	arguments := rpckitties.CreateArguments{
		Signed: *rpckitties.Sign(key, rpckitties.MethodCreate, c.now().Unix()),
	}
	var reply rpckitties.IdReply
	if err := c.call(rpckitties.MethodCreate, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Breed - mint a child of two owned kitties
func (c *Client) Breed(key *account.PrivateKey, parent1 kitty.Index, parent2 kitty.Index) (*rpckitties.IdReply, error) {
	arguments := rpckitties.BreedArguments{
		Signed:  *rpckitties.Sign(key, rpckitties.MethodBreed, c.now().Unix(), rpckitties.BreedFields(parent1, parent2)...),
		Parent1: parent1,
		Parent2: parent2,
	}
	var reply rpckitties.IdReply
	if err := c.call(rpckitties.MethodBreed, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Transfer - give a kitty to another account
func (c *Client) Transfer(key *account.PrivateKey, to *account.Account, id kitty.Index) (*rpckitties.StatusReply, error) {
	arguments := rpckitties.TransferArguments{
		Signed: *rpckitties.Sign(key, rpckitties.MethodTransfer, c.now().Unix(), rpckitties.TransferFields(to, id)...),
		To:     to,
		Id:     id,
	}
	var reply rpckitties.StatusReply
	if err := c.call(rpckitties.MethodTransfer, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Ask - list a kitty for sale, nil price withdraws it
func (c *Client) Ask(key *account.PrivateKey, id kitty.Index, price *uint64) (*rpckitties.StatusReply, error) {
	arguments := rpckitties.AskArguments{
		Signed: *rpckitties.Sign(key, rpckitties.MethodAsk, c.now().Unix(), rpckitties.AskFields(id, price)...),
		Id:     id,
		Price:  price,
	}
	var reply rpckitties.StatusReply
	if err := c.call(rpckitties.MethodAsk, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Buy - purchase a listed kitty paying at most price
func (c *Client) Buy(key *account.PrivateKey, id kitty.Index, price uint64) (*rpckitties.StatusReply, error) {
	arguments := rpckitties.BuyArguments{
		Signed: *rpckitties.Sign(key, rpckitties.MethodBuy, c.now().Unix(), rpckitties.BuyFields(id, price)...),
		Id:     id,
		Price:  price,
	}
	var reply rpckitties.StatusReply
	if err := c.call(rpckitties.MethodBuy, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Kitty - one kitty record
func (c *Client) Kitty(id kitty.Index) (*rpckitties.KittyReply, error) {
	var reply rpckitties.KittyReply
	if err := c.call(rpckitties.MethodGet, &rpckitties.IdArguments{Id: id}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Lineage - parents, children and partners of a kitty
func (c *Client) Lineage(id kitty.Index) (*rpckitties.LineageReply, error) {
	var reply rpckitties.LineageReply
	if err := c.call(rpckitties.MethodLineage, &rpckitties.IdArguments{Id: id}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Owned - kitties held by owner in list order
func (c *Client) Owned(owner *account.Account, count int) (*rpckitties.OwnedReply, error) {
	arguments := rpckitties.OwnedArguments{
		Owner: owner,
		Count: count,
	}
	var reply rpckitties.OwnedReply
	if err := c.call(rpckitties.MethodOwned, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

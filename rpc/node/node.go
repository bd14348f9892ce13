// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - JSON-RPC information about the daemon and balances
package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/counter"
	"github.com/bitmark-inc/kittiesd/currency"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/registry"
	"github.com/bitmark-inc/kittiesd/storage"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Balances - read side of the currency ledger
type Balances interface {
	FreeBalance(storage.Reader, *account.Account) uint64
	Usable(storage.Reader, *account.Account) uint64
	Locks(storage.Reader, *account.Account) []currency.Lock
	ExistentialDeposit() uint64
}

// Node - type for RPC calls
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Start    time.Time
	Version  string
	registry *registry.Registry
	balances Balances
	stake    uint64
	counter  *counter.Counter
}

// New - create the rpc service
func New(log *logger.L, reg *registry.Registry, balances Balances, stake uint64, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:    start,
		Version:  version,
		registry: reg,
		balances: balances,
		stake:    stake,
		counter:  counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version            string `json:"version"`
	Uptime             string `json:"uptime"`
	Kitties            uint64 `json:"kitties"`
	RPCs               uint64 `json:"rpcs"`
	Stake              uint64 `json:"stake"`
	ExistentialDeposit uint64 `json:"existentialDeposit"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := limit(node.Limiter); nil != err {
		return err
	}
	if nil == node.registry {
		return fault.ErrDatabaseIsNotSet
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Kitties = uint64(node.registry.Count(storage.View))
	reply.RPCs = node.counter.Uint64()
	reply.Stake = node.stake
	reply.ExistentialDeposit = node.balances.ExistentialDeposit()
	return nil
}

// ---

// BalanceArguments - account to query
type BalanceArguments struct {
	Owner *account.Account `json:"owner"`
}

// BalanceReply - balance and locks of an account
type BalanceReply struct {
	Free   uint64          `json:"free"`
	Usable uint64          `json:"usable"`
	Locks  []currency.Lock `json:"locks"`
}

// Balance - free and spendable funds of an account
func (node *Node) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := limit(node.Limiter); nil != err {
		return err
	}
	if nil == arguments.Owner {
		return fault.ErrInvalidAccount
	}

	snapshot, err := storage.NewSnapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	reply.Free = node.balances.FreeBalance(snapshot, arguments.Owner)
	reply.Usable = node.balances.Usable(snapshot, arguments.Owner)
	reply.Locks = node.balances.Locks(snapshot, arguments.Owner)
	if nil == reply.Locks {
		reply.Locks = []currency.Lock{}
	}
	return nil
}

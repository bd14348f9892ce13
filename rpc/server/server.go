// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - the net/rpc server with every service registered
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/counter"
	"github.com/bitmark-inc/kittiesd/kitties"
	"github.com/bitmark-inc/kittiesd/registry"
	rpckitties "github.com/bitmark-inc/kittiesd/rpc/kitties"
	"github.com/bitmark-inc/kittiesd/rpc/metrics"
	"github.com/bitmark-inc/kittiesd/rpc/node"
)

// Dependencies - state shared by the rpc services
type Dependencies struct {
	Service  kitties.Kitties
	Registry *registry.Registry
	Balances node.Balances
	Verifier *rpckitties.Verifier
	Sequence *counter.Counter
	Metrics  *metrics.Recorder
	Stake    uint64
}

// Services - the registered receivers, exposed for rate reconfiguration
type Services struct {
	Kitties *rpckitties.Kitties
	Node    *node.Node
}

// Create - a server with the Kitties and Node services
func Create(log *logger.L, version string, rpcCount *counter.Counter, deps Dependencies) (*rpc.Server, *Services, error) {
	start := time.Now().UTC()

	services := &Services{
		Kitties: rpckitties.New(log, deps.Service, deps.Registry, deps.Verifier, deps.Sequence, deps.Metrics),
		Node:    node.New(log, deps.Registry, deps.Balances, deps.Stake, start, version, rpcCount),
	}

	server := rpc.NewServer()
	if err := server.Register(services.Kitties); nil != err {
		return nil, nil, err
	}
	if err := server.Register(services.Node); nil != err {
		return nil, nil, err
	}

	return server, services, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client facing JSON-RPC and HTTPS servers
package rpc

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/kittiesd/counter"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/rpc/certificate"
	"github.com/bitmark-inc/kittiesd/rpc/handler"
	"github.com/bitmark-inc/kittiesd/rpc/listeners"
	"github.com/bitmark-inc/kittiesd/rpc/ratelimit"
	"github.com/bitmark-inc/kittiesd/rpc/server"
	"github.com/bitmark-inc/kittiesd/storage"
)

const (
	rpcName   = "client_rpc"
	httpsName = "http_rpc"
)

// RateConfiguration - token bucket settings of the kitties service
type RateConfiguration struct {
	Limit float64 `gluamapper:"limit" json:"limit"`
	Burst int     `gluamapper:"burst" json:"burst"`
}

// globals
type rpcData struct {
	sync.RWMutex

	log      *logger.L
	services *server.Services

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connection count across both listeners
var connectionCount counter.Counter

// Initialise - start the rpc and https listeners
func Initialise(
	rpcConfiguration *listeners.RPCConfiguration,
	httpsConfiguration *listeners.HTTPSConfiguration,
	version string,
	deps server.Dependencies,
	gatherer prometheus.Gatherer,
) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	s, services, err := server.Create(log, version, &connectionCount, deps)
	if nil != err {
		return err
	}
	globalData.services = services

	tlsConfig, fingerprint, err := certificate.GetFiles(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(rpcConfiguration, log, &connectionCount, s, tlsConfig, fingerprint)
	if nil != err {
		return err
	}
	if err := rpcListener.Serve(); nil != err {
		return err
	}

	if 0 != len(httpsConfiguration.Listen) {
		httpsTLS, httpsFingerprint, err := certificate.GetFiles(log, httpsName, httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
		if nil != err {
			return err
		}
		log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, httpsFingerprint)

		kittyCount := func() uint64 {
			return uint64(deps.Registry.Count(storage.View))
		}
		hdlr := handler.New(log, s, time.Now(), version, httpsConfiguration.MaximumConnections, kittyCount, gatherer)

		httpsListener, err := listeners.NewHTTPS(httpsConfiguration, log, httpsTLS, hdlr)
		if nil != err {
			return err
		}
		if err := httpsListener.Serve(); nil != err {
			return err
		}
	}

	globalData.initialised = true
	return nil
}

// Reconfigure - apply new rate limits to the running services
func Reconfigure(kitties RateConfiguration, node RateConfiguration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	if kitties.Limit > 0 && kitties.Burst > 0 {
		ratelimit.Reconfigure(globalData.services.Kitties.Limiter, kitties.Limit, kitties.Burst)
	}
	if node.Limit > 0 && node.Burst > 0 {
		ratelimit.Reconfigure(globalData.services.Node.Limiter, node.Limit, node.Burst)
	}
	globalData.log.Infof("rate limits  kitties: %+v  node: %+v", kitties, node)
	return nil
}

// Finalise - stop accepting new state
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

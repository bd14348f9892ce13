// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bitmark-inc/kittiesd/counter"
	"github.com/bitmark-inc/kittiesd/currency"
	"github.com/bitmark-inc/kittiesd/genesis"
	"github.com/bitmark-inc/kittiesd/kitties"
	"github.com/bitmark-inc/kittiesd/publish"
	"github.com/bitmark-inc/kittiesd/randomness"
	"github.com/bitmark-inc/kittiesd/registry"
	"github.com/bitmark-inc/kittiesd/rpc"
	rpckitties "github.com/bitmark-inc/kittiesd/rpc/kitties"
	"github.com/bitmark-inc/kittiesd/rpc/metrics"
	"github.com/bitmark-inc/kittiesd/rpc/server"
	"github.com/bitmark-inc/kittiesd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, nil)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("database: %q  backend: %s", theConfiguration.Database.Name, theConfiguration.Database.Backend)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, theConfiguration.Database.Backend, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	ledger := currency.NewLedger(storage.Pool.Balances, storage.Pool.Locks, theConfiguration.ExistentialDeposit)

	log.Info("apply genesis")
	if _, err := genesis.Apply(logger.New("genesis"), ledger, storage.Pool.Genesis, theConfiguration.Genesis); nil != err {
		log.Criticalf("genesis error: %s", err)
		exitwithstatus.Message("genesis error: %s", err)
	}

	beacon, err := randomness.NewEntropyBeacon()
	if nil != err {
		log.Criticalf("randomness error: %s", err)
		exitwithstatus.Message("randomness error: %s", err)
	}

	reg := registry.New(registry.PoolHandles())
	service := kitties.New(reg, ledger, beacon, kitties.NewBusEmitter(), theConfiguration.Stake)

	// metrics
	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(collectors.NewGoCollector())
	metricsRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.New(metricsRegistry)
	if nil != err {
		log.Criticalf("metrics error: %s", err)
		exitwithstatus.Message("metrics error: %s", err)
	}
	recorder.SetKitties(uint64(reg.Count(storage.View)))

	// start up the publishing background processes
	err = publish.Initialise(&theConfiguration.Publishing)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// start up the rpc background processes
	sequence := counter.Counter(0)
	deps := server.Dependencies{
		Service:  service,
		Registry: reg,
		Balances: ledger,
		Verifier: rpckitties.NewVerifier(time.Duration(theConfiguration.SignatureWindow) * time.Second),
		Sequence: &sequence,
		Metrics:  recorder,
		Stake:    theConfiguration.Stake,
	}
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version, deps, metricsRegistry)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()
	applyRateLimits(log, theConfiguration)

	// watch the configuration for rate limit changes
	channel := WatcherChannel{
		change: make(chan struct{}, 1),
		remove: make(chan struct{}, 1),
	}
	watcher, err := newFileWatcher(configurationFile, logger.New(fileWatcherLoggerPrefix), channel)
	if nil != err {
		log.Criticalf("file watcher error: %s", err)
		exitwithstatus.Message("file watcher error: %s", err)
	}
	if err := watcher.Start(); nil != err {
		log.Criticalf("file watcher start error: %s", err)
		exitwithstatus.Message("file watcher start error: %s", err)
	}
	defer watcher.Stop()

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		shutdown := make(chan struct{})
		defer close(shutdown)
		go memstats(reg, shutdown)
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

loop:
	for {
		select {
		case sig := <-ch:
			log.Infof("received signal: %v", sig)
			if 0 == len(options["quiet"]) {
				fmt.Printf("\nreceived signal: %v\n", sig)
				fmt.Printf("\nshutting down…\n")
			}
			break loop

		case <-channel.change:
			reloaded, err := getConfiguration(configurationFile, nil)
			if nil != err {
				log.Errorf("reload configuration from: %q  error: %s", configurationFile, err)
				continue loop
			}
			applyRateLimits(log, reloaded)

		case <-channel.remove:
			log.Warnf("configuration file: %q removed", configurationFile)
		}
	}

	log.Info("shutting down…")
}

func applyRateLimits(log *logger.L, options *Configuration) {
	err := rpc.Reconfigure(options.RateLimit.Kitties, options.RateLimit.Node)
	if nil != err {
		log.Errorf("rate limit error: %s", err)
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/kitty"
	"github.com/bitmark-inc/kittiesd/storage"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// anything that can report the number of minted kitties
type kittyCounter interface {
	Count(storage.Reader) kitty.Index
}

// log memory use and ledger size until shutdown is closed
func memstats(counter kittyCounter, shutdown <-chan struct{}) {
	log := logger.New("memory")

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		log.Info(statsLine(&m, counter.Count(storage.View)))

		select {
		case <-shutdown:
			return
		case <-ticker.C:
		}
	}
}

func statsLine(m *runtime.MemStats, kitties kitty.Index) string {
	return fmt.Sprintf("kitties: %d  allocated: %d M  cumulative: %d M  OS virtual: %d M  gc: %d",
		kitties, m.Alloc/mega, m.TotalAlloc/mega, m.Sys/mega, m.NumGC)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a broadcast queuing system for ledger events
//
// messages sent while nobody is listening are dropped, as are
// messages for a listener whose queue is full
package messagebus

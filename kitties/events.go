// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitties

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/kitty"
	"github.com/bitmark-inc/kittiesd/messagebus"
)

// Event - payload describing one successful call
type Event interface {
	Name() string
}

// Created - a new kitty was minted
type Created struct {
	Owner *account.Account `json:"owner"`
	Id    kitty.Index      `json:"id"`
}

// Breeded - a child was bred
type Breeded struct {
	Owner *account.Account `json:"owner"`
	Id    kitty.Index      `json:"id"`
}

// Transferred - ownership changed hands without payment
type Transferred struct {
	From *account.Account `json:"from"`
	To   *account.Account `json:"to"`
	Id   kitty.Index      `json:"id"`
}

// Ask - listing was set or cleared
type Ask struct {
	Owner *account.Account `json:"owner"`
	Id    kitty.Index      `json:"id"`
	Price *uint64          `json:"price"`
}

// Sold - a listed kitty was bought
type Sold struct {
	Seller *account.Account `json:"seller"`
	Buyer  *account.Account `json:"buyer"`
	Id     kitty.Index      `json:"id"`
	Price  uint64           `json:"price"`
}

// event names, also used as publish topics
const (
	CreatedName     = "created"
	BreededName     = "breeded"
	TransferredName = "transferred"
	AskName         = "ask"
	SoldName        = "sold"
)

// Name - event name
func (Created) Name() string { return CreatedName }

// Name - event name
func (Breeded) Name() string { return BreededName }

// Name - event name
func (Transferred) Name() string { return TransferredName }

// Name - event name
func (Ask) Name() string { return AskName }

// Name - event name
func (Sold) Name() string { return SoldName }

// Emitter - receiver of committed events
type Emitter interface {
	Emit(Event)
}

// BusEmitter - forwards events to the message bus as JSON
type BusEmitter struct {
	log   *logger.L
	queue *messagebus.BroadcastQueue
}

// NewBusEmitter - emitter for the events queue
func NewBusEmitter() *BusEmitter {
	return &BusEmitter{
		log:   logger.New("events"),
		queue: messagebus.Bus.Events,
	}
}

// Emit - encode and broadcast one event
func (e *BusEmitter) Emit(event Event) {
	data, err := json.Marshal(event)
	if nil != err {
		e.log.Errorf("event: %s  marshal error: %s", event.Name(), err)
		return
	}
	e.log.Debugf("event: %s  data: %s", event.Name(), data)
	e.queue.Send(event.Name(), data)
}

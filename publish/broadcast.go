// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/kittiesd/messagebus"
	"github.com/bitmark-inc/kittiesd/zmqutil"
)

const (
	broadcastZapDomain = "broadcast"
	eventQueueSize     = 1000
)

// Sender - the part of a socket used for publishing
type Sender interface {
	SendMessage(parts ...interface{}) (int, error)
}

type broadcaster struct {
	log     *logger.L
	queue   <-chan messagebus.Message
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(log *logger.L, privateKey []byte, publicKey []byte, broadcast []string) error {
	brdc.log = log

	brdc.log.Info("initialising…")

	socket4, socket6, err := zmqutil.NewBind(brdc.log, zmq.PUB, broadcastZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		brdc.log.Errorf("bind error: %s", err)
		return err
	}

	brdc.socket4 = socket4
	brdc.socket6 = socket6

	// listen before any call can commit
	brdc.queue = messagebus.Bus.Events.Chan(eventQueueSize)

	return nil
}

// Run - wait for events and publish them
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := brdc.log

	log.Info("starting…")

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case item := <-brdc.queue:
			for _, socket := range brdc.sockets() {
				if err := publishMessage(socket, item); nil != err {
					log.Errorf("publish: %q  error: %s", item.Command, err)
				}
			}
		}
	}

	messagebus.Bus.Events.Release(brdc.queue)
	for _, socket := range brdc.sockets() {
		socket.Close()
	}
	log.Info("stopped")
}

func (brdc *broadcaster) sockets() []*zmq.Socket {
	sockets := make([]*zmq.Socket, 0, 2)
	if nil != brdc.socket4 {
		sockets = append(sockets, brdc.socket4)
	}
	if nil != brdc.socket6 {
		sockets = append(sockets, brdc.socket6)
	}
	return sockets
}

// send one message as topic frame followed by its parameters
func publishMessage(socket Sender, item messagebus.Message) error {
	parts := make([]interface{}, 0, 1+len(item.Parameters))
	parts = append(parts, item.Command)
	for _, p := range item.Parameters {
		parts = append(parts, p)
	}
	_, err := socket.SendMessage(parts...)
	return err
}

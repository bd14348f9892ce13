// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command with its encoded parameters
type Message struct {
	Command    string   // type of packet
	Parameters [][]byte // array of parameters
}

// BroadcastQueue - fan out of messages to every listener
type BroadcastQueue struct {
	sync.RWMutex
	listeners []chan Message
}

// Bus - the set of queues
var Bus = struct {
	Events *BroadcastQueue // ledger events for publishers
}{
	Events: &BroadcastQueue{},
}

// Send - queue a message to all listeners
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.RLock()
	defer queue.RUnlock()

	for _, listener := range queue.listeners {
		select {
		case listener <- m:
		default:
		}
	}
}

// Chan - register a new listener with its own queue
//
// size < 1 selects the default queue size
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size < 1 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()

	return c
}

// Release - unregister a listener and close its queue
func (queue *BroadcastQueue) Release(c <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for i, listener := range queue.listeners {
		if (<-chan Message)(listener) == c {
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			close(listener)
			return
		}
	}
}

// Listeners - number of registered listeners
func (queue *BroadcastQueue) Listeners() int {
	queue.RLock()
	defer queue.RUnlock()
	return len(queue.listeners)
}

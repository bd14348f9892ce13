// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpccalls - signed JSON RPC calls to kittiesd
package rpccalls

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
	now     func() time.Time
}

// NewClient - create a RPC connection to a kittiesd
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if nil != err {
		return nil, err
	}
	return NewConnClient(conn, verbose, handle), nil
}

// NewConnClient - client over an existing connection
func NewConnClient(conn net.Conn, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
		now:     time.Now,
	}
}

// Close - shutdown the kittiesd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	if c.verbose {
		fmt.Fprintf(c.handle, "%s request: %#v\n", method, arguments)
	}
	if err := c.client.Call(method, arguments, reply); nil != err {
		return err
	}
	if c.verbose {
		fmt.Fprintf(c.handle, "%s reply: %#v\n", method, reply)
	}
	return nil
}

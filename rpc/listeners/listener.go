// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS servers for JSON-RPC and HTTPS clients
package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/fault"
)

const minConnectionCount = 1

// Listener - a server that can be started
type Listener interface {
	Serve() error
}

// parseListenAddress - network type for each "IP:PORT"
//
// "*:PORT" becomes "[::]:PORT" in place so it listens on tcp4 and tcp6
func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		host, port, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("listen: %q  error: %s", listen, err)
			return nil, fault.ErrInvalidIpAddress
		}
		if "" == port {
			return nil, fault.ErrInvalidPortNumber
		}

		switch {
		case "*" == host:
			addrs[i] = net.JoinHostPort("::", port)
			parsed[i] = "tcp"
			continue
		case strings.Contains(host, ":"):
			parsed[i] = "tcp6"
		default:
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen: %q  error: %s", listen, fault.ErrInvalidIpAddress)
			return nil, fault.ErrInvalidIpAddress
		}
	}
	return parsed, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/rpc/node"
)

const (
	methodInfo    = "Node.Info"
	methodBalance = "Node.Balance"
)

// Info - request status from kittiesd
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call(methodInfo, &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Balance - free and usable balance of an account
func (c *Client) Balance(owner *account.Account) (*node.BalanceReply, error) {
	var reply node.BalanceReply
	if err := c.call(methodBalance, &node.BalanceArguments{Owner: owner}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/kittiesd/rpc/ratelimit"
)

func limit(limiter *rate.Limiter) error {
	return ratelimit.Limit(limiter)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitties

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/fault"
)

// DefaultWindow - accepted clock difference of a signed request
const DefaultWindow = 5 * time.Minute

// Signed - authentication fields carried by every mutating request
type Signed struct {
	Caller    *account.Account  `json:"caller"`
	Timestamp int64             `json:"timestamp,string"` // unix seconds
	Signature account.Signature `json:"signature"`
}

// Message - canonical bytes signed for a request
//
// method|caller|timestamp|field,field...
func Message(method string, caller *account.Account, timestamp int64, fields ...string) []byte {
	return []byte(method + "|" + caller.String() + "|" + strconv.FormatInt(timestamp, 10) + "|" + strings.Join(fields, ","))
}

// Verifier - signature, freshness and replay checks
type Verifier struct {
	window time.Duration
	seen   *cache.Cache
	now    func() time.Time
}

// NewVerifier - signatures are remembered for twice the window so a
// replay is caught for as long as its timestamp is acceptable
func NewVerifier(window time.Duration) *Verifier {
	return &Verifier{
		window: window,
		seen:   cache.New(2*window, window),
		now:    time.Now,
	}
}

// Verify - return the caller of a correctly signed fresh request
func (v *Verifier) Verify(method string, signed *Signed, fields ...string) (*account.Account, error) {
	if nil == signed || nil == signed.Caller {
		return nil, fault.ErrRequiredIdentity
	}

	delta := v.now().Sub(time.Unix(signed.Timestamp, 0))
	if delta > v.window || delta < -v.window {
		return nil, fault.ErrInvalidTimestamp
	}

	message := Message(method, signed.Caller, signed.Timestamp, fields...)
	if err := signed.Caller.CheckSignature(message, signed.Signature); nil != err {
		return nil, fault.ErrInvalidSignature
	}

	if err := v.seen.Add(hex.EncodeToString(signed.Signature), nil, cache.DefaultExpiration); nil != err {
		return nil, fault.ErrReplayedRequest
	}

	return signed.Caller, nil
}

// Sign - fill in the authentication fields of a request
func Sign(key *account.PrivateKey, method string, timestamp int64, fields ...string) *Signed {
	caller := key.Account()
	return &Signed{
		Caller:    caller,
		Timestamp: timestamp,
		Signature: key.Sign(Message(method, caller, timestamp, fields...)),
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/fault"
)

const (
	testPublicKey = "60b3c6e20cfff7091a86488b1656b96ec0a2f69907e2c035175918f42c37d72e"
	testBase58    = "anF8SWxSRY5vnN3Bbyz9buRYW1hfCAAZxfbv8Fw9SFXaktvLCj"
)

func TestBase58RoundTrip(t *testing.T) {
	publicKey, _ := hex.DecodeString(testPublicKey)

	a, err := account.FromBytes(publicKey)
	assert.Nil(t, err, "from bytes")
	assert.Equal(t, testBase58, a.String(), "base58")

	b, err := account.FromBase58(testBase58)
	assert.Nil(t, err, "from base58")
	assert.True(t, a.Equal(b), "accounts differ")
	assert.Equal(t, publicKey, b.Bytes(), "raw bytes")
}

func TestBadBase58(t *testing.T) {
	_, err := account.FromBase58("abc")
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "short text")

	_, err = account.FromBase58("0OIl")
	assert.Equal(t, fault.ErrInvalidAccount, err, "invalid alphabet")

	_, err = account.FromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "short key")

	publicKey, _ := hex.DecodeString(testPublicKey)
	publicKey[0] ^= 0xff
	other, _ := account.FromBytes(publicKey)
	text := []byte(other.String())
	good := []byte(testBase58)

	// splice the checksum of the original on to the modified key
	spliced := append(text[:len(text)-6:len(text)-6], good[len(good)-6:]...)
	_, err = account.FromBase58(string(spliced))
	assert.NotNil(t, err, "corrupt text accepted")
}

func TestJSON(t *testing.T) {
	a, _ := account.FromBase58(testBase58)

	s := struct {
		Owner *account.Account `json:"owner"`
	}{
		Owner: a,
	}
	buffer, err := json.Marshal(s)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `{"owner":"`+testBase58+`"}`, string(buffer), "json")

	s.Owner = nil
	err = json.Unmarshal(buffer, &s)
	assert.Nil(t, err, "unmarshal")
	assert.True(t, a.Equal(s.Owner), "decoded account")
}

func TestSignature(t *testing.T) {
	seed := make([]byte, account.SeedSize)
	seed[0] = 0x42
	key, err := account.PrivateKeyFromSeed(seed)
	assert.Nil(t, err, "private key")

	message := []byte("kitty")
	signature := key.Sign(message)
	assert.Nil(t, key.Account().CheckSignature(message, signature), "valid signature")
	assert.Equal(t, fault.ErrInvalidSignature, key.Account().CheckSignature([]byte("puppy"), signature), "wrong message")
	assert.Equal(t, fault.ErrInvalidSignature, key.Account().CheckSignature(message, signature[:10]), "short signature")
	assert.Equal(t, seed, key.Seed(), "seed")

	_, err = account.PrivateKeyFromSeed(seed[:5])
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "short seed")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/fault"
)

const (
	nonceSize     = 24
	secretKeySize = 32
)

// Private - decrypted part of an identity
type Private struct {
	PrivateKey  *account.PrivateKey `json:"-"`
	Seed        string              `json:"seed"`
	Description string              `json:"description"`
}

// check if password unlocks the seed of an identity
func decryptIdentity(password string, identity *Identity) (*Private, error) {
	if "" == identity.Data || "" == identity.Salt {
		return nil, fault.ErrNotPrivateKey
	}

	salt := new(Salt)
	if err := salt.UnmarshalText([]byte(identity.Salt)); nil != err {
		return nil, err
	}

	key, err := generateKey(password, salt)
	if nil != err {
		return nil, err
	}

	seed, err := decryptData(identity.Data, key)
	if nil != err {
		return nil, fault.ErrWrongPassword
	}

	privateKey, err := privateKeyFromHexSeed(seed)
	if nil != err {
		return nil, err
	}

	r := Private{
		PrivateKey:  privateKey,
		Seed:        seed,
		Description: identity.Description,
	}
	return &r, nil
}

func hashPassword(password string) (*Salt, *[secretKeySize]byte, error) {
	salt, err := MakeSalt()
	if nil != err {
		return nil, nil, err
	}

	key, err := generateKey(password, salt)
	if nil != err {
		return nil, nil, err
	}

	return salt, key, nil
}

func generateKey(password string, salt *Salt) (*[secretKeySize]byte, error) {
	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     secretKeySize,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}

	hash, err := argon2.Hash(ctx, []byte(password), salt.Bytes())
	if nil != err {
		return nil, err
	}

	var secretKey [secretKeySize]byte
	copy(secretKey[:], hash)
	return &secretKey, nil
}

// encrypt a string and convert to hex
func encryptData(data string, secretKey *[secretKeySize]byte) (string, error) {
	l := len(data)
	if l < 32 || l >= 16384 {
		return "", fault.ErrCryptoFailed
	}

	// nonce is prefixed to the ciphertext
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); nil != err {
		return "", fault.ErrCryptoFailed
	}

	ciphertext := secretbox.Seal(nonce[:], []byte(data), &nonce, secretKey)
	return hex.EncodeToString(ciphertext), nil
}

// decrypt a hex string and return plaintext
func decryptData(ciphertext string, secretKey *[secretKeySize]byte) (string, error) {
	if "" == ciphertext {
		return "", fault.ErrCryptoFailed
	}

	encrypted, err := hex.DecodeString(ciphertext)
	if nil != err {
		return "", err
	}
	if len(encrypted) <= nonceSize {
		return "", fault.ErrCryptoFailed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], encrypted[:nonceSize])

	decrypted, ok := secretbox.Open(nil, encrypted[nonceSize:], &nonce, secretKey)
	if !ok {
		return "", fault.ErrCryptoFailed
	}
	return string(decrypted), nil
}

func privateKeyFromHexSeed(seed string) (*account.PrivateKey, error) {
	b, err := hex.DecodeString(seed)
	if nil != err {
		return nil, err
	}
	return account.PrivateKeyFromSeed(b)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type BalanceError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type RecordError GenericError

// ledger errors - keep in alphabetic order
var (
	ErrBalanceNotEnough        = BalanceError("balance not enough for stake")
	ErrCounterOverflow         = LengthError("kitties count overflow")
	ErrInvalidKittyId          = NotFoundError("invalid kitty id")
	ErrNotForSale              = NotFoundError("kitty is not for sale")
	ErrPriceTooLow             = InvalidError("price too low")
	ErrRequireDifferentParents = InvalidError("require different parents")
	ErrRequireOwner            = PermissionError("require owner")
)

// currency errors - keep in alphabetic order
var (
	ErrBalanceOverflow       = BalanceError("balance overflow")
	ErrExistentialDeposit    = BalanceError("value below existential deposit")
	ErrInsufficientBalance   = BalanceError("insufficient balance")
	ErrKeepAlive             = BalanceError("transfer would kill account")
	ErrLiquidityRestrictions = BalanceError("liquidity restrictions prevent withdrawal")
)

// storage and list errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrDatabaseIsNotSet       = ProcessError("database is not set")
	ErrInvalidBackend         = InvalidError("invalid database backend")
	ErrListCorrupt            = RecordError("list node is corrupt")
	ErrListItemExists         = ExistsError("list item already exists")
	ErrListItemNotFound       = NotFoundError("list item not found")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrRecordCorrupt          = RecordError("record is corrupt")
	ErrTransactionAlreadyOpen = ProcessError("transaction already open")
	ErrTransactionNotOpen     = ProcessError("transaction not open")
	ErrVersionMismatch        = RecordError("database version mismatch")
)

// account, rpc and configuration errors - keep in alphabetic order
var (
	ErrChecksumMismatch       = InvalidError("checksum mismatch")
	ErrCryptoFailed           = ProcessError("encryption failed")
	ErrInvalidAccount         = InvalidError("invalid account")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidKeyLength       = LengthError("invalid key length")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidMnemonic        = InvalidError("invalid mnemonic")
	ErrInvalidSignature       = InvalidError("invalid signature")
	ErrInvalidTimestamp       = InvalidError("timestamp outside validity window")
	ErrMissingParameters      = InvalidError("missing parameters")
	ErrInvalidSalt            = LengthError("invalid salt")
	ErrNotFoundIdentity       = NotFoundError("identity name not found")
	ErrNotPrivateKey          = InvalidError("identity has no private key")
	ErrIdentityExists         = ExistsError("identity already exists")
	ErrRateLimiting           = ProcessError("rate limiting")
	ErrReplayedRequest        = ExistsError("request already submitted")
	ErrRequiredIdentity       = InvalidError("identity is required")
	ErrStakeBelowDeposit      = InvalidError("stake is below the existential deposit")
	ErrVerifiedPassword       = InvalidError("verified password is different")
	ErrWrongPassword          = InvalidError("wrong password")
	ErrInvalidPasswordLength  = LengthError("password length is invalid")
	ErrTooManyConnections     = ProcessError("too many connections")
	ErrConfigurationDirectory = InvalidError("configuration directory is invalid")
	ErrConfigurationNotTable  = InvalidError("configuration did not return a table")
	ErrConfigurationPlainName = InvalidError("configuration file name must not contain a path")
)

// network and key file errors - keep in alphabetic order
var (
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrInvalidIpAddress             = InvalidError("invalid IP address")
	ErrInvalidPortNumber            = InvalidError("invalid port number")
	ErrInvalidPrivateKeyFile        = InvalidError("invalid private key file")
	ErrInvalidPublicKeyFile         = InvalidError("invalid public key file")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrNotConnected                 = NotFoundError("not connected")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e BalanceError) Error() string    { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// determine the class of an error
func IsErrBalance(e error) bool    { _, ok := e.(BalanceError); return ok }
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kitties - JSON-RPC access to the kitties service
package kitties

import (
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/counter"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/kitties"
	"github.com/bitmark-inc/kittiesd/kitty"
	"github.com/bitmark-inc/kittiesd/registry"
	"github.com/bitmark-inc/kittiesd/rpc/metrics"
	"github.com/bitmark-inc/kittiesd/rpc/ratelimit"
	"github.com/bitmark-inc/kittiesd/storage"
)

const (
	rateLimitKitties = 200
	rateBurstKitties = 100

	// limit for owned list
	maximumOwnedCount = 100
)

// method names as registered with net/rpc
const (
	MethodCreate   = "Kitties.Create"
	MethodBreed    = "Kitties.Breed"
	MethodTransfer = "Kitties.Transfer"
	MethodAsk      = "Kitties.Ask"
	MethodBuy      = "Kitties.Buy"
	MethodGet      = "Kitties.Get"
	MethodOwned    = "Kitties.Owned"
	MethodOwner    = "Kitties.Owner"
	MethodLineage  = "Kitties.Lineage"
)

// Kitties - type for RPC calls
type Kitties struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	service  kitties.Kitties
	registry *registry.Registry
	verifier *Verifier
	sequence *counter.Counter
	metrics  *metrics.Recorder
}

// New - create the rpc service
func New(log *logger.L, service kitties.Kitties, reg *registry.Registry, verifier *Verifier, sequence *counter.Counter, recorder *metrics.Recorder) *Kitties {
	return &Kitties{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitKitties, rateBurstKitties),
		service:  service,
		registry: reg,
		verifier: verifier,
		sequence: sequence,
		metrics:  recorder,
	}
}

// ---

// CreateArguments - arguments for create
type CreateArguments struct {
	Signed
}

// IdReply - the kitty a call produced
type IdReply struct {
	Id kitty.Index `json:"id"`
}

// Create - mint a kitty for the signer
func (k *Kitties) Create(arguments *CreateArguments, reply *IdReply) (err error) {
	defer k.observe(MethodCreate, time.Now(), &err)

	origin, err := k.origin(MethodCreate, &arguments.Signed)
	if nil != err {
		return err
	}

	reply.Id, err = k.service.Create(origin)
	return err
}

// ---

// BreedArguments - arguments for breed
type BreedArguments struct {
	Signed
	Parent1 kitty.Index `json:"parent1"`
	Parent2 kitty.Index `json:"parent2"`
}

// BreedFields - signed fields of a breed request
func BreedFields(parent1 kitty.Index, parent2 kitty.Index) []string {
	return []string{parent1.String(), parent2.String()}
}

// Breed - breed two of the signer's kitties
func (k *Kitties) Breed(arguments *BreedArguments, reply *IdReply) (err error) {
	defer k.observe(MethodBreed, time.Now(), &err)

	origin, err := k.origin(MethodBreed, &arguments.Signed, BreedFields(arguments.Parent1, arguments.Parent2)...)
	if nil != err {
		return err
	}

	reply.Id, err = k.service.Breed(origin, arguments.Parent1, arguments.Parent2)
	return err
}

// ---

// TransferArguments - arguments for transfer
type TransferArguments struct {
	Signed
	To *account.Account `json:"to"`
	Id kitty.Index      `json:"id"`
}

// TransferFields - signed fields of a transfer request
func TransferFields(to *account.Account, id kitty.Index) []string {
	return []string{to.String(), id.String()}
}

// StatusReply - result of a call without a value
type StatusReply struct {
	Ok bool `json:"ok"`
}

// Transfer - give a kitty to another account
func (k *Kitties) Transfer(arguments *TransferArguments, reply *StatusReply) (err error) {
	defer k.observe(MethodTransfer, time.Now(), &err)

	if nil == arguments.To {
		return fault.ErrInvalidAccount
	}

	origin, err := k.origin(MethodTransfer, &arguments.Signed, TransferFields(arguments.To, arguments.Id)...)
	if nil != err {
		return err
	}

	err = k.service.Transfer(origin, arguments.To, arguments.Id)
	reply.Ok = nil == err
	return err
}

// ---

// AskArguments - arguments for ask, a missing price clears the listing
type AskArguments struct {
	Signed
	Id    kitty.Index `json:"id"`
	Price *uint64     `json:"price,omitempty"`
}

// AskFields - signed fields of an ask request
func AskFields(id kitty.Index, price *uint64) []string {
	p := "none"
	if nil != price {
		p = strconv.FormatUint(*price, 10)
	}
	return []string{id.String(), p}
}

// Ask - set or clear the listing of a kitty
func (k *Kitties) Ask(arguments *AskArguments, reply *StatusReply) (err error) {
	defer k.observe(MethodAsk, time.Now(), &err)

	origin, err := k.origin(MethodAsk, &arguments.Signed, AskFields(arguments.Id, arguments.Price)...)
	if nil != err {
		return err
	}

	err = k.service.Ask(origin, arguments.Id, arguments.Price)
	reply.Ok = nil == err
	return err
}

// ---

// BuyArguments - arguments for buy
type BuyArguments struct {
	Signed
	Id    kitty.Index `json:"id"`
	Price uint64      `json:"price"`
}

// BuyFields - signed fields of a buy request
func BuyFields(id kitty.Index, price uint64) []string {
	return []string{id.String(), strconv.FormatUint(price, 10)}
}

// Buy - purchase a listed kitty
func (k *Kitties) Buy(arguments *BuyArguments, reply *StatusReply) (err error) {
	defer k.observe(MethodBuy, time.Now(), &err)

	origin, err := k.origin(MethodBuy, &arguments.Signed, BuyFields(arguments.Id, arguments.Price)...)
	if nil != err {
		return err
	}

	err = k.service.Buy(origin, arguments.Id, arguments.Price)
	reply.Ok = nil == err
	return err
}

// ---

// IdArguments - a single kitty
type IdArguments struct {
	Id kitty.Index `json:"id"`
}

// KittyReply - full record of a kitty
type KittyReply struct {
	Id      kitty.Index      `json:"id"`
	DNA     kitty.DNA        `json:"dna"`
	Owner   *account.Account `json:"owner"`
	Price   *uint64          `json:"price,omitempty"`
	Parents []kitty.Index    `json:"parents,omitempty"`
}

// Get - fetch one kitty
func (k *Kitties) Get(arguments *IdArguments, reply *KittyReply) (err error) {
	defer k.observe(MethodGet, time.Now(), &err)

	if err := ratelimit.Limit(k.Limiter); nil != err {
		return err
	}

	snapshot, err := storage.NewSnapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	item, ok := k.registry.Kitty(snapshot, arguments.Id)
	if !ok {
		return fault.ErrInvalidKittyId
	}

	reply.Id = item.Id
	reply.DNA = item.DNA
	reply.Owner, _ = k.registry.OwnerOf(snapshot, arguments.Id)
	if price, ok := k.registry.Price(snapshot, arguments.Id); ok {
		reply.Price = &price
	}
	if p1, p2, ok := k.registry.Parents(snapshot, arguments.Id); ok {
		reply.Parents = []kitty.Index{p1, p2}
	}
	return nil
}

// OwnerReply - current owner
type OwnerReply struct {
	Owner *account.Account `json:"owner"`
}

// Owner - owner of one kitty
func (k *Kitties) Owner(arguments *IdArguments, reply *OwnerReply) (err error) {
	defer k.observe(MethodOwner, time.Now(), &err)

	if err := ratelimit.Limit(k.Limiter); nil != err {
		return err
	}

	owner, ok := k.registry.OwnerOf(storage.View, arguments.Id)
	if !ok {
		return fault.ErrInvalidKittyId
	}
	reply.Owner = owner
	return nil
}

// OwnedArguments - arguments for owned
type OwnedArguments struct {
	Owner *account.Account `json:"owner"`
	Count int              `json:"count"`
}

// OwnedReply - kitties in acquisition order
type OwnedReply struct {
	Kitties []kitty.Index `json:"kitties"`
	More    bool          `json:"more"`
}

// Owned - first count kitties of an owner
func (k *Kitties) Owned(arguments *OwnedArguments, reply *OwnedReply) (err error) {
	defer k.observe(MethodOwned, time.Now(), &err)

	if err := ratelimit.LimitN(k.Limiter, arguments.Count, maximumOwnedCount); nil != err {
		return err
	}
	if nil == arguments.Owner {
		return fault.ErrInvalidAccount
	}

	snapshot, err := storage.NewSnapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	reply.Kitties = make([]kitty.Index, 0, arguments.Count)
	iter := k.registry.Owned(snapshot, arguments.Owner)
	for {
		id, ok := iter.Next()
		if !ok {
			break
		}
		if len(reply.Kitties) == arguments.Count {
			reply.More = true
			break
		}
		reply.Kitties = append(reply.Kitties, id)
	}
	return iter.Err()
}

// LineageReply - breeding history of a kitty
type LineageReply struct {
	Parents  []kitty.Index `json:"parents"`
	Children []kitty.Index `json:"children"`
	Partners []kitty.Index `json:"partners"`
}

// Lineage - parents, children and partners of a kitty
func (k *Kitties) Lineage(arguments *IdArguments, reply *LineageReply) (err error) {
	defer k.observe(MethodLineage, time.Now(), &err)

	if err := ratelimit.Limit(k.Limiter); nil != err {
		return err
	}

	snapshot, err := storage.NewSnapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	if _, ok := k.registry.Kitty(snapshot, arguments.Id); !ok {
		return fault.ErrInvalidKittyId
	}

	reply.Parents = []kitty.Index{}
	if p1, p2, ok := k.registry.Parents(snapshot, arguments.Id); ok {
		reply.Parents = []kitty.Index{p1, p2}
	}
	reply.Children = k.registry.Children(snapshot, arguments.Id)
	reply.Partners = k.registry.Partners(snapshot, arguments.Id)
	return nil
}

// rate limit and verify a mutating request
func (k *Kitties) origin(method string, signed *Signed, fields ...string) (*kitties.Origin, error) {
	if err := ratelimit.Limit(k.Limiter); nil != err {
		return nil, err
	}

	caller, err := k.verifier.Verify(method, signed, fields...)
	if nil != err {
		k.Log.Warnf("%s: rejected request: %s", method, err)
		return nil, err
	}

	return &kitties.Origin{
		Caller: caller,
		Index:  k.sequence.Sequence(),
	}, nil
}

func (k *Kitties) observe(method string, start time.Time, err *error) {
	k.metrics.Observe(method, start, *err)
	if nil == *err && (MethodCreate == method || MethodBreed == method) {
		k.metrics.SetKitties(uint64(k.registry.Count(storage.View)))
	}
}

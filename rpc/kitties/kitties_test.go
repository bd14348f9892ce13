// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitties_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittiesd/counter"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/kitties"
	"github.com/bitmark-inc/kittiesd/kitties/mocks"
	"github.com/bitmark-inc/kittiesd/kitty"
	"github.com/bitmark-inc/kittiesd/registry"
	rpckitties "github.com/bitmark-inc/kittiesd/rpc/kitties"
	"github.com/bitmark-inc/kittiesd/rpc/fixtures"
	"github.com/bitmark-inc/kittiesd/rpc/metrics"
	"github.com/bitmark-inc/kittiesd/storage"
)

func setup(t *testing.T, service kitties.Kitties) (*rpckitties.Kitties, *registry.Registry, *counter.Counter) {
	if err := fixtures.SetupTestDatabase(); nil != err {
		t.Fatalf("database error: %s", err)
	}

	recorder, err := metrics.New(prometheus.NewRegistry())
	if nil != err {
		t.Fatalf("metrics error: %s", err)
	}

	reg := registry.New(registry.PoolHandles())
	sequence := counter.Counter(0)
	k := rpckitties.New(
		logger.New(fixtures.LogCategory),
		service,
		reg,
		rpckitties.NewVerifier(rpckitties.DefaultWindow),
		&sequence,
		recorder,
	)
	return k, reg, &sequence
}

func mint(t *testing.T, reg *registry.Registry, key byte, dna kitty.DNA) kitty.Index {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	id, err := reg.Mint(trx, fixtures.Key(key).Account(), dna)
	if nil != err {
		t.Fatalf("mint error: %s", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return id
}

func TestCreate(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockKitties(ctl)
	k, _, sequence := setup(t, m)
	defer fixtures.TeardownTestDatabase()

	key := fixtures.Key(1)
	*sequence = 7

	m.EXPECT().Create(&kitties.Origin{Caller: key.Account(), Index: 7}).Return(kitty.Index(3), nil).Times(1)

	args := rpckitties.CreateArguments{
		Signed: *rpckitties.Sign(key, rpckitties.MethodCreate, time.Now().Unix()),
	}
	var reply rpckitties.IdReply
	err := k.Create(&args, &reply)
	assert.Nil(t, err, "create")
	assert.Equal(t, kitty.Index(3), reply.Id, "id")

	// same signature again
	err = k.Create(&args, &reply)
	assert.Equal(t, fault.ErrReplayedRequest, err, "replay")
}

func TestBreedBadSignature(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockKitties(ctl)
	k, _, _ := setup(t, m)
	defer fixtures.TeardownTestDatabase()

	key := fixtures.Key(1)
	args := rpckitties.BreedArguments{
		Signed:  *rpckitties.Sign(key, rpckitties.MethodBreed, time.Now().Unix(), rpckitties.BreedFields(0, 1)...),
		Parent1: 0,
		Parent2: 2,
	}
	var reply rpckitties.IdReply
	err := k.Breed(&args, &reply)
	assert.Equal(t, fault.ErrInvalidSignature, err, "parent changed after signing")
}

func TestServiceErrorsPropagate(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockKitties(ctl)
	k, _, _ := setup(t, m)
	defer fixtures.TeardownTestDatabase()

	buyer := fixtures.Key(1)
	seller := fixtures.Key(2)
	now := time.Now().Unix()
	price := uint64(100)

	gomock.InOrder(
		m.EXPECT().Transfer(gomock.Any(), seller.Account(), kitty.Index(4)).Return(fault.ErrRequireOwner),
		m.EXPECT().Ask(gomock.Any(), kitty.Index(4), &price).Return(nil),
		m.EXPECT().Buy(gomock.Any(), kitty.Index(4), uint64(50)).Return(fault.ErrPriceTooLow),
	)

	var reply rpckitties.StatusReply

	transfer := rpckitties.TransferArguments{
		Signed: *rpckitties.Sign(buyer, rpckitties.MethodTransfer, now, rpckitties.TransferFields(seller.Account(), 4)...),
		To:     seller.Account(),
		Id:     4,
	}
	assert.Equal(t, fault.ErrRequireOwner, k.Transfer(&transfer, &reply), "transfer")
	assert.False(t, reply.Ok, "transfer status")

	ask := rpckitties.AskArguments{
		Signed: *rpckitties.Sign(seller, rpckitties.MethodAsk, now, rpckitties.AskFields(4, &price)...),
		Id:     4,
		Price:  &price,
	}
	assert.Nil(t, k.Ask(&ask, &reply), "ask")
	assert.True(t, reply.Ok, "ask status")

	buy := rpckitties.BuyArguments{
		Signed: *rpckitties.Sign(buyer, rpckitties.MethodBuy, now, rpckitties.BuyFields(4, 50)...),
		Id:     4,
		Price:  50,
	}
	assert.Equal(t, fault.ErrPriceTooLow, k.Buy(&buy, &reply), "buy")
}

func TestTransferWithoutDestination(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	k, _, _ := setup(t, mocks.NewMockKitties(ctl))
	defer fixtures.TeardownTestDatabase()

	var reply rpckitties.StatusReply
	err := k.Transfer(&rpckitties.TransferArguments{}, &reply)
	assert.Equal(t, fault.ErrInvalidAccount, err, "missing destination")
}

func TestQueries(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	k, reg, _ := setup(t, mocks.NewMockKitties(ctl))
	defer fixtures.TeardownTestDatabase()

	owner := fixtures.Key(1).Account()
	dna := kitty.DNA{1, 2, 3}
	for i := 0; i < 3; i += 1 {
		mint(t, reg, 1, dna)
	}

	var item rpckitties.KittyReply
	assert.Nil(t, k.Get(&rpckitties.IdArguments{Id: 1}, &item), "get")
	assert.Equal(t, kitty.Index(1), item.Id, "id")
	assert.Equal(t, dna, item.DNA, "dna")
	assert.Equal(t, owner, item.Owner, "owner")
	assert.Nil(t, item.Price, "price")
	assert.Nil(t, item.Parents, "parents")

	assert.Equal(t, fault.ErrInvalidKittyId, k.Get(&rpckitties.IdArguments{Id: 9}, &item), "missing kitty")

	var ownerReply rpckitties.OwnerReply
	assert.Nil(t, k.Owner(&rpckitties.IdArguments{Id: 2}, &ownerReply), "owner")
	assert.Equal(t, owner, ownerReply.Owner, "owner account")

	var owned rpckitties.OwnedReply
	assert.Nil(t, k.Owned(&rpckitties.OwnedArguments{Owner: owner, Count: 2}, &owned), "owned")
	assert.Equal(t, []kitty.Index{0, 1}, owned.Kitties, "owned page")
	assert.True(t, owned.More, "more")

	owned = rpckitties.OwnedReply{}
	assert.Nil(t, k.Owned(&rpckitties.OwnedArguments{Owner: owner, Count: 10}, &owned), "owned all")
	assert.Equal(t, []kitty.Index{0, 1, 2}, owned.Kitties, "owned all")
	assert.False(t, owned.More, "more")

	assert.Equal(t, fault.ErrInvalidCount, k.Owned(&rpckitties.OwnedArguments{Owner: owner, Count: 0}, &owned), "zero count")

	var lineage rpckitties.LineageReply
	assert.Nil(t, k.Lineage(&rpckitties.IdArguments{Id: 0}, &lineage), "lineage")
	assert.Equal(t, []kitty.Index{}, lineage.Parents, "parents")
	assert.Equal(t, []kitty.Index{}, lineage.Children, "children")
}

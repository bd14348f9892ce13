// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitties

import (
	"github.com/bitmark-inc/logger"
	"github.com/sasha-s/go-deadlock"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/currency"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/kitty"
	"github.com/bitmark-inc/kittiesd/randomness"
	"github.com/bitmark-inc/kittiesd/registry"
	"github.com/bitmark-inc/kittiesd/storage"
)

// Service - the market and breeding implementation of Kitties
type Service struct {
	sync     deadlock.Mutex
	log      *logger.L
	registry *registry.Registry
	currency currency.Currency
	random   randomness.Source
	emitter  Emitter
	stake    uint64
}

// New - create the service
//
// stake is the amount locked against each owned kitty
func New(reg *registry.Registry, cur currency.Currency, random randomness.Source, emitter Emitter, stake uint64) *Service {
	return &Service{
		log:      logger.New("kitties"),
		registry: reg,
		currency: cur,
		random:   random,
		emitter:  emitter,
		stake:    stake,
	}
}

// Stake - amount locked per kitty
func (s *Service) Stake() uint64 {
	return s.stake
}

// Create - mint a kitty with random dna for the caller
func (s *Service) Create(origin *Origin) (kitty.Index, error) {
	id := kitty.Index(0)
	err := s.call("create", origin, func(trx storage.Transaction) (Event, error) {
		if err := s.checkBalance(trx, origin.Caller); nil != err {
			return nil, err
		}

		dna := s.selector(origin)

		var err error
		id, err = s.registry.Mint(trx, origin.Caller, dna)
		if nil != err {
			return nil, err
		}

		err = s.currency.SetLock(trx, LockId(id), origin.Caller, s.stake, stakeReasons)
		if nil != err {
			return nil, err
		}
		return Created{Owner: origin.Caller, Id: id}, nil
	})
	return id, err
}

// Breed - mint a child of two of the caller's kitties
func (s *Service) Breed(origin *Origin, parent1 kitty.Index, parent2 kitty.Index) (kitty.Index, error) {
	id := kitty.Index(0)
	err := s.call("breed", origin, func(trx storage.Transaction) (Event, error) {
		if err := s.checkBalance(trx, origin.Caller); nil != err {
			return nil, err
		}

		var err error
		id, err = s.registry.Breed(trx, origin.Caller, parent1, parent2, s.selector(origin))
		if nil != err {
			return nil, err
		}

		err = s.currency.SetLock(trx, LockId(id), origin.Caller, s.stake, stakeReasons)
		if nil != err {
			return nil, err
		}
		return Breeded{Owner: origin.Caller, Id: id}, nil
	})
	return id, err
}

// Transfer - give a kitty to another account, withdrawing any listing
func (s *Service) Transfer(origin *Origin, to *account.Account, id kitty.Index) error {
	return s.call("transfer", origin, func(trx storage.Transaction) (Event, error) {
		if nil == to {
			return nil, fault.ErrInvalidAccount
		}
		if !s.registry.Owns(trx, origin.Caller, id) {
			return nil, fault.ErrRequireOwner
		}
		if err := s.checkBalance(trx, origin.Caller); nil != err {
			return nil, err
		}

		// a listing belongs to the owner who set it
		s.registry.SetPrice(trx, id, nil)

		err := s.move(trx, origin.Caller, to, id)
		if nil != err {
			return nil, err
		}
		return Transferred{From: origin.Caller, To: to, Id: id}, nil
	})
}

// Ask - list a kitty for sale, nil price withdraws the listing
func (s *Service) Ask(origin *Origin, id kitty.Index, price *uint64) error {
	return s.call("ask", origin, func(trx storage.Transaction) (Event, error) {
		if !s.registry.Owns(trx, origin.Caller, id) {
			return nil, fault.ErrRequireOwner
		}
		s.registry.SetPrice(trx, id, price)

		var listed *uint64
		if nil != price {
			p := *price
			listed = &p
		}
		return Ask{Owner: origin.Caller, Id: id, Price: listed}, nil
	})
}

// Buy - purchase a listed kitty
//
// the buyer pays the listed price even when offering more
func (s *Service) Buy(origin *Origin, id kitty.Index, offered uint64) error {
	return s.call("buy", origin, func(trx storage.Transaction) (Event, error) {
		owner, ok := s.registry.OwnerOf(trx, id)
		if !ok {
			return nil, fault.ErrInvalidKittyId
		}
		price, ok := s.registry.Price(trx, id)
		if !ok {
			return nil, fault.ErrNotForSale
		}
		if offered < price {
			return nil, fault.ErrPriceTooLow
		}

		err := s.currency.Transfer(trx, origin.Caller, owner, price, true)
		if nil != err {
			return nil, err
		}

		s.registry.SetPrice(trx, id, nil)

		err = s.move(trx, owner, origin.Caller, id)
		if nil != err {
			return nil, err
		}
		return Sold{Seller: owner, Buyer: origin.Caller, Id: id, Price: price}, nil
	})
}

// run one call in its own transaction
func (s *Service) call(name string, origin *Origin, f func(trx storage.Transaction) (Event, error)) error {
	if nil == origin || nil == origin.Caller {
		return fault.ErrRequiredIdentity
	}

	s.sync.Lock()
	defer s.sync.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		s.log.Errorf("%s: begin transaction error: %s", name, err)
		return err
	}

	event, err := f(trx)
	if nil != err {
		trx.Abort()
		s.log.Infof("%s: caller: %s  index: %d  rejected: %s", name, origin.Caller, origin.Index, err)
		return err
	}

	err = trx.Commit()
	if nil != err {
		s.log.Criticalf("%s: commit error: %s", name, err)
		return err
	}

	s.log.Infof("%s: caller: %s  index: %d  ok", name, origin.Caller, origin.Index)
	s.emitter.Emit(event)
	return nil
}

func (s *Service) checkBalance(rd storage.Reader, caller *account.Account) error {
	if s.currency.FreeBalance(rd, caller) < s.stake {
		return fault.ErrBalanceNotEnough
	}
	return nil
}

func (s *Service) selector(origin *Origin) kitty.DNA {
	return randomness.Selector(s.random.RandomSeed(), origin.Caller, origin.Index)
}

// change owner and carry the stake lock along
func (s *Service) move(trx storage.Transaction, from *account.Account, to *account.Account, id kitty.Index) error {
	err := s.registry.TransferOwnership(trx, from, to, id)
	if nil != err {
		return err
	}

	lock := LockId(id)
	err = s.currency.RemoveLock(trx, lock, to)
	if nil != err {
		return err
	}
	err = s.currency.SetLock(trx, lock, to, s.stake, stakeReasons)
	if nil != err {
		return err
	}
	if from.Equal(to) {
		return nil
	}
	return s.currency.RemoveLock(trx, lock, from)
}

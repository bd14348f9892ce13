// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Cache - pending writes of the open transaction
type Cache interface {
	Get(string) ([]byte, CacheState)
	Set(dbOperation, string, []byte)
	Items() map[string]CacheItem
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

// CacheState - result of a cache lookup
type CacheState int

// lookup results
const (
	CacheMiss CacheState = iota
	CachePut
	CacheDeleted
)

// CacheItem - one pending write
type CacheItem struct {
	Delete bool
	Value  []byte
}

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

// entries must survive until commit or abort
func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get - a deleted key is reported as CacheDeleted so that the
// database is not consulted for it
func (c *dbCache) Get(key string) ([]byte, CacheState) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, CacheMiss
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, CacheDeleted
	}

	return data.value, CachePut
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

// Items - final state of every key written in the transaction
func (c *dbCache) Items() map[string]CacheItem {
	items := c.cache.Items()
	result := make(map[string]CacheItem, len(items))
	for key, item := range items {
		data := item.Object.(cacheData)
		result[key] = CacheItem{
			Delete: dbDelete == data.op,
			Value:  data.value,
		}
	}
	return result
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}

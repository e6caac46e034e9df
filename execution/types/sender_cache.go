// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"context"
	"fmt"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/thortx/common"
)

type senders struct {
	origin   common.Address
	gasPayer *common.Address
}

// SenderCache memoizes recovered addresses keyed by the transaction hash,
// which covers the signature. Entries are written once per key and a race
// only computes the same value twice.
type SenderCache struct {
	recent *lru.Cache[common.Hash, senders]
}

func NewSenderCache(size int) (*SenderCache, error) {
	recent, err := lru.New[common.Hash, senders](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender LRU cache: %w", err)
	}
	return &SenderCache{recent: recent}, nil
}

func (c *SenderCache) lookup(tx *Transaction) (senders, error) {
	key, err := tx.Hash()
	if err != nil {
		return senders{}, err
	}
	if s, ok := c.recent.Get(key); ok {
		return s, nil
	}
	var s senders
	if s.origin, err = tx.Origin(); err != nil {
		return senders{}, err
	}
	if tx.IsDelegated() && tx.IsSigned() {
		payer, err := tx.GasPayer()
		if err != nil {
			return senders{}, err
		}
		s.gasPayer = &payer
	}
	c.recent.Add(key, s)
	return s, nil
}

// Origin is Transaction.Origin through the cache.
func (c *SenderCache) Origin(tx *Transaction) (common.Address, error) {
	s, err := c.lookup(tx)
	if err != nil {
		return common.Address{}, err
	}
	return s.origin, nil
}

// GasPayer is Transaction.GasPayer through the cache.
func (c *SenderCache) GasPayer(tx *Transaction) (common.Address, error) {
	if !tx.IsDelegated() || !tx.IsSigned() {
		return tx.GasPayer()
	}
	s, err := c.lookup(tx)
	if err != nil {
		return common.Address{}, err
	}
	return *s.gasPayer, nil
}

func (c *SenderCache) Len() int { return c.recent.Len() }

// DecodeTransactions decodes raws in parallel. When cache is not nil the
// senders of signed transactions are recovered into it as well.
func DecodeTransactions(ctx context.Context, raws [][]byte, cache *SenderCache) ([]*Transaction, error) {
	txs := make([]*Transaction, len(raws))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range raws {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tx, err := DecodeTransaction(raws[i])
			if err != nil {
				return fmt.Errorf("transaction %d: %w", i, err)
			}
			if cache != nil && tx.signature != nil {
				if _, err := cache.lookup(tx); err != nil {
					return fmt.Errorf("transaction %d: %w", i, err)
				}
			}
			txs[i] = tx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return txs, nil
}

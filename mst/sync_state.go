// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import (
	"errors"
	"time"

	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/trabucador/iroha/cryptography"
	"github.com/trabucador/iroha/vanilla/synckit"
)

// SyncState is what a node actually holds: a single MstState instance
// protected by one exclusive lock (spec §5's single-writer model). Every
// mutating operation takes the lock for its full duration; reads take it
// shared. No network I/O happens inside the lock; signature verification
// does, since MstState.Insert verifies every incoming signature itself.
//
// The lock is go-deadlock's drop-in sync.RWMutex, which turns a lock-order
// violation between a node's SyncState and any other lock in the process
// into an immediate, diagnosable failure instead of a production hang —
// valuable here because gossip fan-out means many goroutines contend for
// this exact lock.
type SyncState struct {
	mu          synckit.RWLocker
	state       *MstState
	observer    Observer
	maxInflight int // 0 means unbounded
}

// NewSyncState wraps policy/verifier in a lockable MstState. maxInflight is
// the spec §6 max_inflight_batches cap; 0 disables it.
func NewSyncState(policy CompletionPolicy, verifier cryptography.Service, maxInflight int) *SyncState {
	return &SyncState{
		mu:          &deadlock.RWMutex{},
		state:       Empty(policy, verifier),
		observer:    NopObserver{},
		maxInflight: maxInflight,
	}
}

// NewSyncStateWithLocker wraps policy/verifier in a lockable MstState using
// an explicit RWLocker instead of the default deadlock-detecting one — a
// test driving a single SyncState from one goroutine can pass
// synckit.DummyLocker() to skip lock-order bookkeeping entirely.
func NewSyncStateWithLocker(policy CompletionPolicy, verifier cryptography.Service, maxInflight int, locker synckit.RWLocker) *SyncState {
	s := NewSyncState(policy, verifier, maxInflight)
	s.mu = locker
	return s
}

func (s *SyncState) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// Insert runs the spec §4.4 algorithm under the exclusive lock, then fires
// the appropriate event after releasing it (events are not delivered while
// the lock is held, so an observer calling back into SyncState cannot
// deadlock). The locked section is a deferred-unlock closure so a panicking
// CompletionPolicy — recovered into an ErrPolicyError by MstState.Insert
// itself — can never leave s.mu held.
func (s *SyncState) Insert(batch *Batch) error {
	result, err := func() (InsertResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.maxInflight > 0 && s.state.Len() >= s.maxInflight {
			if _, exists := s.state.entries[batch.Identity()]; !exists {
				return InsertResult{}, ErrOverloaded
			}
		}
		return s.state.Insert(batch)
	}()
	if err != nil {
		return err
	}
	s.dispatch(result)
	return nil
}

// Merge applies every batch from other's snapshot, firing one OnCompleted
// per completed batch and a single OnUpdated if any other batch changed,
// same dispatch discipline as Insert. The whole incoming state is
// merged atomically with respect to other SyncState operations: a
// concurrent Batches()/Insert() call never observes a partial merge
// (spec §5's cancellation-safety requirement, restated for merge: either
// all of other lands or an external cancellation happens before Merge is
// called at all — Merge itself never blocks mid-way). A PolicyError aborts
// the locked section immediately (via the deferred unlock) and is returned
// without firing any event for the partial work already done.
func (s *SyncState) Merge(other *MstState) error {
	var completed []*Batch
	var anyUpdate bool

	err := func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		for _, batch := range other.Batches() {
			result, err := s.state.Insert(batch)
			if err != nil {
				if errors.Is(err, ErrPolicyError) {
					return err
				}
				continue
			}
			if result.Completed != nil {
				completed = append(completed, result.Completed)
			} else if result.Updated {
				anyUpdate = true
			}
		}
		return nil
	}()
	if err != nil {
		return err
	}

	for _, b := range completed {
		s.observer.OnCompleted(b)
	}
	if anyUpdate {
		s.observer.OnUpdated()
	}
	return nil
}

// EraseByTime evicts everything due by now (per policy.IsExpired, grace
// included) and fires one OnExpired per removed batch.
func (s *SyncState) EraseByTime(now time.Time) error {
	expired, err := func() (*MstState, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.state.EraseByTime(now)
	}()
	if err != nil {
		return err
	}

	for _, b := range expired.Batches() {
		s.observer.OnExpired(b)
	}
	return nil
}

// Snapshot returns a deep copy of the current state, safe to read or gossip
// after the lock is released.
func (s *SyncState) Snapshot() *MstState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *SyncState) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsEmpty()
}

func (s *SyncState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Len()
}

func (s *SyncState) dispatch(result InsertResult) {
	switch {
	case result.Completed != nil:
		s.observer.OnCompleted(result.Completed)
	case result.Updated:
		s.observer.OnUpdated()
	}
}

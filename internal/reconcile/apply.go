package reconcile

import "github.com/adawatch/adawatch/internal/feed"

// Apply folds one classified event into the store. Each call is a single
// atomic mutation: readers either see the state before the event or after
// it, never a partial application. Events are applied strictly in arrival
// order; the store never reorders by timestamp, slot or causality.
func (s *Store) Apply(event feed.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := event.(type) {
	case feed.BlockEvent:
		s.applyBlock(e)
	case feed.TransactionEvent:
		s.applyTransaction(e)
	case feed.TxInputEvent:
		group := s.ensureGroup(e.Timestamp)
		group.Inputs = append(group.Inputs, e)
	case feed.TxOutputEvent:
		group := s.ensureGroup(e.Timestamp)
		group.Outputs = append(group.Outputs, e)
	case feed.RollBackEvent:
		s.applyRollBack(e)
	case feed.StatsSnapshot:
		// Snapshots replace wholesale and never touch the groups, so
		// replaying an identical one is a no-op in effect.
		s.stats = e
		s.hasStats = true
	}
}

// applyBlock records the block header in its group and refreshes the
// recent-blocks projection. A second header for the same timestamp
// overwrites the first: the feed only resends a key as a correction.
func (s *Store) applyBlock(e feed.BlockEvent) {
	group := s.ensureGroup(e.Timestamp)

	block := e
	group.Block = &block

	s.recentBlocks = prependBounded(s.recentBlocks, e)
}

// applyTransaction appends the transaction to its group and refreshes the
// recent-transactions projection.
func (s *Store) applyTransaction(e feed.TransactionEvent) {
	group := s.ensureGroup(e.Timestamp)
	group.Transactions = append(group.Transactions, e)

	s.recentTransactions = prependBounded(s.recentTransactions, e)
}

// applyRollBack deletes every group whose resolved block sits above the
// rollback slot, transactions and all. Groups still waiting for their header
// have no slot to compare, so they survive; only confirmed blocks are
// purged. Group count is bounded, so the full scan stays cheap.
func (s *Store) applyRollBack(e feed.RollBackEvent) {
	for key, group := range s.groups {
		if group.Block != nil && group.Block.Slot > e.BlockSlot {
			delete(s.groups, key)
		}
	}
}

// prependBounded inserts event at the front of the projection and truncates
// it to RecentLimit, silently evicting the oldest entry.
func prependBounded[T any](projection []T, event T) []T {
	projection = append([]T{event}, projection...)
	if len(projection) > RecentLimit {
		projection = projection[:RecentLimit]
	}

	return projection
}

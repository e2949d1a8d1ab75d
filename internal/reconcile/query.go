package reconcile

import (
	"sort"

	"github.com/adawatch/adawatch/internal/feed"
)

// DefaultPageSize is the group count per page served by GroupPage when the
// caller passes a non-positive size.
const DefaultPageSize = 10

// TransactionDetail pairs a transaction with the inputs and outputs the feed
// attributed to it, resolved at read time by matching tx_hash within the
// transaction's group.
type TransactionDetail struct {
	Transaction feed.TransactionEvent
	Inputs      []feed.TxInputEvent
	Outputs     []feed.TxOutputEvent
}

// RecentBlocks returns the bounded recent-blocks projection, most recent
// first. The slice is a copy; mutating it does not affect the store.
func (s *Store) RecentBlocks() []feed.BlockEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]feed.BlockEvent(nil), s.recentBlocks...)
}

// RecentTransactions returns the bounded recent-transactions projection,
// most recent first. The slice is a copy.
func (s *Store) RecentTransactions() []feed.TransactionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]feed.TransactionEvent(nil), s.recentTransactions...)
}

// Stats returns the latest snapshot and whether one has arrived yet.
func (s *Store) Stats() (feed.StatsSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stats, s.hasStats
}

// Groups returns every resident block group ordered by descending timestamp
// (newest first). Groups and their sequences are copied, so callers hold a
// consistent snapshot that later mutations cannot change under them.
func (s *Store) Groups() []BlockGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]BlockGroup, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, copyGroup(group))
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key > groups[j].Key
	})

	return groups
}

// GroupPage returns one page of the descending-timestamp group ordering.
// Pages are 1-based; page values below one read the first page, and sizes
// below one fall back to DefaultPageSize. An out-of-range page is empty.
func (s *Store) GroupPage(page, size int) []BlockGroup {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	groups := s.Groups()

	start := (page - 1) * size
	if start >= len(groups) {
		return nil
	}

	end := min(start+size, len(groups))
	return groups[start:end]
}

// Group returns a copy of the group at the given timestamp key, and whether
// it exists.
func (s *Store) Group(key int64) (BlockGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[key]
	if !ok {
		return BlockGroup{}, false
	}

	return copyGroup(group), true
}

// TransactionDetail resolves the transaction with txHash inside the group at
// key, attaching every input and output bearing the same tx_hash. The
// lookup is a linear scan of the group's sequences; groups are bounded, so
// no secondary index is kept. The boolean is false when the group or the
// transaction is unknown.
func (s *Store) TransactionDetail(key int64, txHash string) (TransactionDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[key]
	if !ok {
		return TransactionDetail{}, false
	}

	detail := TransactionDetail{}

	found := false
	for _, tx := range group.Transactions {
		if tx.Hash == txHash {
			detail.Transaction = tx
			found = true
			break
		}
	}
	if !found {
		return TransactionDetail{}, false
	}

	for _, input := range group.Inputs {
		if input.TxHash == txHash {
			detail.Inputs = append(detail.Inputs, input)
		}
	}
	for _, output := range group.Outputs {
		if output.TxHash == txHash {
			detail.Outputs = append(detail.Outputs, output)
		}
	}

	return detail, true
}

// copyGroup deep-copies a group so readers never share slices or the block
// pointer with the store. Callers must hold at least the read lock.
func copyGroup(group *BlockGroup) BlockGroup {
	copied := BlockGroup{
		Key:          group.Key,
		Transactions: append([]feed.TransactionEvent(nil), group.Transactions...),
		Inputs:       append([]feed.TxInputEvent(nil), group.Inputs...),
		Outputs:      append([]feed.TxOutputEvent(nil), group.Outputs...),
	}

	if group.Block != nil {
		block := *group.Block
		copied.Block = &block
	}

	return copied
}

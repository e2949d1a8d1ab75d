// Package reconcile maintains the in-memory picture of recent chain
// activity. It folds the unordered event feed into block groups keyed by
// timestamp, keeps bounded most-recent-first projections for display, tracks
// the latest feed statistics snapshot, and purges invalidated groups when
// the chain rolls back.
//
// The upstream feed joins a block with its transactions through a shared
// second-resolution timestamp. Two blocks produced within the same second
// would collide on that key; the store keeps the upstream contract rather
// than silently regrouping by slot.
package reconcile

import (
	"sync"

	"github.com/adawatch/adawatch/internal/feed"
)

// RecentLimit bounds the recent-blocks and recent-transactions projections.
// Both hold at most this many entries, most recent first.
const RecentLimit = 10

// defaultMaxResidentGroups caps resident block groups when no option
// overrides it. Rollback aside, the upstream feed never retires groups, so
// the store evicts the oldest ones beyond this bound.
const defaultMaxResidentGroups = 512

// BlockGroup aggregates one block and every transaction, input and output
// sharing its grouping timestamp. Block is nil until (and unless) the header
// event arrives; the other sequences are in arrival order.
type BlockGroup struct {
	Key          int64
	Block        *feed.BlockEvent
	Transactions []feed.TransactionEvent
	Inputs       []feed.TxInputEvent
	Outputs      []feed.TxOutputEvent
}

// Store is the single owner of reconciled feed state. Apply is the only
// mutation entry point; every accessor takes a read lock and returns copies,
// so views can never drift from or corrupt the store.
type Store struct {
	mu sync.RWMutex

	groups map[int64]*BlockGroup

	recentBlocks       []feed.BlockEvent
	recentTransactions []feed.TransactionEvent

	stats    feed.StatsSnapshot
	hasStats bool

	maxResidentGroups int
}

// Option adjusts store construction.
type Option func(*Store)

// WithMaxResidentGroups overrides the resident block-group cap. Values below
// one are ignored.
func WithMaxResidentGroups(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxResidentGroups = n
		}
	}
}

// New builds an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		groups:            make(map[int64]*BlockGroup),
		maxResidentGroups: defaultMaxResidentGroups,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ensureGroup returns the group for key, creating it lazily on first use.
// Callers must hold the write lock.
func (s *Store) ensureGroup(key int64) *BlockGroup {
	group, ok := s.groups[key]
	if !ok {
		group = &BlockGroup{Key: key}
		s.groups[key] = group
		s.evictOverflowingGroups()
	}

	return group
}

// evictOverflowingGroups removes the oldest-keyed groups until the resident
// count is back under the cap. Callers must hold the write lock.
func (s *Store) evictOverflowingGroups() {
	for len(s.groups) > s.maxResidentGroups {
		oldest, found := int64(0), false
		for key := range s.groups {
			if !found || key < oldest {
				oldest, found = key, true
			}
		}

		delete(s.groups, oldest)
	}
}

// Package cache holds synthesized lessons keyed by request.
//
// FIFO is the bounded in-process store. Eviction follows insertion order,
// not access order: when the cache is full the entry that was inserted
// first is removed, however recently it was read. Tiered layers an
// optional remote store (Redis in production) behind a FIFO.
package cache

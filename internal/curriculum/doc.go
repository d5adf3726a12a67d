// Package curriculum provides read-only access to the 366-day curriculum.
//
// Records are grouped into monthly shards of a leap year. A Store loads a
// shard from its ShardSource the first time any of its days is requested
// and keeps it for the life of the process. Lookups never fail: when a
// shard cannot be read or a day has no entry, Store.Get returns a fixed
// fallback record flagged with IsFallback, and that record is never
// memoized as if it were authoritative.
package curriculum

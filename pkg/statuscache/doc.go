// Package statuscache is a TTL cache for provider availability with
// activity-gated background refresh.
//
// Invariants:
// - A read past expiry is a miss and evicts the entry.
// - ForceRefresh marks every entry already-expired instead of deleting it,
//   so stale data stays servable as a fallback until refreshed.
// - Background refresh touches only already-expired keys, and only while a
//   recent activity ping is in effect.
package statuscache

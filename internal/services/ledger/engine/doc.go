// Package engine runs ledger commands against the season and filing
// registries: it guards block height, decides, appends the resulting events
// to the journal, and folds them into memory.
//
// The journal is the only persisted state. Open rebuilds both registries by
// replaying it in sequence order, so a failed append never leaves memory
// ahead of storage.
package engine

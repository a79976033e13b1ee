// Package sqlite provides the SQLite-backed millionaire store.
//
// Reads and writes share one set of query helpers that run either on the
// database handle or inside a transaction opened by WithinTx. Transactions
// begin IMMEDIATE so concurrent gameplay writers serialize on the database
// lock instead of failing at commit.
package sqlite

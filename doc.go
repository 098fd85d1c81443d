// Package funance implements a per-account lot-accounting ledger for a
// brokerage-style holding account.
//
// Given a chronological stream of trade and income events, it maintains, per
// traded symbol, the currently open purchase lots, the realized sales matched
// against them (FIFO), the income events generated by the position, and
// derived quantities such as quantity held, cost basis, realized profit and
// annualized return.
//
// All share quantities and monetary amounts are exact decimals, so cost basis
// and realized profit never drift. Replay is strictly chronological and
// deduplicated: re-ingesting an overlapping event stream is a no-op.
//
// The engine is synchronous and single-threaded: load a PositionSet snapshot,
// apply one document's ordered events while holding exclusive ownership, then
// persist and discard. None of the structures are safe for concurrent
// mutation.
package funance

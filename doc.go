// Package folioscout computes the derived history of an investment
// portfolio: a daily series of valuation, contribution-adjusted gain and
// time-weighted rate of return, together with per-holding average-cost
// position accounting.
//
// The package is a pure computation engine. It replays a date-ordered trade
// ledger against sparse per-instrument price histories, forward-filling
// prices and contributions, and emits one DailySnapshot per net-worth mark
// date. An existing persisted series can be extended incrementally with
// ExtendSnapshotSeries without recomputing history.
//
// Everything here is single-threaded: the computation is a strict
// sequential fold over date-ordered events, and reordering would corrupt the
// average-cost and chained-return invariants. Concurrency lives at the edges,
// in the quotes package that fetches price histories before any computation
// starts.
package folioscout

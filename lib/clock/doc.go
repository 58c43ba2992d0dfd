// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for code that ticks.
//
// Production code holds a [Clock] and calls NewTicker on it instead of
// time.NewTicker. [Real] is backed by the time package; [Fake] only
// moves when Advance is called, so periodic behavior (the watchdog
// heartbeat) can be tested without sleeping.
//
// A goroutine that creates a ticker on a [FakeClock] races with the
// test that advances it. [FakeClock.WaitForTickers] blocks until the
// expected number of tickers exist, which removes that race.
package clock

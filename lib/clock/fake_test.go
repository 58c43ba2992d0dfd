// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestFakeNowAdvances(t *testing.T) {
	c := Fake(epoch)
	c.Advance(90 * time.Second)
	if got, want := c.Now(), epoch.Add(90*time.Second); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestFakeTickerFiresOnDeadline(t *testing.T) {
	c := Fake(epoch)
	ticker := c.NewTicker(10 * time.Second)
	defer ticker.Stop()

	c.Advance(9 * time.Second)
	select {
	case tick := <-ticker.C:
		t.Fatalf("unexpected tick at %v", tick)
	default:
	}

	c.Advance(time.Second)
	select {
	case tick := <-ticker.C:
		if want := epoch.Add(10 * time.Second); !tick.Equal(want) {
			t.Errorf("tick = %v, want %v", tick, want)
		}
	default:
		t.Fatal("expected a tick after reaching the deadline")
	}
}

func TestFakeTickerDropsMissedTicks(t *testing.T) {
	c := Fake(epoch)
	ticker := c.NewTicker(time.Second)
	defer ticker.Stop()

	c.Advance(5 * time.Second)
	<-ticker.C
	select {
	case <-ticker.C:
		t.Fatal("missed intervals should not queue extra ticks")
	default:
	}

	c.Advance(time.Second)
	select {
	case <-ticker.C:
	default:
		t.Fatal("expected the next interval to tick")
	}
}

func TestFakeTickerStop(t *testing.T) {
	c := Fake(epoch)
	ticker := c.NewTicker(time.Second)
	if got := c.Tickers(); got != 1 {
		t.Fatalf("Tickers() = %d, want 1", got)
	}
	ticker.Stop()
	if got := c.Tickers(); got != 0 {
		t.Fatalf("Tickers() after Stop = %d, want 0", got)
	}
	c.Advance(time.Minute)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestWaitForTickers(t *testing.T) {
	c := Fake(epoch)
	done := make(chan struct{})
	go func() {
		c.WaitForTickers(1)
		close(done)
	}()
	ticker := c.NewTicker(time.Second)
	defer ticker.Stop()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForTickers did not return after a ticker was registered")
	}
}

package main

import (
	"testing"
	"time"
)

func TestResolveSeed(t *testing.T) {
	clock := time.Unix(1700000000, 42)
	now := func() time.Time { return clock }

	tests := []struct {
		flag int64
		want int64
	}{
		{0, 0},
		{17, 17},
		{-2, -2},
		{randomSeed, clock.UnixNano()},
	}
	for _, tt := range tests {
		if got := resolveSeed(tt.flag, now); got != tt.want {
			t.Errorf("resolveSeed(%d) = %d, want %d", tt.flag, got, tt.want)
		}
	}
}

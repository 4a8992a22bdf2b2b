package info

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUptime(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		elapsed     time.Duration
		wantSeconds int64
		wantHuman   string
	}{
		{"zero", 0, 0, "0 hours, 0 minutes"},
		{"sub second truncates", 999 * time.Millisecond, 0, "0 hours, 0 minutes"},
		{"six minutes", 360 * time.Second, 360, "0 hours, 6 minutes"},
		{"one hour one minute one second", 3661 * time.Second, 3661, "1 hours, 1 minutes"},
		{"a day and a half", 36 * time.Hour, 129600, "36 hours, 0 minutes"},
		{"clock behind start", -5 * time.Second, 0, "0 hours, 0 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seconds, human := Uptime(start, start.Add(tt.elapsed))
			assert.Equal(t, tt.wantSeconds, seconds)
			assert.Equal(t, tt.wantHuman, human)
		})
	}
}

func TestUptimeTracksWallClock(t *testing.T) {
	start := time.Now()
	time.Sleep(10 * time.Millisecond)

	seconds, _ := Uptime(start, time.Now())
	elapsed := time.Since(start).Seconds()

	assert.GreaterOrEqual(t, seconds, int64(0))
	assert.InDelta(t, elapsed, float64(seconds), 1)
}

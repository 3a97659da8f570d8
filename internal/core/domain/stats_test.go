package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunStats_Throughput(t *testing.T) {
	stats := RunStats{TotalChunks: 120, TotalTime: 30 * time.Second}
	assert.InDelta(t, 4.0, stats.Throughput(), 0.001)

	assert.Zero(t, RunStats{TotalChunks: 10}.Throughput(), "zero elapsed time yields zero throughput")
}

func TestRunStats_AveragePerDocument(t *testing.T) {
	stats := RunStats{Processed: 4, TotalTime: 20 * time.Second}
	assert.Equal(t, 5*time.Second, stats.AveragePerDocument())

	assert.Zero(t, RunStats{TotalTime: time.Minute}.AveragePerDocument())
}

package domain

import "time"

// RunStats aggregates the outcome of one indexing run.
// It is owned by the orchestrator's collector and only handed out
// after the run completes.
type RunStats struct {
	// TotalDocuments is the number of indexable documents discovered.
	TotalDocuments int

	// Processed is the number of documents fully indexed.
	Processed int

	// Failed is the number of documents whose pipeline failed.
	Failed int

	// TotalChunks is the number of chunks upserted across all documents.
	TotalChunks int

	// TotalTime is the wall-clock duration of the run.
	TotalTime time.Duration

	// Errors holds one message per failed document.
	Errors []string
}

// Throughput returns indexed chunks per second for the run.
func (s RunStats) Throughput() float64 {
	secs := s.TotalTime.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.TotalChunks) / secs
}

// AveragePerDocument returns the mean processing time per successful document.
func (s RunStats) AveragePerDocument() time.Duration {
	if s.Processed == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Processed)
}

package catalog

import (
	"context"
	"fmt"

	"catalog-backend/internal/components/assert"
	"catalog-backend/internal/components/telemetry"
)

const BatchSize = 100

const (
	report_writer_batch = "writer.batch"
	report_writer_total = "writer.written"
)

// Sink persists courses, replacing any existing course with the same code.
type Sink interface {
	UpsertCourses(ctx context.Context, courses []Course) error
}

type WriteResult struct {
	Batches       int
	FailedBatches int
	Written       int
}

// Writer upserts courses in fixed size batches. Every batch is independent,
// a failed batch is reported and the remaining batches are still written.
type Writer struct {
	sink      Sink
	batchSize int
	tel       telemetry.API
}

func NewWriter(sink Sink, tel telemetry.API) Writer {
	assert.NotNil(sink)
	assert.NotNil(tel)

	return newWriter(sink, BatchSize, tel)
}

func newWriter(sink Sink, batchSize int, tel telemetry.API) Writer {
	assert.Positive(batchSize)

	return Writer{
		sink:      sink,
		batchSize: batchSize,
		tel:       telemetry.NewScopedAPI("catalog", tel),
	}
}

func (w Writer) Write(ctx context.Context, courses []Course) WriteResult {
	var result WriteResult
	total := (len(courses) + w.batchSize - 1) / w.batchSize

	for start := 0; start < len(courses); start += w.batchSize {
		end := min(start+w.batchSize, len(courses))
		batch := courses[start:end]
		result.Batches++

		err := w.sink.UpsertCourses(ctx, batch)
		if err != nil {
			result.FailedBatches++
			w.tel.ReportBroken(
				report_writer_batch,
				fmt.Errorf("upsert batch %d/%d: %w", result.Batches, total, err),
				len(batch),
			)
			continue
		}

		result.Written += len(batch)
		w.tel.ReportDebug(
			"wrote batch",
			fmt.Sprintf("%d/%d", result.Batches, total),
			fmt.Sprintf("%d/%d courses", result.Written, len(courses)),
		)
	}

	w.tel.ReportCount(report_writer_total, int64(result.Written))
	return result
}

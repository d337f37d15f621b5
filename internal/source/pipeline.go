package source

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/loadstack/mongotap/pkg/utils"
)

// Pipeline drives one extraction run: pull chunks from the extractor, hand
// them to the loader, and track the watermark for the next run. It is the
// host side of the incremental contract: the extractor only ever reads a
// watermark, the pipeline computes the new one.
type Pipeline struct {
	Extractor   Extractor
	Loader      Loader
	Incremental *Incremental
	DryRun      bool
}

// Stats summarizes a finished run. Watermark is nil when the run saw no
// documents, the policy is custom, or no incremental cursor was configured;
// callers should keep any previously stored watermark in that case.
type Stats struct {
	Documents int
	Chunks    int
	Watermark interface{}
	Elapsed   time.Duration
}

func NewPipeline(extractor Extractor, loader Loader, incremental *Incremental, dryRun bool) *Pipeline {
	return &Pipeline{
		Extractor:   extractor,
		Loader:      loader,
		Incremental: incremental,
		DryRun:      dryRun,
	}
}

// Run extracts until the terminal empty chunk. Any extractor or loader fault
// aborts the run and is returned as-is; chunks already loaded stay loaded.
// Rollback, if wanted, is the destination's concern.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	stats := Stats{}

	stream, err := p.Extractor.Documents(ctx)
	if err != nil {
		return stats, err
	}
	defer stream.Close(ctx)

	log.Info().Bool("dry_run", p.DryRun).Msg("starting extraction")

	for {
		chunk, err := stream.NextChunk(ctx)
		if err != nil {
			log.Error().Err(err).Int("documents", stats.Documents).Msg("extraction failed")
			return stats, err
		}
		if len(chunk) == 0 {
			break
		}

		if p.DryRun {
			log.Info().Int("documents", len(chunk)).Msg("dry run: skipping load")
		} else if err := p.Loader.Load(ctx, chunk); err != nil {
			log.Error().Err(err).Int("documents", stats.Documents).Msg("load failed")
			return stats, err
		}

		stats.Chunks++
		stats.Documents += len(chunk)
		stats.Watermark = p.mergeWatermark(stats.Watermark, stream.CursorValues())

		rate := float64(stats.Documents) / time.Since(start).Seconds()
		log.Info().
			Int("chunk", stats.Chunks).
			Int("total", stats.Documents).
			Float64("docs_per_sec", rate).
			Msg("chunk loaded")
	}

	stats.Elapsed = time.Since(start)
	log.Info().
		Int("documents", stats.Documents).
		Int("chunks", stats.Chunks).
		Dur("elapsed", stats.Elapsed).
		Msg("extraction complete")
	return stats, nil
}

// mergeWatermark folds a chunk's raw cursor-field values into the running
// watermark. The values come from the stream pre-sanitization, so a merged
// ObjectID or Decimal128 watermark stays typed and the next run's filter
// compares like with like. Incomparable values are skipped rather than
// failing the run; the custom policy merges nothing because only the
// downstream consumer knows its comparison.
func (p *Pipeline) mergeWatermark(current interface{}, values []interface{}) interface{} {
	if p.Incremental == nil || p.Incremental.Policy == PolicyCustom {
		return nil
	}
	for _, value := range values {
		if value == nil {
			continue
		}
		if current == nil {
			current = value
			continue
		}
		cmp, err := utils.Compare(value, current)
		if err != nil {
			continue
		}
		if (p.Incremental.Policy == PolicyMax && cmp > 0) ||
			(p.Incremental.Policy == PolicyMin && cmp < 0) {
			current = value
		}
	}
	return current
}

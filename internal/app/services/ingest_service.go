package services

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
)

// IngestSource is one spreadsheet to load
type IngestSource struct {
	Name   string
	Reader io.Reader
}

// IngestResult summarises what was loaded from one source
type IngestResult struct {
	Source    string
	Offerings int64
	Locations int64
	Skipped   int
}

// IngestService loads spreadsheet exports into the store
type IngestService interface {
	Load(ctx context.Context, sources []IngestSource, replace bool) ([]IngestResult, error)
}

type ingestServiceImpl struct {
	tx        TxRunner
	offerings OfferingWriter
	locations LocationWriter
}

// NewIngestService creates a new ingest service instance
func NewIngestService(tx TxRunner, offerings OfferingWriter, locations LocationWriter) IngestService {
	return &ingestServiceImpl{tx: tx, offerings: offerings, locations: locations}
}

// Load parses every source, then writes all of them in a single transaction.
// With replace both tables are truncated first. Any failure leaves the store untouched.
func (s *ingestServiceImpl) Load(ctx context.Context, sources []IngestSource, replace bool) ([]IngestResult, error) {
	parsed := make([][]ParsedSheet, len(sources))
	for i, src := range sources {
		sheets, err := ParseWorkbook(src.Reader)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Name, err)
		}
		parsed[i] = sheets
	}

	results := make([]IngestResult, len(sources))
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if replace {
			if err := s.offerings.Truncate(ctx, tx); err != nil {
				return err
			}
			if err := s.locations.Truncate(ctx, tx); err != nil {
				return err
			}
		}

		for i, src := range sources {
			res := IngestResult{Source: src.Name}
			for _, sheet := range parsed[i] {
				switch sheet.Kind {
				case SheetLocations:
					if len(sheet.Locations) == 0 {
						continue
					}
					n, err := s.locations.BulkInsert(ctx, tx, sheet.Locations)
					if err != nil {
						return fmt.Errorf("%s/%s: %w", src.Name, sheet.Name, err)
					}
					res.Locations += n
				case SheetOfferings:
					res.Skipped += sheet.Skipped
					if len(sheet.Offerings) == 0 {
						continue
					}
					n, err := s.offerings.BulkInsert(ctx, tx, sheet.Offerings)
					if err != nil {
						return fmt.Errorf("%s/%s: %w", src.Name, sheet.Name, err)
					}
					res.Offerings += n
				default:
					logger.Warn().Str("source", src.Name).Str("sheet", sheet.Name).Msg("Sheet has no recognised headers, ignoring")
				}
			}
			results[i] = res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		logger.Info().
			Str("source", r.Source).
			Int64("offerings", r.Offerings).
			Int64("locations", r.Locations).
			Int("skipped", r.Skipped).
			Msg("Source loaded")
	}
	return results, nil
}

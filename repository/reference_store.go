package repository

import (
	"context"
	"io/fs"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("frt-offers/repository")

// CatalogSource hands out the current reference snapshot.
type CatalogSource interface {
	Current() *Catalog
}

// ReferenceStore publishes catalog snapshots. Readers call Current and never
// lock; Reload builds a new snapshot off to the side and swaps the pointer
// only when the new data is fully valid.
type ReferenceStore struct {
	source  fs.FS
	logger  *zap.Logger
	current atomic.Pointer[Catalog]

	// serializes reloads, readers are unaffected
	reloadMu sync.Mutex
}

// NewReferenceStore loads the initial snapshot from source. An error here
// means the process must not serve requests.
func NewReferenceStore(source fs.FS, logger *zap.Logger) (*ReferenceStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReferenceStore{source: source, logger: logger}
	if _, err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore wraps an already built catalog. It is used with fixture data
// and cannot be reloaded.
func NewStaticStore(cat *Catalog) *ReferenceStore {
	s := &ReferenceStore{logger: zap.NewNop()}
	s.current.Store(cat)
	return s
}

func (s *ReferenceStore) Current() *Catalog {
	return s.current.Load()
}

// Reload re-reads the source. On failure the previous snapshot stays active
// and the error is returned.
func (s *ReferenceStore) Reload(ctx context.Context) (*Catalog, error) {
	_, span := tracer.Start(ctx, "ReferenceStore.Reload")
	defer span.End()

	if s.source == nil {
		return s.Current(), nil
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	cat, err := LoadCatalog(s.source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("reference data rejected", zap.Error(err))
		return nil, err
	}

	previous := s.current.Swap(cat)
	for _, w := range cat.Warnings() {
		s.logger.Warn("reference data warning", zap.String("detail", w))
	}

	prevVersion := ""
	if previous != nil {
		prevVersion = previous.Version()
	}
	span.SetAttributes(
		attribute.String("catalog.version", cat.Version()),
		attribute.String("catalog.previous_version", prevVersion),
	)
	s.logger.Info("reference data loaded",
		zap.String("version", cat.Version()),
		zap.String("previous_version", prevVersion),
		zap.Int("load_ports", len(cat.loadPorts)),
		zap.Int("discharge_ports", len(cat.dischargePorts)),
		zap.Int("cargoes", len(cat.cargoes)),
		zap.Int("charterers", len(cat.charterers)),
		zap.Int("clauses", cat.ClauseCount()),
	)
	return cat, nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"frt-offers/domain"
	"frt-offers/repository"
)

var tracer = otel.Tracer("frt-offers/service")

type OfferService struct {
	store    repository.CatalogSource
	cache    repository.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewOfferService creates an OfferService reading reference data from store.
// cache may be nil, which disables result caching.
func NewOfferService(
	store repository.CatalogSource,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *OfferService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfferService{store: store, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Generate validates req and renders the firm offer. It either returns a
// complete result or an error, never partial text.
func (s *OfferService) Generate(ctx context.Context, req domain.OfferRequest) (domain.OfferResult, error) {
	ctx, span := tracer.Start(ctx, "OfferService.Generate")
	defer span.End()

	cat := s.store.Current()
	span.SetAttributes(
		attribute.String("offer.load_port", req.LoadPort),
		attribute.String("offer.discharge_port", req.DischargePort),
		attribute.String("offer.cargo", req.Cargo),
		attribute.String("catalog.version", cat.Version()),
	)

	key := cacheKey(cat.Version(), req)
	if cached, ok := s.cachedResult(ctx, key); ok {
		span.SetAttributes(attribute.Bool("offer.cache_hit", true))
		return cached, nil
	}

	vr, err := ValidateRequest(cat, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Debug("offer request rejected", zap.Error(err))
		return domain.OfferResult{}, err
	}

	sel := SelectClauses(vr.LoadPort, vr.DischargePort, vr.Cargo, vr.LaycanEnd)
	result, err := AssembleOffer(cat, vr, sel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("offer assembly failed", zap.Error(err))
		return domain.OfferResult{}, err
	}

	s.storeResult(ctx, key, result)

	s.logger.Info("offer generated",
		zap.String("route", result.Summary.Route),
		zap.String("port_type", string(result.Summary.PortType)),
		zap.Int("clauses", result.Summary.ClausesCount),
		zap.String("total_freight", result.Summary.TotalFreight.String()),
	)
	return result, nil
}

func (s *OfferService) cachedResult(ctx context.Context, key string) (domain.OfferResult, bool) {
	if s.cache == nil {
		return domain.OfferResult{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.OfferResult{}, false
	}
	var result domain.OfferResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Warn("discarding unreadable cached offer", zap.String("key", key), zap.Error(err))
		return domain.OfferResult{}, false
	}
	return result, true
}

// storeResult caches a rendered offer; failures are not critical.
func (s *OfferService) storeResult(ctx context.Context, key string, result domain.OfferResult) {
	if s.cache == nil {
		return
	}
	blob, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode offer for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(blob), s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache offer", zap.String("key", key), zap.Error(err))
	}
}

// cacheKey fingerprints the request under one catalog version, so a reload
// never serves offers rendered from older data.
func cacheKey(version string, req domain.OfferRequest) string {
	blob, _ := json.Marshal(req)
	return fmt.Sprintf("offer:%s:%016x", version, xxhash.Sum64(blob))
}

func (s *OfferService) ListLoadPorts(ctx context.Context) []domain.Port {
	return s.store.Current().LoadPorts()
}

func (s *OfferService) ListDischargePorts(ctx context.Context) []domain.Port {
	return s.store.Current().DischargePorts()
}

func (s *OfferService) ListCargoes(ctx context.Context) []domain.Cargo {
	return s.store.Current().Cargoes()
}

// ListCharterers returns every charterer with its primary company's name and
// OR SUB default resolved.
func (s *OfferService) ListCharterers(ctx context.Context) []domain.ChartererInfo {
	charterers := s.store.Current().Charterers()
	infos := make([]domain.ChartererInfo, 0, len(charterers))
	for _, ch := range charterers {
		info := domain.ChartererInfo{Charterer: ch, CompanyName: ch.ChartererName}
		if primary, ok := ch.PrimaryCompany(); ok {
			info.CompanyName = primary.LegalName
			info.OrSubDefault = primary.OrSubDefault
		}
		infos = append(infos, info)
	}
	return infos
}

// CatalogVersion reports the version of the active reference snapshot.
func (s *OfferService) CatalogVersion() string {
	return s.store.Current().Version()
}

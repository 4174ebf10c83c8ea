package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"frt-offers/data"
	"frt-offers/domain"
	"frt-offers/repository"
)

func loadCatalog(t *testing.T) *repository.Catalog {
	t.Helper()
	cat, err := repository.LoadCatalog(data.Files)
	require.NoError(t, err)
	return cat
}

// reniAlexandria is the Danube grain fixture used across the service tests.
func reniAlexandria() domain.OfferRequest {
	return domain.OfferRequest{
		LoadPort:      "Reni",
		DischargePort: "Alexandria",
		Cargo:         "Corn",
		Quantity:      55000,
		FreightRate:   18.00,
		DemurrageRate: 9000,
		LaycanStart:   "2025-12-15",
		LaycanEnd:     "2025-12-20",
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

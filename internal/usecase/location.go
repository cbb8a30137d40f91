package usecase

import (
	"context"
	"slices"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/vocabulary"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

var (
	teamAddressKeys    = []string{"Ground", "Stadium", "Location"}
	athleteAddressKeys = []string{"Place of birth", "Born", "High school", "College", "Nationality"}
)

// LocationResolver turns the best address-like fact of a card into a market
// code or a point. Lookup failures are logged and read as "no data".
type LocationResolver struct {
	geocoder Geocoder
	logger   *logging.Logger
}

func NewLocationResolver(geocoder Geocoder, logger *logging.Logger) *LocationResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &LocationResolver{geocoder: geocoder, logger: logger}
}

// Market returns the first supported country code of the first result.
func (r *LocationResolver) Market(ctx context.Context, sheet *entity.FactSheet, keys []string, region string) string {
	results := r.lookup(ctx, sheet, keys, region)
	if len(results) == 0 {
		return ""
	}
	for _, component := range results[0].Components {
		if slices.Contains(component.Types, "country") && vocabulary.IsMarket(component.ShortName) {
			return component.ShortName
		}
	}
	return ""
}

func (r *LocationResolver) Coordinates(ctx context.Context, sheet *entity.FactSheet, keys []string, region string) *entity.Coordinates {
	results := r.lookup(ctx, sheet, keys, region)
	if len(results) == 0 {
		return nil
	}
	return results[0].Location
}

func (r *LocationResolver) lookup(ctx context.Context, sheet *entity.FactSheet, keys []string, region string) []GeocodeResult {
	if r == nil || r.geocoder == nil {
		return nil
	}
	key, address := sheet.First(keys...)
	if address == "" {
		return nil
	}

	results, err := r.geocoder.Geocode(ctx, address, region)
	if err != nil {
		r.logger.WarnContext(ctx, "geocode lookup failed", "fact", key, "address", address, "error", err)
		return nil
	}
	return results
}

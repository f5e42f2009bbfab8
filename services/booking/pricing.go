package booking

import (
	"context"
	"errors"
	"math"
	"time"

	catalogRepo "voyago/database/repository/catalog"
	"voyago/models"
)

// PricingService computes price quotes. The computation is pure: the same
// inputs against an unchanged catalog entry always produce the same
// breakdown, because the orchestrator snapshots the result rather than
// recomputing it at confirmation time.
type PricingService struct {
	Catalog catalogRepo.CatalogRepository
	TaxRate float64
}

// Quote prices a stay of the given range for the item.
//
// The base rate is multiplied by the day count for time-rated item types
// (real estate, transport) and charged flat for tours. Extra guests beyond
// the first add the item's surcharge for real estate and tours. Unknown
// option ids are ignored; per-day options scale with the day count. Tax
// applies to base plus options.
func (s *PricingService) Quote(ctx context.Context, itemType models.ItemType, itemID, startDate, endDate string, guestCount int, optionIDs []string) (*models.Quote, error) {
	if !itemType.Valid() {
		return nil, NewValidationError("unknown item type %q", itemType)
	}
	if guestCount < 1 {
		return nil, NewValidationError("guest count must be at least 1")
	}
	dr, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	item, err := s.Catalog.GetItem(ctx, itemType, itemID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrItemNotFound) {
			return nil, &NotFoundError{Resource: string(itemType), ID: itemID}
		}
		return nil, err
	}

	days := daysCount(dr)

	basePrice := item.GetBaseRate()
	if itemType.TimeRated() {
		basePrice *= float64(days)
	}
	if itemType.GuestSurcharged() && guestCount > 1 {
		basePrice += float64(guestCount-1) * item.GetExtraGuestPrice()
	}

	optionsPrice := 0.0
	snapshots := make([]models.OptionSnapshot, 0, len(optionIDs))
	catalogOptions := item.GetOptions()
	for _, id := range optionIDs {
		for _, opt := range catalogOptions {
			if opt.ID != id {
				continue
			}
			price := opt.Price
			if opt.PerDay {
				price *= float64(days)
			}
			optionsPrice += price
			snapshots = append(snapshots, models.OptionSnapshot{Name: opt.Name, Price: roundCents(price)})
			break
		}
	}

	taxAmount := roundCents((basePrice + optionsPrice) * s.TaxRate)
	basePrice = roundCents(basePrice)
	optionsPrice = roundCents(optionsPrice)

	return &models.Quote{
		Price: models.PriceBreakdown{
			BasePrice:    basePrice,
			OptionsPrice: optionsPrice,
			TaxAmount:    taxAmount,
			TotalPrice:   roundCents(basePrice + optionsPrice + taxAmount),
			Currency:     item.GetCurrency(),
			DaysCount:    days,
		},
		Options: snapshots,
	}, nil
}

// daysCount is the whole number of days between the range endpoints, with a
// floor of one so same-day bookings are charged a full day.
func daysCount(dr models.DateRange) int {
	start, _ := time.Parse(models.DateLayout, dr.StartDate)
	end, _ := time.Parse(models.DateLayout, dr.EndDate)
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "voyago/database/repository/booking"
	"voyago/models"
)

// AvailabilityService answers whether a date range is free for an item. The
// answer is advisory: between this read and a later insert another request
// can take the dates, so creation re-validates under the storage guard.
type AvailabilityService struct {
	Repo bookingRepo.BookingRepository
}

// Check returns whether [startDate, endDate] is free of blocking bookings
// for the item, along with every conflicting range for display.
func (s *AvailabilityService) Check(ctx context.Context, itemType models.ItemType, itemID, startDate, endDate string) (*models.Availability, error) {
	if !itemType.Valid() {
		return nil, NewValidationError("unknown item type %q", itemType)
	}
	if itemID == "" {
		return nil, NewValidationError("item id is required")
	}
	dr, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.Repo.FindOverlapping(ctx, itemType, itemID, dr)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}

	conflicts := make([]models.DateRange, 0, len(overlapping))
	for _, b := range overlapping {
		conflicts = append(conflicts, b.Range())
	}
	return &models.Availability{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// parseRange validates the date pair and returns it as a range.
func parseRange(startDate, endDate string) (models.DateRange, error) {
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return models.DateRange{}, NewValidationError("invalid start date %q", startDate)
	}
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return models.DateRange{}, NewValidationError("invalid end date %q", endDate)
	}
	if end.Before(start) {
		return models.DateRange{}, NewValidationError("end date %s is before start date %s", endDate, startDate)
	}
	return models.DateRange{StartDate: startDate, EndDate: endDate}, nil
}

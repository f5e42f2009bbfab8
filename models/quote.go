// File: voyago/models/quote.go
package models

// Quote is the result of a price calculation: the breakdown plus the
// resolved option snapshots the caller stores on the booking.
type Quote struct {
	Price   PriceBreakdown   `json:"price"`
	Options []OptionSnapshot `json:"options"`
}

// Availability is the advisory result of an availability check. A true
// Available is not a reservation; creation re-validates under the
// persistence-level guard.
type Availability struct {
	Available bool        `json:"available"`
	Conflicts []DateRange `json:"conflicts"`
}

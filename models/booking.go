package models

import "time"

// DateLayout is the wire and storage format for booking dates. Dates in this
// format compare lexicographically, which the overlap queries rely on.
const DateLayout = "2006-01-02"

// BookingStatus values. Pending and confirmed are the blocking statuses: only
// they count toward availability conflicts.
type BookingStatus string

const (
	BookingStatusDraft     BookingStatus = "draft"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Blocking reports whether a booking in this status holds its dates.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// BookingPaymentStatus tracks the money side of a booking.
type BookingPaymentStatus string

const (
	BookingPaymentPending   BookingPaymentStatus = "pending"
	BookingPaymentPartial   BookingPaymentStatus = "partial"
	BookingPaymentCompleted BookingPaymentStatus = "completed"
	BookingPaymentRefunded  BookingPaymentStatus = "refunded"
	BookingPaymentFailed    BookingPaymentStatus = "failed"
)

// DateRange is an inclusive calendar date range.
type DateRange struct {
	StartDate string `bson:"start_date" json:"startDate"`
	EndDate   string `bson:"end_date" json:"endDate"`
}

// Overlaps implements the closed-interval test: two ranges conflict iff
// S <= E' and S' <= E. A shared boundary day counts as a conflict.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.StartDate <= other.EndDate && other.StartDate <= r.EndDate
}

// Days enumerates every calendar day of the range, inclusive.
func (r DateRange) Days() ([]string, error) {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return nil, err
	}
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days, nil
}

// PriceBreakdown is the quoted price decomposition. It is snapshotted onto
// the booking at creation time and never recomputed afterwards.
type PriceBreakdown struct {
	BasePrice    float64 `bson:"base_price" json:"basePrice"`
	OptionsPrice float64 `bson:"options_price" json:"optionsPrice"`
	TaxAmount    float64 `bson:"tax_amount" json:"taxAmount"`
	TotalPrice   float64 `bson:"total_price" json:"totalPrice"`
	Currency     string  `bson:"currency" json:"currency"`
	DaysCount    int     `bson:"days_count" json:"daysCount"`
}

// OptionSnapshot captures a selected add-on with its computed price at
// booking time.
type OptionSnapshot struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// GuestContact identifies the holder of a booking made without an account.
type GuestContact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Booking represents a reservation attempt and its outcome. Exactly one of
// UserID / Guest must be set.
type Booking struct {
	ID            string               `bson:"id" json:"id"`
	BookingNumber string               `bson:"booking_number" json:"bookingNumber"`
	ItemType      ItemType             `bson:"item_type" json:"itemType"`
	ItemID        string               `bson:"item_id" json:"itemId"`
	StartDate     string               `bson:"start_date" json:"startDate"`
	EndDate       string               `bson:"end_date" json:"endDate"`
	GuestCount    int                  `bson:"guest_count" json:"guestCount"`
	Options       []OptionSnapshot     `bson:"options" json:"options"`
	UserID        string               `bson:"user_id,omitempty" json:"userId,omitempty"`
	Guest         *GuestContact        `bson:"guest,omitempty" json:"guest,omitempty"`
	Price         PriceBreakdown       `bson:"price" json:"price"`
	Status        BookingStatus        `bson:"status" json:"status"`
	PaymentStatus BookingPaymentStatus `bson:"payment_status" json:"paymentStatus"`
	PaymentIDs    []string             `bson:"payment_ids" json:"paymentIds"`
	CreatedAt     time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updatedAt"`
}

// Range returns the booking's inclusive date range.
func (b *Booking) Range() DateRange {
	return DateRange{StartDate: b.StartDate, EndDate: b.EndDate}
}

// HolderRecipient returns the address notifications are sent to: the guest
// e-mail for guest bookings, otherwise the user reference.
func (b *Booking) HolderRecipient() string {
	if b.Guest != nil {
		return b.Guest.Email
	}
	return b.UserID
}

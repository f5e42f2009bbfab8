package models

// ItemType tags the kind of rentable inventory a booking refers to.
type ItemType string

const (
	ItemTypeRealEstate ItemType = "real-estate"
	ItemTypeTransport  ItemType = "transport"
	ItemTypeTour       ItemType = "tour"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeRealEstate, ItemTypeTransport, ItemTypeTour:
		return true
	}
	return false
}

// TimeRated reports whether the base rate is multiplied by the number of
// days. Tours are priced flat per booking.
func (t ItemType) TimeRated() bool {
	return t != ItemTypeTour
}

// GuestSurcharged reports whether extra guests add to the base price.
func (t ItemType) GuestSurcharged() bool {
	return t != ItemTypeTransport
}

// ItemOption is a bookable add-on offered by an item.
type ItemOption struct {
	ID     string  `bson:"id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Price  float64 `bson:"price" json:"price"`
	PerDay bool    `bson:"per_day" json:"perDay"` // multiplied by daysCount when true
}

// Item is the capability surface the pricing and booking components need
// from any catalog entry, regardless of its concrete type.
type Item interface {
	GetID() string
	GetType() ItemType
	GetBaseRate() float64
	GetExtraGuestPrice() float64
	GetCurrency() string
	GetOptions() []ItemOption
}

// RealEstate is a rentable property, priced per day.
type RealEstate struct {
	ID              string       `bson:"id" json:"id"`
	Title           string       `bson:"title" json:"title"`
	Address         string       `bson:"address" json:"address"`
	Bedrooms        int          `bson:"bedrooms" json:"bedrooms"`
	MaxGuests       int          `bson:"max_guests" json:"maxGuests"`
	BaseRate        float64      `bson:"base_rate" json:"baseRate"`
	ExtraGuestPrice float64      `bson:"extra_guest_price" json:"extraGuestPrice"`
	Currency        string       `bson:"currency" json:"currency"`
	Options         []ItemOption `bson:"options" json:"options"`
}

func (p RealEstate) GetID() string { return p.ID }
func (p RealEstate) GetType() ItemType { return ItemTypeRealEstate }
func (p RealEstate) GetBaseRate() float64 { return p.BaseRate }
func (p RealEstate) GetExtraGuestPrice() float64 { return p.ExtraGuestPrice }
func (p RealEstate) GetCurrency() string { return p.Currency }
func (p RealEstate) GetOptions() []ItemOption { return p.Options }

// Transport is a rentable vehicle, priced per day with no guest surcharge.
type Transport struct {
	ID       string       `bson:"id" json:"id"`
	Title    string       `bson:"title" json:"title"`
	Class    string       `bson:"class" json:"class"` // e.g. "economy", "van"
	Seats    int          `bson:"seats" json:"seats"`
	BaseRate float64      `bson:"base_rate" json:"baseRate"`
	Currency string       `bson:"currency" json:"currency"`
	Options  []ItemOption `bson:"options" json:"options"`
}

func (v Transport) GetID() string { return v.ID }
func (v Transport) GetType() ItemType { return ItemTypeTransport }
func (v Transport) GetBaseRate() float64 { return v.BaseRate }
func (v Transport) GetExtraGuestPrice() float64 { return 0 }
func (v Transport) GetCurrency() string { return v.Currency }
func (v Transport) GetOptions() []ItemOption { return v.Options }

// Tour is a guided tour, priced flat per booking with a per-guest surcharge.
type Tour struct {
	ID              string       `bson:"id" json:"id"`
	Title           string       `bson:"title" json:"title"`
	Location        string       `bson:"location" json:"location"`
	DurationHours   int          `bson:"duration_hours" json:"durationHours"`
	BaseRate        float64      `bson:"base_rate" json:"baseRate"`
	ExtraGuestPrice float64      `bson:"extra_guest_price" json:"extraGuestPrice"`
	Currency        string       `bson:"currency" json:"currency"`
	Options         []ItemOption `bson:"options" json:"options"`
}

func (t Tour) GetID() string { return t.ID }
func (t Tour) GetType() ItemType { return ItemTypeTour }
func (t Tour) GetBaseRate() float64 { return t.BaseRate }
func (t Tour) GetExtraGuestPrice() float64 { return t.ExtraGuestPrice }
func (t Tour) GetCurrency() string { return t.Currency }
func (t Tour) GetOptions() []ItemOption { return t.Options }

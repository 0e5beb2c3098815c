package model

import "time"

// Routes served by the night boat.  Exactly two fixed directions exist.
const (
	RouteSuratToKohtao = "SURAT_TO_KOHTAO"
	RouteKohtaoToSurat = "KOHTAO_TO_SURAT"
)

// Boat seat layouts.  The layout determines the valid seat-label set and is
// part of the seat-uniqueness key.
const (
	Layout50 = "LAYOUT_50"
	Layout30 = "LAYOUT_30"
)

// ValidRoute reports whether s names a known route.
func ValidRoute(s string) bool {
	return s == RouteSuratToKohtao || s == RouteKohtaoToSurat
}

// ValidLayout reports whether s names a known seat layout.
func ValidLayout(s string) bool {
	return s == Layout50 || s == Layout30
}

// Ticket represents a row in the `tickets` table.  At most one ticket may
// exist per (TravelDate, Route, SeatLayout, SeatNumber) tuple; the database
// carries a composite unique key on those columns and the repository checks
// availability before writing.
//
// Fields:
//  ID            – primary key identifier.
//  PassengerName – passenger the seat was sold to.
//  Phone         – passenger contact number.
//  Route         – one of the two boat directions.
//  SeatNumber    – seat label such as "A12".
//  SeatLayout    – boat configuration the seat label belongs to.
//  Price         – sale price in currency units.
//  TravelDate    – calendar date of the crossing.
//  CheckedIn     – whether the passenger has boarded.
//  SellerID      – user who sold the ticket (weak reference).
//  SellerName    – display name of the seller, populated by list queries.
//  CreatedAt     – sale timestamp.
type Ticket struct {
	ID            uint64    `json:"id"`
	PassengerName string    `json:"passengerName"`
	Phone         string    `json:"phone"`
	Route         string    `json:"route"`
	SeatNumber    string    `json:"seatNumber"`
	SeatLayout    string    `json:"seatLayout"`
	Price         float64   `json:"price"`
	TravelDate    time.Time `json:"travelDate"`
	CheckedIn     bool      `json:"checkedIn"`
	SellerID      uint64    `json:"sellerId"`
	SellerName    string    `json:"sellerName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SeatKey identifies the slot a ticket occupies.  Two tickets with the same
// key would double-book a seat.
type SeatKey struct {
	TravelDate time.Time
	Route      string
	SeatLayout string
	SeatNumber string
}

// SeatKeyOf extracts the seat-uniqueness key from a ticket.
func SeatKeyOf(t Ticket) SeatKey {
	return SeatKey{
		TravelDate: t.TravelDate,
		Route:      t.Route,
		SeatLayout: t.SeatLayout,
		SeatNumber: t.SeatNumber,
	}
}

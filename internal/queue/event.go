// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Queue names.  Both queues are declared durable by publisher and consumer.
const (
	TicketCheckedInQueue = "ticket.checkedin"
	ParcelDeliveredQueue = "parcel.delivered"
)

// TicketCheckedInEvent is published when a passenger is checked in at the
// pier, whether by QR scan or from the ticket list.  It carries enough for
// the boarding log without querying the database.
type TicketCheckedInEvent struct {
	TicketID      uint64 `json:"ticket_id"`
	PassengerName string `json:"passenger_name"`
	Route         string `json:"route"`
	SeatNumber    string `json:"seat_number"`
	SeatLayout    string `json:"seat_layout"`
	TravelDate    string `json:"travel_date"`
	CheckedInAt   string `json:"checked_in_at"`
}

// ParcelDeliveredEvent is published when a parcel is scanned out to its
// receiver.
type ParcelDeliveredEvent struct {
	ParcelID      uint64  `json:"parcel_id"`
	SenderName    string  `json:"sender_name"`
	ReceiverName  string  `json:"receiver_name"`
	Weight        float64 `json:"weight"`
	PaymentStatus string  `json:"payment_status"`
	DeliveredAt   string  `json:"delivered_at"`
}

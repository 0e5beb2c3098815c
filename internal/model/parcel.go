package model

import "time"

// Parcel delivery states.
const (
	ParcelWaiting   = "WAITING"
	ParcelDelivered = "DELIVERED"
)

// Parcel payment states.  Payment is a manually toggled flag, not a
// processed transaction.
const (
	PaymentPaid   = "PAID"
	PaymentUnpaid = "UNPAID"
)

// Parcel pricing constants: 10 currency units per kilogram with a minimum
// charge of 30.
const (
	parcelMinPrice   = 30
	parcelPricePerKg = 10
)

// ParcelPrice returns the delivery price for a parcel of the given weight in
// kilograms.  The price is always computed server-side; client-submitted
// prices are ignored.
func ParcelPrice(weight float64) float64 {
	p := weight * parcelPricePerKg
	if p < parcelMinPrice {
		return parcelMinPrice
	}
	return p
}

// Parcel represents a row in the `parcels` table.
//
// Fields:
//  ID            – primary key identifier.
//  SenderName    – customer who deposited the parcel.
//  SenderPhone   – sender contact number.
//  ReceiverName  – person the parcel is addressed to.
//  ReceiverPhone – receiver contact number.
//  Weight        – weight in kilograms, never negative.
//  Price         – derived delivery price (see ParcelPrice).
//  PaymentStatus – PAID or UNPAID.
//  Status        – WAITING until handed over, then DELIVERED.
//  DepositDate   – when the parcel was handed in at the counter.
//  SellerID      – user who logged the deposit (weak reference).
//  SellerName    – display name of the seller, populated by list queries.
//  CreatedAt     – record creation timestamp.
type Parcel struct {
	ID            uint64    `json:"id"`
	SenderName    string    `json:"senderName"`
	SenderPhone   string    `json:"senderPhone"`
	ReceiverName  string    `json:"receiverName"`
	ReceiverPhone string    `json:"receiverPhone"`
	Weight        float64   `json:"weight"`
	Price         float64   `json:"price"`
	PaymentStatus string    `json:"paymentStatus"`
	Status        string    `json:"status"`
	DepositDate   time.Time `json:"depositDate"`
	SellerID      uint64    `json:"sellerId"`
	SellerName    string    `json:"sellerName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

package model

import "time"

// Maintenance repair states.
const (
	MaintenanceWaiting  = "WAITING"
	MaintenanceRepaired = "REPAIRED"
)

// MaintenanceRecord represents a row in the `maintenances` table.  The three
// pointer fields are nullable columns; a nil pointer means the column is NULL
// and serializes as JSON null.
//
// Fields:
//  ID         – primary key identifier.
//  Date       – when the fault was observed.
//  Details    – free-form description of the fault.
//  ImageURL   – optional photo of the fault.
//  Status     – WAITING until fixed, then REPAIRED.
//  RepairDate – optional completion date.
//  Technician – optional name of whoever did the repair.
//  CreatedAt  – record creation timestamp.
//  UpdatedAt  – last modification timestamp.
type MaintenanceRecord struct {
	ID         uint64     `json:"id"`
	Date       time.Time  `json:"date"`
	Details    string     `json:"details"`
	ImageURL   *string    `json:"imageUrl"`
	Status     string     `json:"status"`
	RepairDate *time.Time `json:"repairDate"`
	Technician *string    `json:"technician"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

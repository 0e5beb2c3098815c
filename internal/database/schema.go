package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for every table, applied idempotently at startup.
// The uq_seat key on tickets is load-bearing: it turns the check-then-act
// race on seat booking into a clean duplicate-key failure that the ticket
// repository maps to a conflict.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username VARCHAR(64) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		name VARCHAR(128) NOT NULL,
		role ENUM('ADMIN','STAFF','AGENT') NOT NULL DEFAULT 'STAFF',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		passenger_name VARCHAR(128) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		route ENUM('SURAT_TO_KOHTAO','KOHTAO_TO_SURAT') NOT NULL,
		seat_number VARCHAR(8) NOT NULL,
		seat_layout ENUM('LAYOUT_50','LAYOUT_30') NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		travel_date DATETIME NOT NULL,
		checked_in TINYINT(1) NOT NULL DEFAULT 0,
		seller_id BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_seat (travel_date, route, seat_layout, seat_number),
		KEY idx_tickets_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS parcels (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		sender_name VARCHAR(128) NOT NULL,
		sender_phone VARCHAR(32) NOT NULL,
		receiver_name VARCHAR(128) NOT NULL,
		receiver_phone VARCHAR(32) NOT NULL,
		weight DOUBLE NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		payment_status ENUM('PAID','UNPAID') NOT NULL DEFAULT 'UNPAID',
		status ENUM('WAITING','DELIVERED') NOT NULL DEFAULT 'WAITING',
		deposit_date DATETIME NOT NULL,
		seller_id BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_parcels_deposit (deposit_date),
		KEY idx_parcels_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS maintenances (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		date DATETIME NOT NULL,
		details TEXT NOT NULL,
		image_url VARCHAR(512) NULL,
		status ENUM('WAITING','REPAIRED') NOT NULL DEFAULT 'WAITING',
		repair_date DATETIME NULL,
		technician VARCHAR(128) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_maintenances_date (date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  Existing tables are left alone.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

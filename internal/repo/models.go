package repo

import (
	"time"

	"github.com/google/uuid"
)

type Store struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"store_name"`
	Slug      string    `json:"store_slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Admin struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	StoreID        uuid.UUID `json:"store_id"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// StoreHours holds raw "03:04 PM" strings as saved by the console.
type StoreHours struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Open      string    `json:"open"`
	Close     string    `json:"close"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceType struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Rate      float64   `json:"rate"`
	IsAddOn   bool      `json:"is_addon"`
	CreatedAt time.Time `json:"created_at"`
}

type Therapist struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Rate      float64   `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
}

type TherapistTime struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Booking is a committed appointment. Date is "02/01/2006"; StartTime and
// EndTime are "03:04 PM" in the store zone.
type Booking struct {
	ID           uuid.UUID `json:"id"`
	StoreID      uuid.UUID `json:"store_id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Therapist    string    `json:"therapist"`
	ServiceType  string    `json:"service_type"`
	AddOn        string    `json:"add_on"`
	AddOnPrice   float64   `json:"add_on_price"`
	CreatedAt    time.Time `json:"created_at"`
}

type ArchivedBooking struct {
	Booking
	ArchivedAt time.Time `json:"archived_at"`
}

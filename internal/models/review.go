package models

import "time"

type Review struct {
	ID        int64     `db:"id" json:"id"`
	VehicleID int64     `db:"vehicle_id" json:"vehicle_id"`
	RenterID  int64     `db:"renter_id" json:"renter_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Bookmark struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	VehicleID int64     `db:"vehicle_id" json:"vehicle_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package model

import "time"

const (
	RideStatusOpen      = "open"
	RideStatusAccepted  = "accepted"
	RideStatusRejected  = "rejected"
	RideStatusCancelled = "cancelled"
	RideStatusClosed    = "closed"
)

const (
	MinPassengers     = 1
	MaxPassengers     = 4
	DefaultPassengers = MinPassengers
)

// RideRequest is a ride asked for by a user. PickUp and DropOff are decimal degrees.
type RideRequest struct {
	ID         string    `json:"_id"`
	Creator    string    `json:"_creator"`
	PickUp     float64   `json:"pickUp"`
	DropOff    float64   `json:"dropOff"`
	Passengers int       `json:"passengers"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
}

// CreateRideRequestRequest is used for creating a new ride request
type CreateRideRequestRequest struct {
	Creator    *string    `json:"_creator"`
	PickUp     *float64   `json:"pickUp" validate:"required"`
	DropOff    *float64   `json:"dropOff" validate:"required"`
	Passengers *int       `json:"passengers" validate:"omitempty,min=1,max=4"`
	Date       *time.Time `json:"date"`
	Status     *string    `json:"status" validate:"omitempty,ridestatus"`
}

// UpdateRideRequestRequest carries a partial patch; nil fields are left untouched.
type UpdateRideRequestRequest struct {
	Creator    *string    `json:"_creator,omitempty"`
	PickUp     *float64   `json:"pickUp,omitempty"`
	DropOff    *float64   `json:"dropOff,omitempty"`
	Passengers *int       `json:"passengers,omitempty" validate:"omitempty,min=1,max=4"`
	Date       *time.Time `json:"date,omitempty"`
	Status     *string    `json:"status,omitempty" validate:"omitempty,ridestatus"`
}

// IsValidRideStatus reports whether s is one of the known ride statuses.
func IsValidRideStatus(s string) bool {
	switch s {
	case RideStatusOpen, RideStatusAccepted, RideStatusRejected, RideStatusCancelled, RideStatusClosed:
		return true
	}
	return false
}

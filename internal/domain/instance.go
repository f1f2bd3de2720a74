package domain

import "time"

// Instance is the singleton record describing this server deployment.
// Created on first startup, stable thereafter.
type Instance struct {
	ID        string    `json:"id"` // prefixed nanoid, e.g. "inst-V1StGXR8_Z5jdHi6B-myT"
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

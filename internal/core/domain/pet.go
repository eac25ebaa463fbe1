package domain

import (
	"errors"
	"time"
)

var ErrPetNotFound = errors.New("pet not found")

// Pet is a companion-animal record owned by a single user.
type Pet struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	SpeciesID    string     `json:"species"`
	Breed        string     `json:"breed,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	WeightKg     float64    `json:"weight,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	SpecialNotes string     `json:"special_notes,omitempty"`
	OwnerID      string     `json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AnimalType is a reference entry describing a species (dog, cat, ...).
type AnimalType struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"is_active"`
}

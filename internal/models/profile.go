package models

import "time"

// Gender values accepted for a profile.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Genders lists every accepted gender value.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// Profile represents a row in the profiles table
type Profile struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Age         int       `json:"age" db:"age"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender      string    `json:"gender" db:"gender"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

package model

import "time"

// BloodTypes is the closed set a profile's blood type must come from.
// "Unknown" is a legitimate answer, not a missing value.
var BloodTypes = []string{"Unknown", "A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Profile is the optional health profile — at most one row per user.
//
// Writes are full replacements: every field is overwritten on upsert, and
// a field the caller leaves empty becomes empty in the store. This is the
// upsert contract, not a partial patch. Zero values (0, "") stand in for
// "unset"; the store persists them as-is.
type Profile struct {
	ID                string    `json:"id"`
	UserID            string    `json:"-"`
	Age               int       `json:"age"`
	BloodType         string    `json:"bloodType"`
	Allergies         string    `json:"allergies"`
	ChronicConditions string    `json:"chronicConditions"`
	EmergencyContact  string    `json:"emergencyContact"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ValidBloodType reports whether s is in the allowed set.
func ValidBloodType(s string) bool {
	for _, bt := range BloodTypes {
		if s == bt {
			return true
		}
	}
	return false
}

// Package person holds the demographic primitives shared by staff and
// patient records.
package person

import (
	"strings"

	"github.com/hms/hms/internal/platform/herr"
)

// Gender is one of the two recognized values.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ParseGender normalizes raw input to a Gender.
func ParseGender(input string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "MALE":
		return GenderMale, nil
	case "FEMALE":
		return GenderFemale, nil
	}
	return "", herr.Invalidf("invalid gender %q: only Male or Female allowed", input)
}

// ValidAge reports whether age is inside the accepted range.
func ValidAge(age int) bool {
	return age >= 0 && age <= 150
}

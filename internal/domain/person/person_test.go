package person

import (
	"errors"
	"testing"

	"github.com/hms/hms/internal/platform/herr"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"Male", GenderMale, false},
		{"FEMALE", GenderFemale, false},
		{"  female ", GenderFemale, false},
		{"other", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseGender(tt.in)
		if tt.wantErr {
			if !errors.Is(err, herr.ErrInvalidArgument) {
				t.Errorf("ParseGender(%q) err = %v, want InvalidArgument", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseGender(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestValidAge(t *testing.T) {
	for _, age := range []int{0, 1, 150} {
		if !ValidAge(age) {
			t.Errorf("ValidAge(%d) = false", age)
		}
	}
	for _, age := range []int{-1, 151, 999} {
		if ValidAge(age) {
			t.Errorf("ValidAge(%d) = true", age)
		}
	}
}

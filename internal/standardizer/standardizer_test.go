package standardizer

import (
	"testing"
)

func TestStandardizeStreet(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123 Main Street", "123 main st"},
		{"456 Ocean Boulevard", "456 ocean blvd"},
		{"  78 Park   Avenue ", "78 park ave"},
		{"9 Abbey Road, London", "9 abbey rd london"},
		{"10 Downing St", "10 downing st"},
	}

	for _, test := range tests {
		result := StandardizeStreet(test.input)
		if result != test.expected {
			t.Errorf("StandardizeStreet(%q) = %q, want %q", test.input, result, test.expected)
		}
	}
}

func TestIsStreetSuffix(t *testing.T) {
	tests := []struct {
		token    string
		expected bool
	}{
		{"st", true},
		{"rd", true},
		{"ave", true},
		{"blvd", true},
		{"street", true},
		{"boulevard", true},
		{"dr", false},
		{"main", false},
	}

	for _, test := range tests {
		if got := IsStreetSuffix(test.token); got != test.expected {
			t.Errorf("IsStreetSuffix(%q) = %v, want %v", test.token, got, test.expected)
		}
	}
}

package matcher

import "testing"

func TestPhoneRegionScore(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		addr     string
		expected float64
	}{
		{"florida code with FL address", "3055551234", "123 Main St, Miami, FL 33101", 1.0},
		{"florida code with wrong state", "3055551234", "456 Elm St, Austin, TX", 0.0},
		{"florida code 11 digits", "13055551234", "Ocean Dr, Miami Beach, FL", 1.0},
		{"generic US code with USA address", "2065551234", "Pike Pl, Seattle, WA, United States", 0.9},
		{"generic US code without USA marker", "2065551234", "Pike Pl, Seattle, WA", 0.0},
		{"UK plus prefix with London address", "+44 20 7946 0958", "10 Downing St, London, UK", 1.0},
		{"UK trunk prefix with London address", "020 7946 0958", "Westminster, London", 1.0},
		{"UK prefix with US address", "+44 20 7946 0958", "Miami, FL", 0.0},
		{"too short for any signal", "12", "anywhere", 0.5},
		{"empty phone", "", "anywhere", 0.5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := PhoneRegionScore(test.phone, test.addr)
			if got != test.expected {
				t.Errorf("PhoneRegionScore(%q, %q) = %v, want %v", test.phone, test.addr, got, test.expected)
			}
		})
	}
}

func TestAddressMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		addr     string
		expected float64
	}{
		{"exact suffix bigram", "123 Main Street", "123 Main St, Miami, FL", 1.0},
		{"abbreviation both ways", "456 Ocean Blvd", "456 Ocean Boulevard, Los Angeles, CA", 1.0},
		{"no bigram present in candidate", "99 Elm Street", "123 Main St, Miami, FL", 0.0},
		{"half the bigrams match", "Main Street and Elm Road", "Main St, Springfield", 0.5},
		{"unparseable address", "somewhere nice", "123 Main St", 0.5},
		{"empty address", "", "123 Main St", 0.5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := AddressMatchScore(test.address, test.addr)
			if got != test.expected {
				t.Errorf("AddressMatchScore(%q, %q) = %v, want %v", test.address, test.addr, got, test.expected)
			}
		})
	}
}

func TestAreaMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		area     string
		addr     string
		expected float64
	}{
		{"keyword present in candidate", "Miami, Florida", "Miami, Florida, USA", 1.0},
		{"keyword absent from candidate", "Florida", "London, UK", 0.0},
		{"two keywords one match", "florida usa", "Orlando, Florida", 0.5},
		{"unknown region", "Atlantis", "Miami, FL", 0.5},
		{"empty area", "", "Miami, FL", 0.5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := AreaMatchScore(test.area, test.addr)
			if got != test.expected {
				t.Errorf("AreaMatchScore(%q, %q) = %v, want %v", test.area, test.addr, got, test.expected)
			}
		})
	}
}

// Every validator stays inside [0,1] for arbitrary junk input.
func TestValidatorBounds(t *testing.T) {
	inputs := []string{"", " ", "!!!", "12345678901234567890", "ST RD AVE BLVD", "浅草寺"}
	for _, a := range inputs {
		for _, b := range inputs {
			for name, got := range map[string]float64{
				"phone":   PhoneRegionScore(a, b),
				"address": AddressMatchScore(a, b),
				"area":    AreaMatchScore(a, b),
			} {
				if got < 0 || got > 1 {
					t.Errorf("%s validator out of bounds for (%q, %q): %v", name, a, b, got)
				}
			}
		}
	}
}

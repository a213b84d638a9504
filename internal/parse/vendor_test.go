package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorToken(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"add ESPN SportsCenter to the plan", "ESPN SportsCenter", true},
		{"add Hulu", "Hulu", true},
		{"please add a spot on ESPN", "ESPN", true},
		{"include TikTok for $25k", "TikTok", true},
		{"can you add The Joe Rogan Experience", "The Joe Rogan Experience", true},
		{"insert some radio", "radio", true},
		{"add print ads", "print ads", true},
		{"pause row 2", "", false},
		{"add ", "", false},
	}
	for _, tc := range cases {
		got, ok := VendorToken(tc.text)
		assert.Equal(t, tc.ok, ok, "text=%q", tc.text)
		assert.Equal(t, tc.want, got, "text=%q", tc.text)
	}
}

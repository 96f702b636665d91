package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		cc   string
		want string
	}{
		{"local with leading zero", "0788 123 456", "+250", "+250788123456"},
		{"local without zero", "788-123-456", "+250", "+250788123456"},
		{"only one zero stripped", "00788", "+250", "+2500788"},
		{"international kept", "+44 (20) 7946 0958", "+250", "+442079460958"},
		{"garbage only", "abc-()", "+250", ""},
		{"empty", "", "+250", ""},
		{"default country code", "0788123456", "", "+250788123456"},
		{"custom country code", "0612345678", "+33", "+33612345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.cc))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize("0788 123 456", "+250")
	assert.Equal(t, once, Normalize(once, "+250"))
}

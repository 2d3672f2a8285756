package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHours(t *testing.T) {
	tests := []struct {
		name      string
		bedrooms  int
		bathrooms int
		want      int
	}{
		{"one bed one bath", 1, 1, 3},
		{"two bed one bath", 2, 1, 3},
		{"three bed one bath", 3, 1, 4},
		{"two bed two bath", 2, 2, 4},
		{"four bed three bath", 4, 3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hours(tt.bedrooms, tt.bathrooms))
		})
	}
}

func TestPrice(t *testing.T) {
	assert.Equal(t, 300.0, Price(2, 1))
	assert.Equal(t, 300.0, Price(1, 1), "small homes still pay the base price")
	assert.Equal(t, 620.0, Price(4, 3))
	assert.Equal(t, 380.0, Price(3, 1))
}

func TestPriceMatchesFormula(t *testing.T) {
	for bedrooms := 1; bedrooms <= 8; bedrooms++ {
		for bathrooms := 1; bathrooms <= 5; bathrooms++ {
			hours := 3 + max(0, bedrooms-2) + max(0, bathrooms-1)
			want := float64(300 + max(0, hours-3)*80)
			assert.Equal(t, want, Price(bedrooms, bathrooms), "bedrooms=%d bathrooms=%d", bedrooms, bathrooms)
		}
	}
}

func TestPriceAtMaxRooms(t *testing.T) {
	// 18 extra bedroom hours plus 19 extra bathroom hours
	assert.Equal(t, 40, Hours(MaxRooms, MaxRooms))
	assert.Equal(t, 300.0+37*80, Price(MaxRooms, MaxRooms))
	assert.Greater(t, Price(MaxRooms, MaxRooms), float64(BasePrice))
}

func TestRoomsInRange(t *testing.T) {
	tests := []struct {
		bedrooms, bathrooms int
		want                bool
	}{
		{1, 1, true},
		{MaxRooms, MaxRooms, true},
		{0, 1, false},
		{1, 0, false},
		{MaxRooms + 1, 1, false},
		{1, MaxRooms + 1, false},
		{200000000000000000, 1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoomsInRange(tt.bedrooms, tt.bathrooms), "bedrooms=%d bathrooms=%d", tt.bedrooms, tt.bathrooms)
	}
}

// Package booking holds the cleaning booking wizard and its price rules.
package booking

const (
	// BasePrice covers the first BaseHours of a clean.
	BasePrice = 300
	// HourlyRate is charged for every hour beyond BaseHours.
	HourlyRate = 80
	// BaseHours is the minimum job length.
	BaseHours = 3
	// MaxRooms caps bedrooms and bathrooms; larger homes are quoted by phone.
	MaxRooms = 20
)

// RoomsInRange reports whether both counts are between 1 and MaxRooms.
func RoomsInRange(bedrooms, bathrooms int) bool {
	return bedrooms >= 1 && bedrooms <= MaxRooms && bathrooms >= 1 && bathrooms <= MaxRooms
}

// Hours estimates the job length: three hours covers two bedrooms and one bathroom,
// each extra room adds an hour.
func Hours(bedrooms, bathrooms int) int {
	return BaseHours + max(0, bedrooms-2) + max(0, bathrooms-1)
}

// Price returns the total price for a booking of the given size.
func Price(bedrooms, bathrooms int) float64 {
	extra := max(0, Hours(bedrooms, bathrooms)-BaseHours)
	return float64(BasePrice + extra*HourlyRate)
}

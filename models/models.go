package models

// All returns every model for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&UserRole{},
		&Profile{},
		&Booking{},
		&QuoteRequest{},
		&WorkerApplication{},
		&Enquiry{},
	}
}

package utils

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// WhatsAppLink builds a wa.me deep link that opens a chat with number and text pre-filled.
// Everything except digits is stripped from number.
func WhatsAppLink(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)

	link := "https://wa.me/" + digits
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}

// BookingWhatsAppText is the message a client sends to confirm details of a booking
func BookingWhatsAppText(bookingID uint, serviceType, date, slot string, total float64) string {
	service := strings.ReplaceAll(serviceType, "_", " ")
	return fmt.Sprintf("Hi, I've just booked %s (ref #%d) for %s, %s. Total £%.2f. Could you confirm?",
		service, bookingID, date, slot, total)
}

// QuoteWhatsAppText is the message a client sends about a quote request
func QuoteWhatsAppText(quoteID uint, serviceType string) string {
	return fmt.Sprintf("Hi, I've sent a %s quote request (ref #%d). When can I expect a quote?", serviceType, quoteID)
}

package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+44 7700 900-000", "Hello there & welcome")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/447700900000", parsed.Path)
	assert.Equal(t, "Hello there & welcome", parsed.Query().Get("text"))
}

func TestWhatsAppLink_NoText(t *testing.T) {
	assert.Equal(t, "https://wa.me/447700900000", WhatsAppLink("+447700900000", ""))
}

func TestBookingWhatsAppText(t *testing.T) {
	text := BookingWhatsAppText(42, "deep_cleaning", "2026-03-12", "10:00-12:00", 620)
	assert.Contains(t, text, "deep cleaning")
	assert.Contains(t, text, "#42")
	assert.Contains(t, text, "£620.00")
}

func TestQuoteWhatsAppText(t *testing.T) {
	assert.Contains(t, QuoteWhatsAppText(7, "removals"), "removals quote request (ref #7)")
}

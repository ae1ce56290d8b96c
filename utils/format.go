package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice renders an amount as Indian Rupees with en-IN digit grouping,
// e.g. ₹1,23,456.50.
func FormatPrice(amount float64) string {
	return inrPrinter.Sprintf("₹%v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatDate renders a timestamp the way order screens show it.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 Jan 2006, 03:04 PM")
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return strings.ToUpper(string(b))
}

// GenerateOrderID returns a non-cryptographic, collision-unlikely order
// token: current timestamp plus a short random suffix.
func GenerateOrderID() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), randomToken(9))
}

// GenerateBatchNumber returns a production batch token in the same shape.
func GenerateBatchNumber() string {
	return fmt.Sprintf("BATCH-%d-%s", time.Now().UnixMilli(), randomToken(6))
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPhone accepts a 10-digit Indian mobile number.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// NormalizeEmail lowercases and trims an address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// statusLabels maps raw status values to display text.
var statusLabels = map[string]string{
	"pending":             "Pending",
	"approved":            "Approved",
	"in_production":       "In Production",
	"ready_for_packaging": "Ready for Packaging",
	"packaged":            "Packaged",
	"shipped":             "Shipped",
	"delivered":           "Delivered",
	"cancelled":           "Cancelled",
	"rejected":            "Rejected",
	"active":              "Active",
}

// StatusLabel returns the display text for a status, falling back to the
// raw value.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

package agent

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// AnonymousReviewer is shown when a review has no joined profile name.
const AnonymousReviewer = "Anonymous Customer"

// FormatCategory turns a snake_case category code into display text:
// "customer_support" becomes "Customer Support".
func FormatCategory(code string) string {
	words := strings.Split(code, "_")
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

// Initials is the avatar fallback: the first letter of every word of the name.
func Initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Split(name, " ") {
		if r, _ := utf8.DecodeRuneInString(w); r != utf8.RuneError {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ReviewerName(r Review) string {
	if r.ReviewerName == nil || *r.ReviewerName == "" {
		return AnonymousReviewer
	}
	return *r.ReviewerName
}

// Stars returns a fixed five-slot row with the first rating slots filled.
func Stars(rating int) [5]bool {
	var row [5]bool
	for i := range row {
		row[i] = i < rating
	}
	return row
}

func FormatPrice(p decimal.Decimal) string {
	return "$" + p.String()
}

func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64) + "/5"
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

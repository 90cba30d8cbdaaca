package agent

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCategory(t *testing.T) {
	cases := map[string]string{
		"customer_support":   "Customer Support",
		"sales":              "Sales",
		"lead_qualification": "Lead Qualification",
		"":                   "",
		"already Title":      "Already Title",
	}
	for in, want := range cases {
		if got := FormatCategory(in); got != want {
			t.Errorf("FormatCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitials(t *testing.T) {
	if got := Initials("Ava Smart Assistant"); got != "ASA" {
		t.Fatalf("expected ASA, got %q", got)
	}
	if got := Initials("Ava  Bot"); got != "AB" {
		t.Fatalf("double space: expected AB, got %q", got)
	}
}

func TestReviewerName(t *testing.T) {
	if got := ReviewerName(Review{}); got != AnonymousReviewer {
		t.Fatalf("expected placeholder, got %q", got)
	}
	name := "Jan de Vries"
	if got := ReviewerName(Review{ReviewerName: &name}); got != name {
		t.Fatalf("expected %q, got %q", name, got)
	}
}

func TestStars(t *testing.T) {
	want := [5]bool{true, true, true, false, false}
	if got := Stars(3); got != want {
		t.Fatalf("Stars(3) = %v", got)
	}
	if got := Stars(0); got != [5]bool{} {
		t.Fatalf("Stars(0) = %v", got)
	}
	if got := Stars(9); got != [5]bool{true, true, true, true, true} {
		t.Fatalf("Stars(9) = %v", got)
	}
}

func TestFormatPriceAndRating(t *testing.T) {
	if got := FormatPrice(decimal.NewFromInt(49)); got != "$49" {
		t.Fatalf("price: got %q", got)
	}
	if got := FormatPrice(decimal.RequireFromString("19.50")); got != "$19.5" {
		t.Fatalf("price: got %q", got)
	}
	if got := FormatRating(4.5); got != "4.5/5" {
		t.Fatalf("rating: got %q", got)
	}
	if got := FormatRating(4); got != "4/5" {
		t.Fatalf("rating: got %q", got)
	}
}

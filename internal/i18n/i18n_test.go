package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	cases := map[string]language.Tag{
		"":                        language.English,
		"nl-NL,nl;q=0.9,en;q=0.8": language.Dutch,
		"nl-BE":                   language.Dutch,
		"en-US":                   language.English,
		"fr-FR":                   language.English,
		"!!garbage":               language.English,
	}
	for header, want := range cases {
		if got := Match(header); got != want {
			t.Errorf("Match(%q) = %v, want %v", header, got, want)
		}
	}
}

func TestPrinter_Translates(t *testing.T) {
	if got := New(language.English).T(QuoteThankYou); got != "Thank you!" {
		t.Fatalf("en: got %q", got)
	}
	if got := New(language.Dutch).T(QuoteThankYou); got != "Bedankt!" {
		t.Fatalf("nl: got %q", got)
	}
	got := New(language.English).T(QuoteSendFailedFallback, "a@b.c")
	if got != "Please try again or contact us directly at a@b.c" {
		t.Fatalf("args: got %q", got)
	}
}

func TestLabels_CoverFormKeys(t *testing.T) {
	labels := New(language.Dutch).Labels(FormKeys)
	if len(labels) != len(FormKeys) {
		t.Fatalf("expected %d labels, got %d", len(FormKeys), len(labels))
	}
	for _, k := range FormKeys {
		if labels[k] == "" || labels[k] == k {
			t.Errorf("missing translation for %s", k)
		}
	}
}

// Package i18n holds the quote page strings in English and Dutch.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Keys the quote page uses.
const (
	QuoteTitle              = "quote.title"
	QuoteFullName           = "quote.fullName"
	QuoteCompanyName        = "quote.companyName"
	QuoteBusinessType       = "quote.businessType"
	QuoteEmail              = "quote.email"
	QuotePhone              = "quote.phone"
	QuoteLanguage           = "quote.language"
	QuoteSelectLanguage     = "quote.selectLanguage"
	QuoteEnglish            = "quote.english"
	QuoteDutch              = "quote.dutch"
	QuoteDescription        = "quote.description"
	QuoteDescriptionHint    = "quote.descriptionPlaceholder"
	QuoteRequired           = "quote.required"
	QuoteRequiredFields     = "quote.requiredFields"
	QuoteSubmit             = "quote.submit"
	QuoteSubmitting         = "quote.submitting"
	QuoteThankYou           = "quote.thankYou"
	QuoteThankYouMessage    = "quote.thankYouMessage"
	QuoteBackHome           = "quote.backHome"
	QuoteSendFailedTitle    = "quote.sendFailed"
	QuoteSendFailedFallback = "quote.sendFailedMessage"
	QuoteInvalidLanguage    = "quote.invalidLanguage"
)

// FormKeys are the labels the quote form renders, in display order.
var FormKeys = []string{
	QuoteTitle,
	QuoteFullName,
	QuoteCompanyName,
	QuoteBusinessType,
	QuoteEmail,
	QuotePhone,
	QuoteLanguage,
	QuoteSelectLanguage,
	QuoteEnglish,
	QuoteDutch,
	QuoteDescription,
	QuoteDescriptionHint,
	QuoteRequired,
	QuoteSubmit,
	QuoteSubmitting,
	QuoteBackHome,
}

var supported = []language.Tag{language.English, language.Dutch}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[string]string{
	language.English: {
		QuoteTitle:              "Request a Quote",
		QuoteFullName:           "Full Name",
		QuoteCompanyName:        "Company Name",
		QuoteBusinessType:       "Business Type",
		QuoteEmail:              "Email",
		QuotePhone:              "Phone",
		QuoteLanguage:           "Preferred Language",
		QuoteSelectLanguage:     "Select a language",
		QuoteEnglish:            "English",
		QuoteDutch:              "Dutch",
		QuoteDescription:        "Describe your project",
		QuoteDescriptionHint:    "Tell us what your voice agent should do...",
		QuoteRequired:           "Required",
		QuoteRequiredFields:     "Full name, email, and description are required.",
		QuoteSubmit:             "Request Quote",
		QuoteSubmitting:         "Sending...",
		QuoteThankYou:           "Thank you!",
		QuoteThankYouMessage:    "We received your request and will get back to you within 24 hours.",
		QuoteBackHome:           "Back to Home",
		QuoteSendFailedTitle:    "Error sending request",
		QuoteSendFailedFallback: "Please try again or contact us directly at %s",
		QuoteInvalidLanguage:    "Please choose English or Dutch.",
	},
	language.Dutch: {
		QuoteTitle:              "Offerte aanvragen",
		QuoteFullName:           "Volledige naam",
		QuoteCompanyName:        "Bedrijfsnaam",
		QuoteBusinessType:       "Type bedrijf",
		QuoteEmail:              "E-mail",
		QuotePhone:              "Telefoon",
		QuoteLanguage:           "Voorkeurstaal",
		QuoteSelectLanguage:     "Kies een taal",
		QuoteEnglish:            "Engels",
		QuoteDutch:              "Nederlands",
		QuoteDescription:        "Beschrijf uw project",
		QuoteDescriptionHint:    "Vertel ons wat uw voice agent moet doen...",
		QuoteRequired:           "Verplicht",
		QuoteRequiredFields:     "Naam, e-mail en omschrijving zijn verplicht.",
		QuoteSubmit:             "Offerte aanvragen",
		QuoteSubmitting:         "Bezig met verzenden...",
		QuoteThankYou:           "Bedankt!",
		QuoteThankYouMessage:    "We hebben uw aanvraag ontvangen en nemen binnen 24 uur contact met u op.",
		QuoteBackHome:           "Terug naar home",
		QuoteSendFailedTitle:    "Fout bij verzenden",
		QuoteSendFailedFallback: "Probeer het opnieuw of neem direct contact met ons op via %s",
		QuoteInvalidLanguage:    "Kies Engels of Nederlands.",
	},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range messages {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Translator resolves a key to display text. Unknown keys come back as is.
type Translator interface {
	T(key string, args ...any) string
}

type Printer struct {
	tag language.Tag
	p   *message.Printer
}

func New(tag language.Tag) *Printer {
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// FromAcceptLanguage picks English or Dutch from an Accept-Language header.
func FromAcceptLanguage(header string) *Printer {
	return New(Match(header))
}

func Match(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

func (p *Printer) Tag() language.Tag { return p.tag }

// Labels renders every key of keys.
func (p *Printer) Labels(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = p.T(k)
	}
	return out
}

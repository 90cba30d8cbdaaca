package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageDutch   Language = "dutch"
)

var (
	ErrMissingRequired     = errors.New("quote: missing required fields")
	ErrUnsupportedLanguage = errors.New("quote: unsupported language")
)

// Request is a prospective customer's quote inquiry. It is never stored;
// it only travels to the email sender.
type Request struct {
	FullName     string   `json:"fullName"`
	CompanyName  string   `json:"companyName"`
	BusinessType string   `json:"businessType"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Language     Language `json:"language"`
	Description  string   `json:"description"`
}

// Missing lists the required fields that are empty, in form order.
// Whitespace counts as a value.
func (r Request) Missing() []string {
	var out []string
	if r.FullName == "" {
		out = append(out, "fullName")
	}
	if r.Email == "" {
		out = append(out, "email")
	}
	if r.Description == "" {
		out = append(out, "description")
	}
	return out
}

func (r Request) Validate() error {
	if missing := r.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	switch r.Language {
	case "", LanguageEnglish, LanguageDutch:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, r.Language)
	}
}

// Submission is a validated request stamped for delivery.
type Submission struct {
	Reference  string
	ReceivedAt time.Time
	Request    Request
}

func NewSubmission(req Request, now time.Time) Submission {
	ref := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return Submission{Reference: "QR-" + ref, ReceivedAt: now, Request: req}
}

// LanguageLabel is the display name of the preferred language.
func (r Request) LanguageLabel() string {
	switch r.Language {
	case LanguageEnglish:
		return "English"
	case LanguageDutch:
		return "Dutch"
	default:
		return "-"
	}
}

// Summary is the plain-text body used by mail and chat notifications.
func (s Submission) Summary() string {
	r := s.Request
	var b strings.Builder
	fmt.Fprintf(&b, "Quote request %s\n", s.Reference)
	fmt.Fprintf(&b, "Received: %s\n\n", s.ReceivedAt.Format("2006-01-02 15:04 MST"))
	line := func(label, v string) {
		if strings.TrimSpace(v) == "" {
			v = "-"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, v)
	}
	line("Name", r.FullName)
	line("Company", r.CompanyName)
	line("Business type", r.BusinessType)
	line("Email", r.Email)
	line("Phone", r.Phone)
	line("Language", r.LanguageLabel())
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(r.Description))
	b.WriteString("\n")
	return b.String()
}

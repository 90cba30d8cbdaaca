// Package mail delivers quote requests over SMTP.
package mail

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"voicehub/go_backend/internal/domain/quote"
	"voicehub/go_backend/internal/domain/quote/pdf"
)

// Dialer is the part of *gomail.Dialer the mailer needs.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// QuoteHook runs after a quote was delivered. Its error is only logged.
type QuoteHook func(ctx context.Context, s quote.Submission, pdf []byte) error

type QuoteMailer struct {
	Dialer    Dialer
	From      string
	To        []string
	PDF       pdf.Generator // optional
	AfterSend QuoteHook     // optional
	Now       func() time.Time
	Log       *zap.Logger
}

func NewDialer(host string, port int, user, pass string) *gomail.Dialer {
	return gomail.NewDialer(host, port, user, pass)
}

func NewQuoteMailer(d Dialer, from string, to []string, gen pdf.Generator, log *zap.Logger) *QuoteMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuoteMailer{Dialer: d, From: from, To: to, PDF: gen, Now: time.Now, Log: log}
}

// SendQuoteRequest reports true once the SMTP server accepted the message.
func (m *QuoteMailer) SendQuoteRequest(ctx context.Context, req quote.Request) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if len(m.To) == 0 {
		return false, fmt.Errorf("mail: no quote recipient configured")
	}

	s := quote.NewSubmission(req, m.now())
	msg, doc := m.build(s)

	if err := m.Dialer.DialAndSend(msg); err != nil {
		return false, fmt.Errorf("mail: send quote %s: %w", s.Reference, err)
	}
	m.Log.Info("quote request mailed",
		zap.String("reference", s.Reference),
		zap.Bool("pdf", len(doc) > 0),
	)

	if m.AfterSend != nil {
		if err := m.AfterSend(ctx, s, doc); err != nil {
			m.Log.Warn("quote after-send hook failed", zap.String("reference", s.Reference), zap.Error(err))
		}
	}
	return true, nil
}

func (m *QuoteMailer) build(s quote.Submission) (*gomail.Message, []byte) {
	r := s.Request
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To...)
	if email := strings.TrimSpace(r.Email); email != "" {
		msg.SetAddressHeader("Reply-To", email, strings.TrimSpace(r.FullName))
	}
	msg.SetHeader("Subject", subject(s))
	msg.SetBody("text/plain", s.Summary())

	var doc []byte
	if m.PDF != nil {
		b, err := m.PDF.Generate(s)
		if err != nil {
			m.Log.Warn("quote pdf failed, mailing without attachment", zap.String("reference", s.Reference), zap.Error(err))
		} else {
			doc = b
			msg.Attach(s.Reference+".pdf",
				gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
				gomail.SetCopyFunc(func(w io.Writer) error {
					_, err := w.Write(doc)
					return err
				}),
			)
		}
	}
	return msg, doc
}

func subject(s quote.Submission) string {
	who := strings.TrimSpace(s.Request.CompanyName)
	if who == "" {
		who = strings.TrimSpace(s.Request.FullName)
	}
	return fmt.Sprintf("Quote request %s from %s", s.Reference, who)
}

func (m *QuoteMailer) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

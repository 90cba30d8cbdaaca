package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"voicehub/go_backend/internal/domain/quote"
	"voicehub/go_backend/internal/domain/ui"
	"voicehub/go_backend/internal/i18n"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

var (
	ErrMissingRequired = quote.ErrMissingRequired
	ErrInvalidLanguage = quote.ErrUnsupportedLanguage
	ErrDeliveryFailed  = errors.New("quote form: delivery failed")
	ErrSubmitted       = errors.New("quote form: already submitted")
	ErrInFlight        = errors.New("quote form: submit in progress")
	ErrUnknownField    = errors.New("quote form: unknown field")
)

// Sender delivers a quote request. false with a nil error is a soft failure.
type Sender interface {
	SendQuoteRequest(ctx context.Context, req quote.Request) (bool, error)
}

type Deps struct {
	Sender   Sender
	Notifier ui.Notifier
	T        i18n.Translator
	Fallback string // address shown when delivery fails
	Log      *zap.Logger
}

type Form struct {
	deps Deps

	mu    sync.Mutex
	req   quote.Request
	state State
}

func New(deps Deps) *Form {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Form{deps: deps, state: StateEditing}
}

// Set updates one field by its form name.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitted {
		return ErrSubmitted
	}
	switch field {
	case "fullName":
		f.req.FullName = value
	case "companyName":
		f.req.CompanyName = value
	case "businessType":
		f.req.BusinessType = value
	case "email":
		f.req.Email = value
	case "phone":
		f.req.Phone = value
	case "language":
		f.req.Language = quote.Language(value)
	case "description":
		f.req.Description = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Fill replaces every field at once.
func (f *Form) Fill(req quote.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitted {
		return ErrSubmitted
	}
	f.req = req
	return nil
}

func (f *Form) Request() quote.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.req
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit validates the form and hands it to the sender once.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case StateSubmitted:
		f.mu.Unlock()
		return ErrSubmitted
	case StateSubmitting:
		f.mu.Unlock()
		return ErrInFlight
	}
	req := f.req
	if err := req.Validate(); err != nil {
		f.mu.Unlock()
		f.deps.Log.Info("quote form rejected", zap.Error(err))
		f.deps.Notifier.Notify(ui.Notification{
			Title:       f.t(i18n.QuoteRequired),
			Description: f.validationText(err),
			Variant:     ui.VariantDestructive,
		})
		return err
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	ok, err := f.deps.Sender.SendQuoteRequest(ctx, req)

	f.mu.Lock()
	if ok && err == nil {
		f.state = StateSubmitted
	} else {
		f.state = StateEditing
	}
	f.mu.Unlock()

	if err == nil && !ok {
		err = errors.New("sender reported failure")
	}
	if err != nil {
		f.deps.Log.Error("sending quote request failed", zap.String("email", req.Email), zap.Error(err))
		f.deps.Notifier.Notify(ui.Notification{
			Title:       f.t(i18n.QuoteSendFailedTitle),
			Description: f.t(i18n.QuoteSendFailedFallback, f.deps.Fallback),
			Variant:     ui.VariantDestructive,
		})
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	f.deps.Notifier.Notify(ui.Notification{
		Title:       f.t(i18n.QuoteThankYou),
		Description: f.t(i18n.QuoteThankYouMessage),
	})
	return nil
}

func (f *Form) validationText(err error) string {
	if errors.Is(err, ErrInvalidLanguage) {
		return f.t(i18n.QuoteInvalidLanguage)
	}
	return f.t(i18n.QuoteRequiredFields)
}

func (f *Form) t(key string, args ...any) string {
	if f.deps.T == nil {
		return i18n.New(i18n.Match("")).T(key, args...)
	}
	return f.deps.T.T(key, args...)
}

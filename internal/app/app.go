package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"voicehub/go_backend/internal/app/config"
	apphttp "voicehub/go_backend/internal/app/http"
	"voicehub/go_backend/internal/app/http/handlers"
	"voicehub/go_backend/internal/app/logger"
	"voicehub/go_backend/internal/domain/agent"
	"voicehub/go_backend/internal/domain/agent/demo"
	"voicehub/go_backend/internal/domain/quote"
	"voicehub/go_backend/internal/domain/quote/form"
	pdfgen "voicehub/go_backend/internal/domain/quote/pdf/gofpdf"
	"voicehub/go_backend/internal/infra/db/postgres"
	kafkax "voicehub/go_backend/internal/infra/kafka"
	"voicehub/go_backend/internal/infra/mail"
	"voicehub/go_backend/internal/infra/memory"
	"voicehub/go_backend/internal/infra/redisx"
	"voicehub/go_backend/internal/infra/supabase"
	"voicehub/go_backend/internal/infra/telegram"
)

func Run() {
	cfg := config.MustLoad()

	zl, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, zl *zap.Logger) error {
	checks := map[string]handlers.Check{}

	store, closeStore, err := openStore(ctx, cfg, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	var tracker demo.Tracker = demo.NewMemory()
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		tracker = redisx.NewDemoTracker(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	gen := pdfgen.New(cfg.ServiceName)
	h := handlers.New(cfg, zl, store, tracker, quoteSender(cfg, gen, zl), gen)
	h.Checks = checks

	var producer *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafkax.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, 1024, zl)
		producer.Start()
		h.Events = kafkax.NewOrderEvents(producer, cfg.ServiceName)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		zl.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warn("http shutdown", zap.Error(err))
	}
	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config, checks map[string]handlers.Check) (agent.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return memory.NewAgentStore(), func() {}, nil
	case config.StoreSupabase:
		c, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
		if err != nil {
			return nil, nil, err
		}
		checks["supabase"] = c.Health
		return supabase.NewAgentStore(c), func() {}, nil
	default:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if cfg.MigrateOnStart {
			if err := db.Migrate(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		checks["postgres"] = db.Health
		return postgres.NewAgentStore(db), db.Close, nil
	}
}

func quoteSender(cfg config.Config, gen *pdfgen.Generator, zl *zap.Logger) form.Sender {
	if cfg.SMTPHost == "" {
		zl.Warn("SMTP_HOST not set, quote requests are only logged")
		return logSender{log: zl}
	}
	dialer := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	m := mail.NewQuoteMailer(dialer, cfg.MailFrom, cfg.QuoteRecipients, gen, zl)

	tg := telegram.New(cfg.TelegramBaseURL, cfg.TelegramBotToken, cfg.ManagerChatID, zl)
	if tg.Enabled() {
		m.AfterSend = tg.NotifyQuote
	}
	return m
}

// logSender accepts quote requests without delivering them, for local runs.
type logSender struct{ log *zap.Logger }

func (s logSender) SendQuoteRequest(_ context.Context, req quote.Request) (bool, error) {
	sub := quote.NewSubmission(req, time.Now())
	s.log.Info("quote request (not mailed)", zap.String("reference", sub.Reference), zap.String("email", req.Email))
	return true, nil
}

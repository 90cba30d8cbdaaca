// Package telegram forwards quote requests to a managers chat.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"voicehub/go_backend/internal/domain/quote"
)

const DefaultBaseURL = "https://api.telegram.org"

type Notifier struct {
	BaseURL string
	Token   string
	ChatID  string
	HTTP    *http.Client
	Log     *zap.Logger
}

func New(baseURL, token, chatID string, log *zap.Logger) *Notifier {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{
		BaseURL: baseURL,
		Token:   token,
		ChatID:  chatID,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Log:     log,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.Token != "" && n.ChatID != ""
}

// NotifyQuote posts the summary and, when present, the PDF rendition.
func (n *Notifier) NotifyQuote(ctx context.Context, s quote.Submission, pdf []byte) error {
	if !n.Enabled() {
		return nil
	}
	if err := n.SendText(ctx, s.Summary()); err != nil {
		return err
	}
	if len(pdf) == 0 {
		return nil
	}
	return n.SendDocument(ctx, s.Reference+".pdf", pdf)
}

func (n *Notifier) SendText(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	body, err := json.Marshal(map[string]any{
		"chat_id": n.ChatID,
		"text":    text,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.method("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return n.do(req, "sendMessage")
}

func (n *Notifier) SendDocument(ctx context.Context, filename string, data []byte) error {
	body, contentType := buildDocumentMultipart(n.ChatID, filename, "application/pdf", data)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.method("sendDocument"), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return n.do(req, "sendDocument")
}

func (n *Notifier) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(n.BaseURL, "/"), n.Token, name)
}

func (n *Notifier) do(req *http.Request, op string) error {
	resp, err := n.HTTP.Do(req)
	if err != nil {
		n.Log.Warn("telegram request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("telegram: %s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		n.Log.Warn("telegram non-200",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(msg))),
		)
		return fmt.Errorf("telegram: %s: status %d", op, resp.StatusCode)
	}
	return nil
}

func buildDocumentMultipart(chatID, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if chatID != "" {
		_ = writer.WriteField("chat_id", chatID)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(header)
	_, _ = part.Write(data)
	_ = writer.Close()
	return body, writer.FormDataContentType()
}

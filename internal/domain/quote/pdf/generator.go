package pdf

import "voicehub/go_backend/internal/domain/quote"

type Generator interface {
	Generate(s quote.Submission) ([]byte, error)
}

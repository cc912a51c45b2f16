package utils

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/sashabaranov/go-openai"
)

// Simple retry check for transient OpenAI failures
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	// A cancelled request was stopped on purpose.
	if errors.Is(err, context.Canceled) {
		return false
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		return openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500 || reqErr.HTTPStatusCode == 429
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "502 bad gateway") ||
		strings.Contains(errMsg, "503 service unavailable") ||
		strings.Contains(errMsg, "504 gateway timeout") ||
		strings.Contains(errMsg, "connection reset by peer") ||
		strings.Contains(errMsg, "timeout") {
		return true
	}
	return false
}

// Slugify turns a page name into a lowercase, dash separated file name stem.
// Names with no letters or digits yield fallback.
func Slugify(name, fallback string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return fallback
	}
	return slug
}

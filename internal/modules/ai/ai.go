// Package ai moderates wish text and captions uploaded images through a
// configured model provider. Without a provider the site still works:
// moderation passes everything and captions fall back to a stub.
package ai

import (
	"context"
	"strings"

	"github.com/wishwall/core/internal/config"
	"go.uber.org/zap"
)

// FallbackHint is used when no caption can be generated.
const FallbackHint = "image"

type ModerationResult struct {
	IsAppropriate bool   `json:"isAppropriate"`
	Reason        string `json:"reason,omitempty"`
}

type Service struct {
	provider *config.AIProvider
	logger   *zap.Logger
}

// NewService picks the first configured provider. A nil provider puts the
// service in pass-through mode.
func NewService(cfg config.AIConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &Service{logger: logger}
	for i := range cfg.Providers {
		if strings.TrimSpace(cfg.Providers[i].APIKey) != "" {
			svc.provider = &cfg.Providers[i]
			break
		}
	}
	if svc.provider == nil {
		logger.Warn("no AI provider configured, wish moderation is disabled")
	}
	return svc
}

// Enabled reports whether a provider is wired.
func (s *Service) Enabled() bool { return s.provider != nil }

// ModerateWish reviews wish text. Pass-through mode approves everything;
// a provider failure is returned so the caller can refuse the submission.
func (s *Service) ModerateWish(ctx context.Context, text string) (ModerationResult, error) {
	if s.provider == nil {
		return ModerationResult{IsAppropriate: true}, nil
	}

	raw, err := callTextPrompt(ctx, s.provider, moderationSystemPrompt, moderationUserPromptPrefix+text)
	if err != nil {
		s.logger.Error("wish moderation call failed", zap.Error(err))
		return ModerationResult{}, err
	}

	var result ModerationResult
	if err := unmarshalAIJSON(raw, &result); err != nil {
		s.logger.Error("wish moderation returned unparsable output", zap.String("raw", raw))
		return ModerationResult{}, err
	}
	return result, nil
}

// CaptionImage produces a two-word hint for an image supplied as a data URI.
// Any failure falls back to FallbackHint instead of blocking the upload.
func (s *Service) CaptionImage(ctx context.Context, dataURI string) string {
	if s.provider == nil {
		return FallbackHint
	}

	hint, err := s.captionImage(ctx, dataURI)
	if err != nil {
		s.logger.Warn("image captioning failed, using fallback", zap.Error(err))
		return FallbackHint
	}

	hint = strings.TrimSpace(strings.Trim(strings.TrimSpace(hint), `"`))
	if hint == "" {
		return FallbackHint
	}
	return hint
}

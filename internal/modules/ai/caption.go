package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

// captionImage runs a multimodal completion against the provider. Anthropic
// wants raw base64 plus the media type, OpenAI-style APIs take the data URI
// as an image URL.
func (s *Service) captionImage(ctx context.Context, dataURI string) (string, error) {
	if isAnthropicProviderType(s.provider.Type) {
		return s.captionWithAnthropic(ctx, dataURI)
	}
	return s.captionWithOpenAI(ctx, dataURI)
}

func (s *Service) captionWithOpenAI(ctx context.Context, dataURI string) (string, error) {
	modelID := strings.TrimSpace(s.provider.Model)
	if modelID == "" {
		modelID = defaultOpenAIModel
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(s.provider.APIKey)),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(s.provider.Endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}
	client := openaiclient.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model: openaiclient.ChatModel(modelID),
		Messages: []openaiclient.ChatCompletionMessageParamUnion{
			openaiclient.UserMessage([]openaiclient.ChatCompletionContentPartUnionParam{
				openaiclient.TextContentPart(captionPrompt),
				openaiclient.ImageContentPart(openaiclient.ChatCompletionContentPartImageImageURLParam{
					URL: dataURI,
				}),
			}),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from AI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *Service) captionWithAnthropic(ctx context.Context, dataURI string) (string, error) {
	mediaType, payload, err := parseDataURI(dataURI)
	if err != nil {
		return "", err
	}

	modelID := strings.TrimSpace(s.provider.Model)
	if modelID == "" {
		modelID = defaultAnthropicModel
	}

	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(s.provider.APIKey)),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(s.provider.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}
	client := anthropicclient.NewClient(opts...)

	msg, err := client.Messages.New(ctx, anthropicclient.MessageNewParams{
		Model:     anthropicclient.Model(modelID),
		MaxTokens: 64,
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(
				anthropicclient.NewImageBlockBase64(mediaType, payload),
				anthropicclient.NewTextBlock(captionPrompt),
			),
		},
	})
	if err != nil {
		return "", err
	}

	var full strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			full.WriteString(block.Text)
		}
	}
	if full.Len() == 0 {
		return "", errors.New("empty response from AI")
	}
	return full.String(), nil
}

// parseDataURI splits "data:<mime>;base64,<payload>".
func parseDataURI(dataURI string) (mediaType, payload string, err error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", "", fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", fmt.Errorf("malformed data URI")
	}
	mediaType = strings.TrimSuffix(header, ";base64")
	if mediaType == header {
		return "", "", fmt.Errorf("data URI is not base64 encoded")
	}
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	return mediaType, payload, nil
}

package alttext

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	openrouter "github.com/revrost/go-openrouter"

	"github.com/erik-winther/tagpipe/core"
)

// DefaultModel is the multimodal model used when no override is given.
const DefaultModel = "anthropic/claude-3.5-sonnet"

const (
	describePrompt       = "Provide a concise alt text description for this image (1-2 sentences, suitable for screen readers). Focus on the main content and purpose of the image."
	maxDescriptionTokens = 200
	describeTimeout      = 60 * time.Second
)

// ImageData fetches the raw bytes and MIME type of one image record.
type ImageData func(img core.Image) ([]byte, string, error)

// Generator fills image records with generated descriptions.
type Generator struct {
	describer core.Describer
	logger    *slog.Logger
}

// NewGenerator creates a Generator. A nil describer is allowed and
// leaves every image without alt text.
func NewGenerator(describer core.Describer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{describer: describer, logger: logger}
}

// Describe returns a copy of images with generated alt text. Fetching
// or describing failures degrade that image to empty alt text and the
// loop continues.
func (g *Generator) Describe(ctx context.Context, images []core.Image, data ImageData) []core.Image {
	out := make([]core.Image, len(images))
	copy(out, images)
	if g.describer == nil {
		return out
	}

	for i := range out {
		b, mime, err := data(out[i])
		if err != nil {
			g.logger.Warn("could not read image, leaving alt text empty",
				"image", out[i].Ordinal, "page", out[i].Page, "error", err)
			continue
		}
		alt, err := g.describe(ctx, b, mime)
		if err != nil {
			g.logger.Warn("could not describe image, leaving alt text empty",
				"image", out[i].Ordinal, "page", out[i].Page, "error", err)
			continue
		}
		out[i].Alt = alt
		g.logger.Debug("alt text generated", "image", out[i].Ordinal, "alt", alt)
	}
	return out
}

func (g *Generator) describe(ctx context.Context, data []byte, mime string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, describeTimeout)
	defer cancel()
	return g.describer.Describe(ctx, data, mime)
}

// OpenRouterDescriber asks a multimodal model for image descriptions
// through the OpenRouter chat API.
type OpenRouterDescriber struct {
	client *openrouter.Client
	model  string
}

// NewOpenRouterDescriber builds a describer from the OPENROUTER_API_KEY
// environment variable. When the key is missing it logs setup
// instructions and returns nil, so automatic descriptions degrade to
// empty alt text instead of failing the run.
func NewOpenRouterDescriber(model string, logger *slog.Logger) core.Describer {
	if logger == nil {
		logger = slog.Default()
	}
	key := os.Getenv("OPENROUTER_API_KEY")
	if key == "" {
		logger.Warn("OPENROUTER_API_KEY is not set; images will get empty alt text. " +
			"Create a key at https://openrouter.ai/keys and export OPENROUTER_API_KEY to enable automatic descriptions.")
		return nil
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenRouterDescriber{client: openrouter.NewClient(key), model: model}
}

// Describe sends the image inline as a base64 data URL together with
// the description prompt.
func (o *OpenRouterDescriber) Describe(ctx context.Context, data []byte, mime string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))

	req := openrouter.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: maxDescriptionTokens,
		Messages: []openrouter.ChatCompletionMessage{{
			Role: openrouter.ChatMessageRoleUser,
			Content: openrouter.Content{Multi: []openrouter.ChatMessagePart{
				{
					Type:     openrouter.ChatMessagePartTypeImageURL,
					ImageURL: &openrouter.ChatMessageImageURL{URL: dataURL},
				},
				{
					Type: openrouter.ChatMessagePartTypeText,
					Text: describePrompt,
				},
			}},
		}},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("describing image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("describing image: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content.Text), nil
}

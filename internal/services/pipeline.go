package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"golang.org/x/sync/errgroup"

	"memechat-backend/internal/config"
	"memechat-backend/internal/models"
)

// ErrMissingAPIKey is returned by Generate when no generative backend
// credential was configured. The handler maps it to a config error.
var ErrMissingAPIKey = errors.New("gemini API key is not configured")

// Enhancement output at or below this length is treated as degenerate
// and discarded, keeping the pre-enhancement concept intact.
const minEnhancedLength = 10

const captionFallback = "Something hilariously funny happened! 😂"

const placeholderURLFormat = "https://via.placeholder.com/1024x1024/FF6B6B/FFFFFF?text=%s"

// TextGenerator is the text-completion side of the generative backend.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator is the multimodal side. A (nil, nil) return means the
// backend answered but produced no inline image part.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*InlineImage, error)
}

// TrendFinder supplies trend candidates and relevance matching.
type TrendFinder interface {
	FetchTrends(ctx context.Context) ([]models.TrendItem, []string)
	Match(prompt string, trends []models.TrendItem) *models.TrendItem
}

// Pipeline runs the generation sequence: concept, trend enhancement,
// image, caption. Every stage except the image call degrades instead
// of failing; only image-backend unavailability aborts the request.
type Pipeline struct {
	text   TextGenerator
	image  ImageGenerator
	trends TrendFinder
	mode   config.TrendMode
}

// NewPipeline wires the stages. text and image may be nil when no
// credential is configured; Generate then fails fast with
// ErrMissingAPIKey.
func NewPipeline(text TextGenerator, image ImageGenerator, trends TrendFinder, mode config.TrendMode) *Pipeline {
	return &Pipeline{
		text:   text,
		image:  image,
		trends: trends,
		mode:   mode,
	}
}

func (p *Pipeline) Generate(ctx context.Context, prompt string) (*models.GenerationResult, error) {
	if p.text == nil || p.image == nil {
		return nil, ErrMissingAPIKey
	}

	stages := models.StageMarkers{
		Concept:     "model",
		Enhancement: "skipped",
		Image:       "inline",
		Caption:     "model",
	}

	// Stage 1 and the trend fetch are independent, so they run
	// concurrently. Neither is allowed to fail the group.
	var (
		concept   string
		trendList []models.TrendItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := p.text.GenerateText(gctx, ComposeConceptPrompt(prompt))
		if err != nil || text == "" {
			if err != nil {
				log.Printf("WARNING: concept generation failed, using raw prompt: %v", err)
			}
			concept = prompt
			stages.Concept = "fallback"
			return nil
		}
		concept = text
		return nil
	})
	if p.mode != config.TrendModeNone {
		g.Go(func() error {
			trendList, _ = p.trends.FetchTrends(gctx)
			return nil
		})
	}
	g.Wait()

	metadata := models.GenerationMetadata{}

	// Stage 3: fold the matched trend into the concept, but only keep
	// the result when it is substantial enough to trust.
	if trend := p.matchTrend(prompt, trendList); trend != nil {
		enhanced, err := p.text.GenerateText(ctx, ComposeEnhancementPrompt(concept, trend.Topic, trend.Description))
		switch {
		case err != nil:
			log.Printf("WARNING: enhancement failed, keeping concept: %v", err)
			stages.Enhancement = "rejected"
		case len(enhanced) <= minEnhancedLength:
			log.Printf("WARNING: enhancement too short (%d chars), keeping concept", len(enhanced))
			stages.Enhancement = "rejected"
		default:
			concept = enhanced
			stages.Enhancement = "applied"
			metadata.UsedTrending = true
			topic := trend.Topic
			metadata.TrendingTopic = &topic
		}
	}

	// Stage 4: the only fatal one. No image backend means no result.
	img, err := p.image.GenerateImage(ctx, ComposeImagePrompt(concept))
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	var imageURL string
	if img != nil {
		imageURL = fmt.Sprintf("data:%s;base64,%s", img.MIMEType, img.Data)
	} else {
		log.Println("WARNING: no image data in response, using placeholder")
		imageURL = fmt.Sprintf(placeholderURLFormat, url.QueryEscape(excerpt(concept, 100)))
		stages.Image = "placeholder"
	}

	// Stage 5: caption, never empty.
	caption, err := p.text.GenerateText(ctx, ComposeCaptionPrompt(prompt, concept))
	if err != nil || caption == "" {
		if err != nil {
			log.Printf("WARNING: caption generation failed, using fallback: %v", err)
		}
		caption = captionFallback
		stages.Caption = "fallback"
	}

	metadata.Stages = stages
	return &models.GenerationResult{
		ImageURL:    imageURL,
		Description: caption,
		Prompt:      prompt,
		Metadata:    metadata,
	}, nil
}

func (p *Pipeline) matchTrend(prompt string, trendList []models.TrendItem) *models.TrendItem {
	if p.mode == config.TrendModeNone || p.trends == nil {
		return nil
	}
	return p.trends.Match(prompt, trendList)
}

func excerpt(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

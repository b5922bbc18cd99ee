package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memechat-backend/internal/config"
	"memechat-backend/internal/models"
)

// fakeText routes each prompt kind to a canned reply based on the
// template markers the composers embed.
type fakeText struct {
	conceptReply  string
	conceptErr    error
	enhancedReply string
	enhancedErr   error
	captionReply  string
	captionErr    error
	calls         int
}

func (f *fakeText) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	switch {
	case strings.Contains(prompt, "STEP 1: Find the core human experience"):
		return f.conceptReply, f.conceptErr
	case strings.Contains(prompt, "ENHANCEMENT MECHANICS"):
		return f.enhancedReply, f.enhancedErr
	case strings.Contains(prompt, "shareable description"):
		return f.captionReply, f.captionErr
	}
	return "", errors.New("unexpected prompt")
}

type fakeImage struct {
	img   *InlineImage
	err   error
	calls int
	last  string
}

func (f *fakeImage) GenerateImage(ctx context.Context, prompt string) (*InlineImage, error) {
	f.calls++
	f.last = prompt
	return f.img, f.err
}

type fakeTrends struct {
	trends []models.TrendItem
	match  *models.TrendItem
}

func (f *fakeTrends) FetchTrends(ctx context.Context) ([]models.TrendItem, []string) {
	return f.trends, []string{"stub"}
}

func (f *fakeTrends) Match(prompt string, trends []models.TrendItem) *models.TrendItem {
	return f.match
}

func happyText() *fakeText {
	return &fakeText{
		conceptReply:  "person pouring coffee directly onto cereal",
		enhancedReply: "person pouring the last drops of coffee onto cereal while coworkers watch",
		captionReply:  "This is me every Monday ☕",
	}
}

func TestGenerate_FullPipelineWithTrend(t *testing.T) {
	coffee := models.TrendItem{Topic: "coffee shortage", Description: "beans are gone", Popularity: 9}
	text := happyText()
	image := &fakeImage{img: &InlineImage{MIMEType: "image/png", Data: "aGVsbG8="}}
	p := NewPipeline(text, image, &fakeTrends{trends: []models.TrendItem{coffee}, match: &coffee}, config.TrendModeSimple)

	result, err := p.Generate(context.Background(), "Monday morning")
	require.NoError(t, err)

	assert.Equal(t, "data:image/png;base64,aGVsbG8=", result.ImageURL)
	assert.Equal(t, "This is me every Monday ☕", result.Description)
	assert.Equal(t, "Monday morning", result.Prompt)
	assert.True(t, result.Metadata.UsedTrending)
	require.NotNil(t, result.Metadata.TrendingTopic)
	assert.Equal(t, "coffee shortage", *result.Metadata.TrendingTopic)
	assert.Equal(t, "applied", result.Metadata.Stages.Enhancement)
	assert.Contains(t, image.last, "cartoon style")
}

func TestGenerate_ConceptFallsBackToRawPrompt(t *testing.T) {
	text := happyText()
	text.conceptErr = errors.New("backend down")
	image := &fakeImage{img: &InlineImage{MIMEType: "image/png", Data: "eA=="}}
	p := NewPipeline(text, image, &fakeTrends{}, config.TrendModeSimple)

	result, err := p.Generate(context.Background(), "Monday morning")
	require.NoError(t, err)

	assert.Equal(t, "fallback", result.Metadata.Stages.Concept)
	// The raw prompt flows into the image stage.
	assert.True(t, strings.HasPrefix(image.last, "Monday morning"))
}

func TestGenerate_ShortEnhancementKeepsConcept(t *testing.T) {
	coffee := models.TrendItem{Topic: "coffee shortage", Description: "d", Popularity: 9}
	text := happyText()
	text.enhancedReply = "ok" // degenerate model output
	image := &fakeImage{img: &InlineImage{MIMEType: "image/png", Data: "eA=="}}
	p := NewPipeline(text, image, &fakeTrends{trends: []models.TrendItem{coffee}, match: &coffee}, config.TrendModeSimple)

	result, err := p.Generate(context.Background(), "Monday morning")
	require.NoError(t, err)

	// Concept must pass through unchanged, no silent corruption.
	assert.True(t, strings.HasPrefix(image.last, text.conceptReply))
	assert.Equal(t, "rejected", result.Metadata.Stages.Enhancement)
	assert.False(t, result.Metadata.UsedTrending)
	assert.Nil(t, result.Metadata.TrendingTopic)
}

func TestGenerate_PlaceholderWhenNoImagePart(t *testing.T) {
	text := happyText()
	image := &fakeImage{img: nil} // backend answered, no inline image
	p := NewPipeline(text, image, &fakeTrends{}, config.TrendModeNone)

	result, err := p.Generate(context.Background(), "Monday morning")
	require.NoError(t, err)

	parsed, perr := url.Parse(result.ImageURL)
	require.NoError(t, perr)
	assert.Equal(t, "via.placeholder.com", parsed.Host)

	// The encoded excerpt must decode back to a prefix of the concept.
	textParam := parsed.Query().Get("text")
	assert.NotEmpty(t, textParam)
	assert.True(t, strings.HasPrefix(text.conceptReply, textParam))
	assert.Equal(t, "placeholder", result.Metadata.Stages.Image)
}

func TestGenerate_ImageFailureIsFatal(t *testing.T) {
	text := happyText()
	image := &fakeImage{err: errors.New("connection refused")}
	p := NewPipeline(text, image, &fakeTrends{}, config.TrendModeNone)

	result, err := p.Generate(context.Background(), "Monday morning")
	require.Error(t, err)
	assert.Nil(t, result) // no partial artifacts
}

func TestGenerate_CaptionFallback(t *testing.T) {
	text := happyText()
	text.captionReply = ""
	image := &fakeImage{img: &InlineImage{MIMEType: "image/png", Data: "eA=="}}
	p := NewPipeline(text, image, &fakeTrends{}, config.TrendModeNone)

	result, err := p.Generate(context.Background(), "Monday morning")
	require.NoError(t, err)

	assert.Equal(t, captionFallback, result.Description)
	assert.Equal(t, "fallback", result.Metadata.Stages.Caption)
}

func TestGenerate_TrendModeNoneSkipsEnhancement(t *testing.T) {
	coffee := models.TrendItem{Topic: "coffee shortage", Description: "d", Popularity: 9}
	text := happyText()
	image := &fakeImage{img: &InlineImage{MIMEType: "image/png", Data: "eA=="}}
	p := NewPipeline(text, image, &fakeTrends{trends: []models.TrendItem{coffee}, match: &coffee}, config.TrendModeNone)

	result, err := p.Generate(context.Background(), "Monday morning")
	require.NoError(t, err)

	assert.Equal(t, "skipped", result.Metadata.Stages.Enhancement)
	assert.False(t, result.Metadata.UsedTrending)
	// concept + image + caption, no enhancement call
	assert.Equal(t, 2, text.calls)
}

func TestGenerate_MissingCredential(t *testing.T) {
	p := NewPipeline(nil, nil, &fakeTrends{}, config.TrendModeSimple)

	_, err := p.Generate(context.Background(), "Monday morning")
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// InlineImage is a base64 image payload plus its declared mime type,
// as returned inside a multimodal response part.
type InlineImage struct {
	MIMEType string
	Data     string // base64
}

// ImageClient calls the generateContent endpoint of an image-output
// model, requesting both text and image modalities. The Gemini SDK
// used for the text stages predates response-modality support, so
// this speaks the REST API directly.
type ImageClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewImageClient(apiKey, model string) *ImageClient {
	return &ImageClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://generativelanguage.googleapis.com",
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type textPart struct {
	Text string `json:"text"`
}

type requestContent struct {
	Parts []textPart `json:"parts"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type generateContentRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MIMEType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateImage requests an image for the prompt and scans the
// response parts, in order, for the first inline payload. A response
// with no image part returns (nil, nil); only transport and API
// errors are errors.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) (*InlineImage, error) {
	reqBody := generateContentRequest{
		Contents: []requestContent{
			{Parts: []textPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("image request encode: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image generation call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("image generation status %d: %s", resp.StatusCode, body)
	}

	var parsed generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("image response decode: %w", err)
	}

	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return &InlineImage{MIMEType: mimeType, Data: part.InlineData.Data}, nil
			}
		}
	}

	return nil, nil
}

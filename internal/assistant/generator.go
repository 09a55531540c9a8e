package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPGenerator calls a Gemini-style generateContent endpoint.
type HTTPGenerator struct {
	client *resty.Client
	model  string
	apiKey string
}

func NewHTTPGenerator(baseURL, model, apiKey string) *HTTPGenerator {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	return &HTTPGenerator{client: c, model: model, apiKey: apiKey}
}

type genPart struct {
	Text string `json:"text"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type generateRequest struct {
	Contents []genContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []genContent{{Parts: []genPart{{Text: prompt}}}},
	}

	var out generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(&req).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("generate status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty generation response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

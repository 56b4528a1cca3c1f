package gemini

import (
	"bytes"
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

const serviceName = "gemini"

// ErrUnparsableResponse is returned when the model answered with something other than the expected JSON.
var ErrUnparsableResponse = errors.New("PARSE_ERROR")

// UnreadableDocumentWarning is attached to results whose model output could not be parsed.
const UnreadableDocumentWarning = "Impossible d'analyser le document. Assurez-vous que l'image est claire et lisible."

type geminiClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string
}

func NewGeminiClient(baseURL, apiKey, model string, timeout time.Duration) contracts.DocumentAnalyzer {
	return &geminiClient{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

func (c *geminiClient) Analyze(ctx context.Context, data []byte, mimeType, documentType string) (*models.DocumentAnalysis, error) {
	if c.APIKey == "" {
		return nil, exceptions.ErrExternalServiceStatus(errors.New("GEMINI_API_KEY is not configured"), serviceName, "unconfigured")
	}

	payload, err := json.Marshal(generateContentRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
				{Text: promptFor(documentType)},
			},
		}},
	})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	if resp.StatusCode != http.StatusOK {
		message := gjson.GetBytes(body, "error.message").String()
		if message == "" {
			message = resp.Status
		}
		return nil, exceptions.ErrExternalServiceStatus(errors.New(message), serviceName, resp.Status)
	}

	var text strings.Builder
	for _, textPart := range gjson.GetBytes(body, "candidates.0.content.parts.#.text").Array() {
		text.WriteString(textPart.String())
	}

	return ParseAnalysis(text.String())
}

// StripCodeFences removes markdown code fences the model sometimes wraps JSON in.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json\n", "")
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```\n", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func ParseAnalysis(text string) (*models.DocumentAnalysis, error) {
	jsonText := StripCodeFences(text)
	if !gjson.Valid(jsonText) || !gjson.Parse(jsonText).IsObject() {
		return nil, ErrUnparsableResponse
	}

	parsed := gjson.Parse(jsonText)
	analysis := &models.DocumentAnalysis{
		DocumentType:  parsed.Get("documentType").String(),
		IsValid:       parsed.Get("isValid").Bool(),
		Confidence:    parsed.Get("confidence").Float(),
		ExtractedData: map[string]any{},
		Warnings:      []string{},
	}
	if analysis.DocumentType == "" {
		analysis.DocumentType = "unknown"
	}

	if extracted, ok := parsed.Get("extractedData").Value().(map[string]interface{}); ok {
		analysis.ExtractedData = extracted
	}
	for _, warning := range parsed.Get("warnings").Array() {
		analysis.Warnings = append(analysis.Warnings, warning.String())
	}
	return analysis, nil
}

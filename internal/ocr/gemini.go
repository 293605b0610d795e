package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

const transcriptionPrompt = `Transcribe every piece of text visible in this
payment screenshot exactly as printed, one line per visual line. Do not
translate, summarize, or add commentary. Preserve digits, punctuation, and
masking characters such as * and # exactly.`

// Gemini implements the Recognizer interface using the Google Gemini API.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGemini creates a Gemini recognizer. modelName falls back to a
// sensible default when empty.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ocr: gemini api key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("ocr: creating gemini client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: 30 * time.Second,
	}, nil
}

// Recognize sends the screenshot to Gemini and returns the transcription.
func (g *Gemini) Recognize(ctx context.Context, image []byte, langHint string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := transcriptionPrompt
	if langHint == LanguageMyanmar {
		prompt += "\nThe text is primarily in the Myanmar script."
	}

	parts := []genai.Part{
		genai.ImageData("png", image),
		genai.Text(prompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", &RecognitionError{Language: langHint, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &RecognitionError{Language: langHint, Err: fmt.Errorf("empty response")}
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}

	return strings.TrimSpace(out.String()), nil
}

// Close closes the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

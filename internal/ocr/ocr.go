// Package ocr turns screenshot bytes into raw text for the verification
// pipeline. Recognition is an external collaborator: the pipeline itself
// only ever sees the resulting string.
package ocr

import (
	"context"
	"fmt"
)

// Language hints passed to the recognizer. The primary receipt layout is
// English; Myanmar-script receipts are the degraded fallback.
const (
	LanguageEnglish = "eng"
	LanguageMyanmar = "mya"
)

// Recognizer extracts raw text from an image.
type Recognizer interface {
	// Recognize returns the text visible in the image. The language hint
	// biases recognition toward a script; it is advisory only.
	Recognize(ctx context.Context, image []byte, langHint string) (string, error)

	// Close releases recognizer resources.
	Close() error
}

// RecognitionError reports a failed recognition attempt.
type RecognitionError struct {
	Language string
	Err      error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("ocr: recognition failed (lang %s): %v", e.Language, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// RecognizeWithFallback runs a primary-language pass and, when the result
// contains no ASCII letters at all, retries with the Myanmar hint. A
// receipt whose transcription has no Latin characters cannot be the
// labeled English layout, so the second pass gives the shape-only
// extraction rules better input.
func RecognizeWithFallback(ctx context.Context, r Recognizer, image []byte) (string, error) {
	text, err := r.Recognize(ctx, image, LanguageEnglish)
	if err != nil {
		return "", err
	}
	if hasLatinLetters(text) {
		return text, nil
	}
	return r.Recognize(ctx, image, LanguageMyanmar)
}

func hasLatinLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

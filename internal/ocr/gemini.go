package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/parsererror"
)

// transcriptionPrompt asks for a verbatim transcription; row recognition
// stays in the deterministic matcher, so the model is used strictly as a
// text recognition capability.
const transcriptionPrompt = `Transcribe all text visible in this bank statement page image.
Return the text line by line exactly as printed, preserving the order of rows.
Do not summarize, do not interpret, do not add any commentary.`

// GeminiRecognizer implements Recognizer on top of a vision-enabled Gemini
// model.
type GeminiRecognizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    logging.Logger
}

// NewGeminiRecognizer creates a recognizer for the given API key and model
// name.
func NewGeminiRecognizer(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiRecognizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini recognizer requires an API key")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiRecognizer{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiRecognizer) Close() error {
	return g.client.Close()
}

// Recognize submits the page image and returns the transcription.
func (g *GeminiRecognizer) Recognize(ctx context.Context, image []byte, langHint string) (string, error) {
	prompt := transcriptionPrompt
	if langHint != "" {
		prompt += "\nThe statement language is: " + langHint + "."
	}

	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData("png", image),
		genai.Text(prompt),
	)
	if err != nil {
		return "", &parsererror.RecognitionError{Engine: "gemini", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &parsererror.RecognitionError{
			Engine: "gemini",
			Err:    fmt.Errorf("empty response"),
		}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(fmt.Sprintf("%v", part))
	}

	g.log.Debug("Gemini transcription returned",
		logging.Field{Key: logging.FieldCount, Value: sb.Len()})
	return sb.String(), nil
}

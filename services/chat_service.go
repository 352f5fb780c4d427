package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"autogenics-server/config"
)

// FallbackReply is appended whenever the upstream call fails for any
// reason. The underlying error is never shown to the customer.
const FallbackReply = "Sorry, I'm having trouble connecting right now. Please try again later."

// systemPrompt defines the assistant's identity and the business facts it
// may draw on.
const systemPrompt = `
You are an expert car detailing assistant for Autogenics, a premium car detailing service.

ABOUT AUTOGENICS:
- Offers various detailing packages including Basic Wash ($49.99), Premium Detail ($99.99), and Ceramic Coating ($249.99)
- Known for exceptional quality and attention to detail
- Uses premium, eco-friendly products
- Services typically take 1-2 hours depending on the package
- Located with convenient access and waiting area
- Booking available online or by phone

GUIDELINES:
- Be helpful, friendly, and concise
- Recommend appropriate services based on customer needs
- Answer questions about services, pricing, scheduling, and products
- Emphasize the premium quality and professional approach of Autogenics
- If asked something you don't know, acknowledge limitations and suggest contacting the shop directly
- Don't make up information not provided here

KEY FEATURES AND BENEFITS TO HIGHLIGHT:
- Professional detailers with years of experience
- Satisfaction guarantee on all services
- Premium products that protect vehicles
- Efficient service completed in reasonable timeframes
- Easy online booking system
- Ceramic coating provides long-lasting protection
`

var ErrAPIKeyMissing = errors.New("gemini API key is not configured")

// ChatService is a stateless wrapper around the Gemini completion
// endpoint. Transcript state lives in ChatStore.
type ChatService struct {
	client *http.Client
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewChatService creates a chat service with a bounded request timeout.
func NewChatService() *ChatService {
	return &ChatService{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Complete sends the system prompt, the history window, and the latest
// user message to the completion endpoint and returns the generated reply.
func (cs *ChatService) Complete(message string, history []ChatMessage) (string, error) {
	cfg := config.AppConfig.Chat
	if cfg.GeminiAPIKey == "" {
		return "", ErrAPIKeyMissing
	}

	// Gemini has no system role: the prompt goes in as a user turn
	// followed by a model acknowledgement.
	contents := []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: systemPrompt}}},
		{Role: "model", Parts: []geminiPart{{Text: "I understand. I'll act as an expert car detailing assistant for Autogenics, following the guidelines provided."}}},
	}
	for _, msg := range history {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: msg.Content}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})

	body, err := json.Marshal(geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 800,
			TopP:            0.95,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, cfg.GeminiAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", cfg.GeminiAPIKey)

	resp, err := cs.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error: %s", string(respBody))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini API error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from gemini")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidyhome/homeservices-api/config"
)

// Chat roles accepted from clients
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	chatRoleSystem    = "system"
)

var (
	ErrGatewayNotConfigured   = errors.New("chat gateway is not configured")
	ErrGatewayRateLimited     = errors.New("chat gateway rate limited")
	ErrGatewayPaymentRequired = errors.New("chat gateway credits exhausted")
	ErrGatewayUnavailable     = errors.New("chat gateway unavailable")
)

// ChatMessage is one turn of the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TokenStream yields assistant tokens until io.EOF
type TokenStream interface {
	Next() (string, error)
	Close() error
}

// ChatStreamer opens a streamed completion for a conversation
type ChatStreamer interface {
	OpenStream(ctx context.Context, history []ChatMessage) (TokenStream, error)
}

// ChatService talks to an OpenAI-compatible chat completions endpoint
type ChatService struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	model        string
	systemPrompt string
}

var chatStreamerInstance ChatStreamer

// NewChatService builds a ChatService from configuration.
// The client has no overall timeout; streams are bounded by the request context.
func NewChatService(cfg *config.Config, httpClient *http.Client) *ChatService {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ChatService{
		httpClient:   httpClient,
		apiKey:       cfg.LLMAPIKey,
		baseURL:      strings.TrimRight(cfg.LLMGatewayURL, "/"),
		model:        cfg.LLMModel,
		systemPrompt: SystemPrompt(cfg),
	}
}

// GetChatStreamer returns the active chat streamer
func GetChatStreamer() ChatStreamer {
	return chatStreamerInstance
}

// SetChatStreamer replaces the active chat streamer
func SetChatStreamer(s ChatStreamer) {
	chatStreamerInstance = s
}

// SystemPrompt is the fixed instruction sent ahead of every conversation
func SystemPrompt(cfg *config.Config) string {
	return fmt.Sprintf(`You are the friendly assistant for %s, a home services company offering cleaning, removals and care.
Help customers understand our services, explain how cleaning prices work (from £300 for up to 2 bedrooms and 1 bathroom, plus £80 per extra hour) and guide them to book online or request a quote.
Never invent availability, discounts or staff names. If you are unsure, suggest calling %s or messaging us on WhatsApp at %s.
Keep answers short and in plain British English.`, cfg.CompanyName, cfg.ContactPhone, cfg.WhatsAppNumber)
}

// FallbackMessage is the user-facing text shown when the gateway cannot answer
func FallbackMessage(cfg *config.Config, err error) string {
	if cfg == nil {
		cfg = &config.Config{}
	}
	switch {
	case errors.Is(err, ErrGatewayRateLimited):
		return fmt.Sprintf("Our assistant is very busy right now. Please try again in a moment, or call us on %s or message us on WhatsApp at %s.", cfg.ContactPhone, cfg.WhatsAppNumber)
	case errors.Is(err, ErrGatewayPaymentRequired):
		return fmt.Sprintf("Our assistant is temporarily unavailable. Please call us on %s or message us on WhatsApp at %s.", cfg.ContactPhone, cfg.WhatsAppNumber)
	default:
		return fmt.Sprintf("Sorry, something went wrong. Please call us on %s or message us on WhatsApp at %s.", cfg.ContactPhone, cfg.WhatsAppNumber)
	}
}

// OpenStream posts the system prompt plus history and returns the token stream.
// Upstream 429 and 402 map to ErrGatewayRateLimited and ErrGatewayPaymentRequired.
func (s *ChatService) OpenStream(ctx context.Context, history []ChatMessage) (TokenStream, error) {
	if s == nil || strings.TrimSpace(s.apiKey) == "" || s.baseURL == "" {
		return nil, ErrGatewayNotConfigured
	}

	messages := make([]ChatMessage, 0, len(history)+1)
	messages = append(messages, ChatMessage{Role: chatRoleSystem, Content: s.systemPrompt})
	messages = append(messages, history...)

	body, err := json.Marshal(map[string]interface{}{
		"model":    s.model,
		"messages": messages,
		"stream":   true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, ErrGatewayRateLimited
		case http.StatusPaymentRequired:
			return nil, ErrGatewayPaymentRequired
		default:
			return nil, fmt.Errorf("%w: status %d: %s", ErrGatewayUnavailable, resp.StatusCode, string(data))
		}
	}

	return &sseTokenStream{body: resp.Body, scanner: bufio.NewScanner(resp.Body)}, nil
}

type sseTokenStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

// Next returns the next non-empty content delta, or io.EOF after [DONE]
func (s *sseTokenStream) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			s.done = true
			return "", io.EOF
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", fmt.Errorf("decode stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		return chunk.Choices[0].Delta.Content, nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	s.done = true
	return "", io.EOF
}

func (s *sseTokenStream) Close() error {
	return s.body.Close()
}

// MockChatStreamer replays fixed tokens or fails with Err
type MockChatStreamer struct {
	Tokens   []string
	Err      error
	Received [][]ChatMessage
}

func (m *MockChatStreamer) OpenStream(ctx context.Context, history []ChatMessage) (TokenStream, error) {
	m.Received = append(m.Received, history)
	if m.Err != nil {
		return nil, m.Err
	}
	return &sliceTokenStream{tokens: m.Tokens}, nil
}

type sliceTokenStream struct {
	tokens []string
	pos    int
}

func (s *sliceTokenStream) Next() (string, error) {
	if s.pos >= len(s.tokens) {
		return "", io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

func (s *sliceTokenStream) Close() error { return nil }

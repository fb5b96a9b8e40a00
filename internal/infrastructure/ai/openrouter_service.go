package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/infrastructure/metrics"
	"github.com/patriciastocker/intranet/pkg/config"
)

// Verificar en tiempo de compilación que OpenRouterService implementa LLMService.
var _ ports.LLMService = (*OpenRouterService)(nil)

// DefaultOpenRouterURL endpoint de chat completions de OpenRouter.
const DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

const openRouterSystemPrompt = "Eres un asistente que identifica contactos mencionados en notas de oficina."

// OpenRouterService adaptador que implementa LLMService usando la API de chat completions de OpenRouter.
// Usa net/http de la librería estándar; no requiere SDK.
type OpenRouterService struct {
	apiKey     string
	model      string
	referer    string
	title      string
	url        string
	httpClient *http.Client
}

// NewOpenRouterService construye el adaptador.
// Si la clave está vacía las llamadas devuelven domain.ErrNotConfigured en lugar de panic.
func NewOpenRouterService(cfg config.AIConfig) *OpenRouterService {
	return &OpenRouterService{
		apiKey:  cfg.OpenRouterAPIKey,
		model:   cfg.OpenRouterModel,
		referer: cfg.Referer,
		title:   cfg.AppTitle,
		url:     DefaultOpenRouterURL,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// WithURL reemplaza el endpoint (tests).
func (s *OpenRouterService) WithURL(u string) *OpenRouterService {
	s.url = u
	return s
}

// ── Protocolo chat completions ────────────────────────────────────────────────

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// SuggestContact pide al modelo el nombre del contacto al que se refiere content.
// Devuelve el texto tal como lo respondió el modelo (un nombre o ports.NoContactAnswer).
func (s *OpenRouterService) SuggestContact(ctx context.Context, content string, contacts []*entity.Contact) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: OPENROUTER_API_KEY: %w", domain.ErrNotConfigured)
	}

	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: openRouterSystemPrompt},
			{Role: "user", Content: BuildContactPrompt(content, contacts)},
		},
		Temperature: 0.3,
		MaxTokens:   100,
		TopP:        1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", s.referer)
	req.Header.Set("X-Title", s.title)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("openrouter").Inc()
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues("openrouter").Inc()
		var errResp chatResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: OpenRouter error (%v): %s: %w", errResp.Error.Code, errResp.Error.Message, domain.ErrUpstream)
		}
		return "", fmt.Errorf("AI: OpenRouter HTTP %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var out chatResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta OpenRouter: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("AI: OpenRouter devolvió respuesta vacía")
	}
	return cleanAnswer(out.Choices[0].Message.Content), nil
}

// BuildContactPrompt arma el mensaje de usuario con la nota y la lista de contactos.
func BuildContactPrompt(content string, contacts []*entity.Contact) string {
	var b strings.Builder
	b.WriteString("Analiza el siguiente contenido de un post-it y determina a cuál de los contactos se refiere.\n\n")
	b.WriteString("Contenido del post-it:\n\"")
	b.WriteString(content)
	b.WriteString("\"\n\nContactos disponibles:\n")
	for _, c := range contacts {
		b.WriteString("- ")
		b.WriteString(c.Name)
		if c.Alias != "" {
			b.WriteString(" (")
			b.WriteString(c.Alias)
			b.WriteString(")")
		}
		b.WriteString(" - ")
		b.WriteString(c.Email)
		b.WriteString("\n")
	}
	b.WriteString("\nResponde ÚNICAMENTE con el nombre exacto del contacto tal como aparece en la lista, ")
	b.WriteString("o con la palabra ")
	b.WriteString(ports.NoContactAnswer)
	b.WriteString(" si ningún contacto corresponde. No agregues explicaciones.")
	return b.String()
}

// cleanAnswer quita comillas, viñetas y puntuación final que algunos modelos agregan.
func cleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[:nl]
	}
	s = strings.TrimLeft(s, "-* ")
	return strings.TrimSpace(strings.Trim(s, "\"'`. "))
}

package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/infrastructure/ai"
	"github.com/patriciastocker/intranet/pkg/config"
)

var contacts = []*entity.Contact{
	{Name: "Juan Pérez", Alias: "Juanito", Email: "juan@statsen.cl"},
	{Name: "Ana Rojas", Email: "ana@focovi.cl"},
}

func cfg() config.AIConfig {
	return config.AIConfig{
		OpenRouterAPIKey: "sk-test",
		OpenRouterModel:  "test-model",
		Referer:          "http://localhost:3001",
		AppTitle:         "Contact Finder",
	}
}

func TestSuggestContact_EnviaParametrosYLimpiaRespuesta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost:3001", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Contact Finder", r.Header.Get("X-Title"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])
		assert.Equal(t, 0.3, body["temperature"])
		assert.Equal(t, float64(100), body["max_tokens"])
		assert.Equal(t, float64(1), body["top_p"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" \"Juan Pérez\".\n"}}]}`))
	}))
	defer srv.Close()

	svc := ai.NewOpenRouterService(cfg()).WithURL(srv.URL)
	got, err := svc.SuggestContact(context.Background(), "llamar a juan por la marca", contacts)
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", got)
}

func TestSuggestContact_SinClave(t *testing.T) {
	c := cfg()
	c.OpenRouterAPIKey = ""
	_, err := ai.NewOpenRouterService(c).SuggestContact(context.Background(), "x", contacts)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}

func TestSuggestContact_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := ai.NewOpenRouterService(cfg()).WithURL(srv.URL).SuggestContact(context.Background(), "x", contacts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestBuildContactPrompt_ListaContactos(t *testing.T) {
	p := ai.BuildContactPrompt("revisar poder", contacts)
	assert.Contains(t, p, "- Juan Pérez (Juanito) - juan@statsen.cl\n")
	assert.Contains(t, p, "- Ana Rojas - ana@focovi.cl\n")
	assert.Contains(t, p, "NINGUNO")
	assert.Contains(t, p, `"revisar poder"`)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
	"github.com/patriciastocker/intranet/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Errores sin sentinel: nunca llegan al cliente, sí al log
// ──────────────────────────────────────────────────────────────────────────────

var errDisco = errors.New("disk I/O error")

type brokenDeudaRepo struct {
	repository.DeudaRepository
}

func (brokenDeudaRepo) Create(context.Context, *entity.Deuda) (*entity.Deuda, error) {
	return nil, errDisco
}

func (brokenDeudaRepo) Update(context.Context, int64, entity.DeudaPatch) (*entity.Deuda, error) {
	return nil, errDisco
}

func newErrorsApp(logs *bytes.Buffer) *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger(logger.New(logger.Config{Env: "production", Level: "info", Out: logs})))
	h := NewDeudaHandler(usecase.NewDeudaUseCase(brokenDeudaRepo{}, nil), nil)
	app.Post("/deudas", h.Create)
	app.Put("/deudas/:id", h.Update)
	app.Get("/raw", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("sqlite: FOREIGN KEY constraint failed"), "")
	})
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, dto.ErrorResponse) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestDeudas_FalloAlGuardarResponde400ConMensajeFijo(t *testing.T) {
	var logs bytes.Buffer
	app := newErrorsApp(&logs)

	status, body := send(t, app, http.MethodPost, "/deudas",
		`{"empresaAcreedora":"FAST NET","numeroFactura":"F-9","fechaEmision":"2025-08-01","fechaVencimiento":"2025-09-01","montoPendiente":10}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Error al crear deuda", body.Message)

	status, body = send(t, app, http.MethodPut, "/deudas/1", `{"numeroFactura":"F-10"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Error al actualizar deuda", body.Message)

	assert.Contains(t, logs.String(), "disk I/O error")
}

func TestRespondError_OcultaTextoDelDriver(t *testing.T) {
	var logs bytes.Buffer
	app := newErrorsApp(&logs)

	status, body := send(t, app, http.MethodGet, "/raw", "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, internalMessage, body.Message)
	assert.NotContains(t, body.Message, "FOREIGN KEY")
	assert.Contains(t, logs.String(), "FOREIGN KEY constraint failed")
}

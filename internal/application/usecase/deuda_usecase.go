package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

// DeudaUseCase casos de uso de deudas con empresas acreedoras.
type DeudaUseCase struct {
	repo     repository.DeudaRepository
	exporter ports.DeudaExporter
	now      func() time.Time
}

// NewDeudaUseCase construye el caso de uso. exporter puede ser nil si no se expone la planilla.
func NewDeudaUseCase(repo repository.DeudaRepository, exporter ports.DeudaExporter) *DeudaUseCase {
	return &DeudaUseCase{repo: repo, exporter: exporter, now: time.Now}
}

// List devuelve todas las deudas ordenadas por vencimiento.
func (uc *DeudaUseCase) List(ctx context.Context) (*dto.DeudaListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.DeudaListResponse{Deudas: make([]dto.DeudaResponse, 0, len(list))}
	for _, d := range list {
		out.Deudas = append(out.Deudas, toDeudaResponse(d))
	}
	return out, nil
}

// Create valida y registra una deuda.
func (uc *DeudaUseCase) Create(ctx context.Context, in dto.CreateDeudaRequest) (*dto.DeudaResponse, error) {
	if strings.TrimSpace(in.EmpresaAcreedora) == "" || strings.TrimSpace(in.NumeroFactura) == "" ||
		in.FechaEmision == "" || in.FechaVencimiento == "" || in.MontoPendiente == nil {
		return nil, fmt.Errorf("empresaAcreedora, numeroFactura, fechaEmision, fechaVencimiento y montoPendiente son requeridos: %w", domain.ErrInvalidInput)
	}
	emision, err := parseDate("fechaEmision", in.FechaEmision)
	if err != nil {
		return nil, err
	}
	venc, err := parseDate("fechaVencimiento", in.FechaVencimiento)
	if err != nil {
		return nil, err
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.EstadoVigente
	}
	if !entity.ValidEstado(estado) {
		return nil, fmt.Errorf("estado %q no válido: %w", estado, domain.ErrInvalidInput)
	}
	if in.DiasRetraso < 0 {
		return nil, fmt.Errorf("diasRetraso no puede ser negativo: %w", domain.ErrInvalidInput)
	}

	created, err := uc.repo.Create(ctx, &entity.Deuda{
		EmpresaAcreedora: strings.TrimSpace(in.EmpresaAcreedora),
		NumeroFactura:    strings.TrimSpace(in.NumeroFactura),
		FechaEmision:     emision,
		FechaVencimiento: venc,
		MontoPendiente:   decimal.NewFromFloat(*in.MontoPendiente),
		Estado:           estado,
		DiasRetraso:      in.DiasRetraso,
	})
	if err != nil {
		return nil, err
	}
	out := toDeudaResponse(created)
	return &out, nil
}

// Update aplica una actualización parcial. Devuelve (nil, nil) si la deuda no existe.
func (uc *DeudaUseCase) Update(ctx context.Context, id int64, in dto.UpdateDeudaRequest) (*dto.DeudaResponse, error) {
	var patch entity.DeudaPatch
	patch.EmpresaAcreedora = in.EmpresaAcreedora
	patch.NumeroFactura = in.NumeroFactura
	if in.FechaEmision != nil {
		t, err := parseDate("fechaEmision", *in.FechaEmision)
		if err != nil {
			return nil, err
		}
		patch.FechaEmision = &t
	}
	if in.FechaVencimiento != nil {
		t, err := parseDate("fechaVencimiento", *in.FechaVencimiento)
		if err != nil {
			return nil, err
		}
		patch.FechaVencimiento = &t
	}
	if in.MontoPendiente != nil {
		m := decimal.NewFromFloat(*in.MontoPendiente)
		patch.MontoPendiente = &m
	}
	if in.Estado != nil {
		if !entity.ValidEstado(*in.Estado) {
			return nil, fmt.Errorf("estado %q no válido: %w", *in.Estado, domain.ErrInvalidInput)
		}
		patch.Estado = in.Estado
	}
	patch.DiasRetraso = in.DiasRetraso

	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	out := toDeudaResponse(updated)
	return &out, nil
}

// Delete elimina la deuda y devuelve la fila borrada. (nil, nil) si no existe.
func (uc *DeudaUseCase) Delete(ctx context.Context, id int64) (*dto.DeudaResponse, error) {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil || deleted == nil {
		return nil, err
	}
	out := toDeudaResponse(deleted)
	return &out, nil
}

// Resumen total adeudado y desglose por empresa acreedora.
func (uc *DeudaUseCase) Resumen(ctx context.Context) (*dto.ResumenResponse, error) {
	r, err := uc.repo.Resumen(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ResumenResponse{
		TotalAdeudado:      r.TotalAdeudado.InexactFloat64(),
		DesglosePorEmpresa: make(map[string]dto.EmpresaResumen, len(r.PorEmpresa)),
	}
	for _, e := range r.PorEmpresa {
		out.DesglosePorEmpresa[e.Empresa] = dto.EmpresaResumen{Total: e.Total.InexactFloat64(), Facturas: e.Facturas}
	}
	return out, nil
}

// RecalcularVencimientos actualiza estado y días de retraso respecto a hoy.
func (uc *DeudaUseCase) RecalcularVencimientos(ctx context.Context) (*dto.RecalcularResponse, error) {
	n, err := uc.repo.RefreshOverdue(ctx, uc.now())
	if err != nil {
		return nil, err
	}
	return &dto.RecalcularResponse{Actualizadas: n}, nil
}

// Export genera la planilla XLSX de todas las deudas.
func (uc *DeudaUseCase) Export(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("exportador de deudas: %w", domain.ErrNotConfigured)
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportDeudas(ctx, list)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(entity.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s debe tener formato YYYY-MM-DD: %w", field, domain.ErrInvalidInput)
	}
	return t, nil
}

func toDeudaResponse(d *entity.Deuda) dto.DeudaResponse {
	return dto.DeudaResponse{
		ID:               d.ID,
		EmpresaAcreedora: d.EmpresaAcreedora,
		NumeroFactura:    d.NumeroFactura,
		FechaEmision:     d.FechaEmision.Format(entity.DateLayout),
		FechaVencimiento: d.FechaVencimiento.Format(entity.DateLayout),
		MontoPendiente:   d.MontoPendiente.InexactFloat64(),
		Estado:           d.Estado,
		DiasRetraso:      d.DiasRetraso,
		CreatedAt:        formatTimestamp(d.CreatedAt),
		UpdatedAt:        formatTimestamp(d.UpdatedAt),
	}
}

// formatTimestamp "" para fechas cero.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// EmpresaUseCase lectura de empresas acreedoras.
type EmpresaUseCase struct {
	repo repository.EmpresaRepository
}

// NewEmpresaUseCase construye el caso de uso.
func NewEmpresaUseCase(repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{repo: repo}
}

// List devuelve las empresas indexadas por nombre.
func (uc *EmpresaUseCase) List(ctx context.Context) (*dto.EmpresasResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.EmpresasResponse{Empresas: make(map[string]dto.EmpresaResponse, len(list))}
	for _, e := range list {
		r := dto.EmpresaResponse{
			ID:        e.ID,
			Nombre:    e.Nombre,
			RUT:       e.RUT,
			Banco:     e.Banco,
			Cuenta:    e.Cuenta,
			CreatedAt: formatTimestamp(e.CreatedAt),
			UpdatedAt: formatTimestamp(e.UpdatedAt),
		}
		if e.Email != "" {
			email := e.Email
			r.Email = &email
		}
		out.Empresas[e.Nombre] = r
	}
	return out, nil
}

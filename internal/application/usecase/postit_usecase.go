package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

// PostItUseCase tablero de notas adhesivas.
type PostItUseCase struct {
	repo repository.PostItRepository
	now  func() time.Time
}

// NewPostItUseCase construye el caso de uso.
func NewPostItUseCase(repo repository.PostItRepository) *PostItUseCase {
	return &PostItUseCase{repo: repo, now: time.Now}
}

// List notas activas o archivadas ordenadas por posición.
func (uc *PostItUseCase) List(ctx context.Context, archived bool) (*dto.PostItListResponse, error) {
	list, err := uc.repo.List(ctx, archived)
	if err != nil {
		return nil, err
	}
	out := &dto.PostItListResponse{PostIts: make([]dto.PostItResponse, 0, len(list))}
	for _, p := range list {
		out.PostIts = append(out.PostIts, toPostItResponse(p))
	}
	return out, nil
}

// GetByID obtiene una nota. (nil, nil) si no existe.
func (uc *PostItUseCase) GetByID(ctx context.Context, id string) (*dto.PostItResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	out := toPostItResponse(p)
	return &out, nil
}

// Create inserta la nota al tope del tablero.
func (uc *PostItUseCase) Create(ctx context.Context, in dto.CreatePostItRequest) (*dto.PostItResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("Title is required: %w", domain.ErrInvalidInput)
	}
	p := &entity.PostIt{
		ID:      newID("postit", uc.now()),
		Title:   title,
		Content: in.Content,
		Color:   in.Color,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toPostItResponse(p)
	return &out, nil
}

// Update aplica los campos presentes. (nil, nil) si no existe.
func (uc *PostItUseCase) Update(ctx context.Context, id string, in dto.UpdatePostItRequest) (*dto.PostItResponse, error) {
	patch := entity.PostItPatch{
		Title:    in.Title,
		Content:  in.Content,
		Color:    in.Color,
		Position: in.Position,
	}
	if in.Archived != nil {
		a := bool(*in.Archived)
		patch.Archived = &a
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("Title is required: %w", domain.ErrInvalidInput)
	}
	p, err := uc.repo.Update(ctx, id, patch)
	if err != nil || p == nil {
		return nil, err
	}
	out := toPostItResponse(p)
	return &out, nil
}

// Delete elimina la nota; false si no existía.
func (uc *PostItUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

// Reorder asigna posiciones en el orden de ids.
func (uc *PostItUseCase) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("ids es requerido: %w", domain.ErrInvalidInput)
	}
	return uc.repo.Reorder(ctx, ids)
}

func toPostItResponse(p *entity.PostIt) dto.PostItResponse {
	archived := 0
	if p.Archived {
		archived = 1
	}
	return dto.PostItResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Color:     p.Color,
		Position:  p.Position,
		Archived:  archived,
		CreatedAt: formatTimestamp(p.CreatedAt),
		UpdatedAt: formatTimestamp(p.UpdatedAt),
	}
}

// ReadStatusUseCase estado de lectura de correos.
type ReadStatusUseCase struct {
	repo repository.ReadStatusRepository
}

// NewReadStatusUseCase construye el caso de uso.
func NewReadStatusUseCase(repo repository.ReadStatusRepository) *ReadStatusUseCase {
	return &ReadStatusUseCase{repo: repo}
}

// List ids de correos leídos.
func (uc *ReadStatusUseCase) List(ctx context.Context) (*dto.ReadStatusResponse, error) {
	ids, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return &dto.ReadStatusResponse{ReadEmails: ids}, nil
}

// MarkRead marca emailID como leído (idempotente).
func (uc *ReadStatusUseCase) MarkRead(ctx context.Context, emailID string) error {
	if strings.TrimSpace(emailID) == "" {
		return fmt.Errorf("Email ID is required: %w", domain.ErrInvalidInput)
	}
	return uc.repo.MarkRead(ctx, emailID)
}

// MarkUnread quita la marca de leído.
func (uc *ReadStatusUseCase) MarkUnread(ctx context.Context, emailID string) error {
	if strings.TrimSpace(emailID) == "" {
		return fmt.Errorf("Email ID is required: %w", domain.ErrInvalidInput)
	}
	return uc.repo.MarkUnread(ctx, emailID)
}

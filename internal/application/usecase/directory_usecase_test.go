package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
	"github.com/patriciastocker/intranet/internal/infrastructure/sqldb"
)

type directory struct {
	companies *usecase.CompanyUseCase
	brands    *usecase.BrandUseCase
	contacts  *usecase.ContactUseCase
}

func newDirectory(t *testing.T) directory {
	t.Helper()
	s := newStores(t)
	companies := sqldb.NewCompanyRepository(s.Contacts)
	brands := sqldb.NewBrandRepository(s.Contacts)
	contacts := sqldb.NewContactRepository(s.Contacts)
	return directory{
		companies: usecase.NewCompanyUseCase(companies, brands, contacts),
		brands:    usecase.NewBrandUseCase(brands, companies),
		contacts:  usecase.NewContactUseCase(contacts),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Contactos
// ──────────────────────────────────────────────────────────────────────────────

func TestContactCreate_GeneraIDYDefaults(t *testing.T) {
	d := newDirectory(t)

	out, err := d.contacts.Create(context.Background(), dto.ContactRequest{Name: " Juan Pérez ", Email: "juan@statsen.cl"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.ID, "contact_"), out.ID)
	assert.Equal(t, "Juan Pérez", out.Name)
	assert.Nil(t, out.CompanyID)
	assert.Nil(t, out.CompanyName)
	assert.Equal(t, entity.GenderMasculino, out.Gender)
	assert.Equal(t, entity.BrandTypeMixta, out.BrandType)
}

func TestContactCreate_RequiereNombreYEmail(t *testing.T) {
	_, err := newDirectory(t).contacts.Create(context.Background(), dto.ContactRequest{Name: "Sin correo"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Name and email are required")
}

func TestContactUpdate_InexistenteDevuelveNil(t *testing.T) {
	out, err := newDirectory(t).contacts.Update(context.Background(), "contact_x", dto.ContactRequest{Name: "A", Email: "a@b.cl"})
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestContactList_IncluyeEmpresa(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()
	company, err := d.companies.Create(ctx, dto.CompanyRequest{Name: "Focovi", Description: "Cliente"})
	require.NoError(t, err)
	_, err = d.contacts.Create(ctx, dto.ContactRequest{Name: "Ana Rojas", Email: "ana@focovi.cl", CompanyID: company.ID})
	require.NoError(t, err)

	out, err := d.contacts.List(ctx, "focovi")
	require.NoError(t, err)
	require.Len(t, out.Contacts, 1)
	require.NotNil(t, out.Contacts[0].CompanyName)
	assert.Equal(t, "Focovi", *out.Contacts[0].CompanyName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresas y marcas
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyCreate_NombreDuplicado(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()
	_, err := d.companies.Create(ctx, dto.CompanyRequest{Name: "DBV"})
	require.NoError(t, err)

	_, err = d.companies.Create(ctx, dto.CompanyRequest{Name: "DBV"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCompanyCreate_NombreRequerido(t *testing.T) {
	_, err := newDirectory(t).companies.Create(context.Background(), dto.CompanyRequest{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCompanyDelete_ConContactosEsConflicto(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()
	company, err := d.companies.Create(ctx, dto.CompanyRequest{Name: "Statsen"})
	require.NoError(t, err)
	_, err = d.contacts.Create(ctx, dto.ContactRequest{Name: "Juan", Email: "juan@statsen.cl", CompanyID: company.ID})
	require.NoError(t, err)

	ok, err := d.companies.Delete(ctx, company.ID)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, domain.ErrHasDependents))
}

func TestCompanyDelete_Inexistente(t *testing.T) {
	ok, err := newDirectory(t).companies.Delete(context.Background(), "company_x")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBrandCreate_EmpresaDebeExistir(t *testing.T) {
	_, err := newDirectory(t).brands.Create(context.Background(), dto.BrandRequest{Name: "Canadian", CompanyID: "company_x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBrandCreate_YListaConEmpresa(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()
	company, err := d.companies.Create(ctx, dto.CompanyRequest{Name: "DBV Consultores"})
	require.NoError(t, err)

	b, err := d.brands.Create(ctx, dto.BrandRequest{Name: "Canadian", CompanyID: company.ID, ClassNice: "29, 30"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(b.ID, "brand_"))
	assert.Equal(t, entity.BrandStatusActive, b.Status)
	assert.Nil(t, b.RegistrationDate)
	assert.Equal(t, "DBV Consultores", b.CompanyName)

	got, err := d.companies.GetByID(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, got.Brands, 1)

	list, err := d.brands.List(ctx, repository.BrandFilter{Search: "canad"})
	require.NoError(t, err)
	assert.Len(t, list.Brands, 1)

	withBrands, err := d.companies.List(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, withBrands.Companies, 1)
	assert.Len(t, withBrands.Companies[0].Brands, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Post-its y estado de lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestPostIt_CrearActualizarArchivar(t *testing.T) {
	s := newStores(t)
	uc := usecase.NewPostItUseCase(sqldb.NewPostItRepository(s.PostIts))
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreatePostItRequest{Title: "Llamar a Ana"})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultPostItColor, first.Color)
	_, err = uc.Create(ctx, dto.CreatePostItRequest{Title: "Renovar Statsen", Color: "#dbeafe"})
	require.NoError(t, err)

	archived := dto.FlexBool(true)
	up, err := uc.Update(ctx, first.ID, dto.UpdatePostItRequest{Content: str("urgente"), Archived: &archived})
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, 1, up.Archived)
	assert.Equal(t, "urgente", up.Content)

	active, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active.PostIts, 1)
	assert.Equal(t, "Renovar Statsen", active.PostIts[0].Title)

	old, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, old.PostIts, 1)
}

func TestPostIt_Validaciones(t *testing.T) {
	s := newStores(t)
	uc := usecase.NewPostItUseCase(sqldb.NewPostItRepository(s.PostIts))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreatePostItRequest{Title: " "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Update(ctx, "x", dto.UpdatePostItRequest{Title: str("")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.True(t, errors.Is(uc.Reorder(ctx, nil), domain.ErrInvalidInput))

	out, err := uc.Update(ctx, "inexistente", dto.UpdatePostItRequest{Color: str("#fff")})
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestPostIt_Reorder(t *testing.T) {
	s := newStores(t)
	uc := usecase.NewPostItUseCase(sqldb.NewPostItRepository(s.PostIts))
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreatePostItRequest{Title: "A"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreatePostItRequest{Title: "B"})
	require.NoError(t, err)

	require.NoError(t, uc.Reorder(ctx, []string{a.ID, b.ID}))
	list, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list.PostIts, 2)
	assert.Equal(t, "A", list.PostIts[0].Title)
	assert.Equal(t, 0, list.PostIts[0].Position)
}

func TestReadStatus_MarcarYDesmarcar(t *testing.T) {
	s := newStores(t)
	uc := usecase.NewReadStatusUseCase(sqldb.NewReadStatusRepository(s.Status))
	ctx := context.Background()

	empty, err := uc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.ReadEmails)

	require.NoError(t, uc.MarkRead(ctx, "42"))
	require.NoError(t, uc.MarkRead(ctx, "42"), "idempotente")
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, list.ReadEmails)

	require.NoError(t, uc.MarkUnread(ctx, "42"))
	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.ReadEmails)

	assert.True(t, errors.Is(uc.MarkRead(ctx, ""), domain.ErrInvalidInput))
}

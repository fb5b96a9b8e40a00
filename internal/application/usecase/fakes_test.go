package usecase_test

import (
	"context"
	"encoding/json"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/analysis"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/power"
	"github.com/patriciastocker/intranet/internal/infrastructure/sqldb"
	"github.com/patriciastocker/intranet/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stores reales sobre SQLite temporal
// ──────────────────────────────────────────────────────────────────────────────

func newStores(t *testing.T) *sqldb.Stores {
	t.Helper()
	dir := t.TempDir()
	s, err := sqldb.Open(context.Background(), config.DBConfig{
		Driver:       config.DriverSQLite,
		DataDir:      dir,
		IntranetPath: filepath.Join(dir, "intranet.db"),
		ContactsPath: filepath.Join(dir, "contacts.db"),
		PostItsPath:  filepath.Join(dir, "post-its.db"),
		StatusPath:   filepath.Join(dir, "data", "email-status.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testLexicon() *analysis.Lexicon {
	return analysis.NewLexicon(analysis.Profile{
		InternalExclusions: []string{"patricia", "stocker", "tomas", "marcas"},
		KnownCompanies:     []string{"statsen", "focovi", "canadian"},
	})
}

func f64(v float64) *float64 { return &v }
func str(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Agenda en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memContacts struct {
	mu     sync.Mutex
	items  []*entity.Contact
	powers map[string]entity.PowerData
}

func newMemContacts(cs ...*entity.Contact) *memContacts {
	return &memContacts{items: cs, powers: map[string]entity.PowerData{}}
}

func (m *memContacts) List(_ context.Context, search string) ([]*entity.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Contact
	for _, c := range m.items {
		if search == "" || strings.Contains(strings.ToLower(c.Name+c.Alias+c.Email), strings.ToLower(search)) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memContacts) GetByID(_ context.Context, id string) (*entity.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memContacts) Create(_ context.Context, c *entity.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, c)
	return nil
}

func (m *memContacts) Update(_ context.Context, c *entity.Contact) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, old := range m.items {
		if old.ID == c.ID {
			m.items[i] = c
			return true, nil
		}
	}
	return false, nil
}

func (m *memContacts) UpdatePower(_ context.Context, id string, p entity.PowerData) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if c.ID == id {
			c.Power = p
			m.powers[id] = p
			return true, nil
		}
	}
	return false, nil
}

func (m *memContacts) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.items {
		if c.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memContacts) CountByCompany(_ context.Context, companyID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.items {
		if c.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// LLM, SMTP y PDF falsos
// ──────────────────────────────────────────────────────────────────────────────

type fakeLLM struct {
	answer string
	err    error
	calls  int
}

func (f *fakeLLM) SuggestContact(context.Context, string, []*entity.Contact) (string, error) {
	f.calls++
	return f.answer, f.err
}

type fakeMailer struct {
	sent []ports.OutgoingMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m ports.OutgoingMail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type fakePDF struct {
	docs []power.Document
}

func (f *fakePDF) GeneratePowerPDF(_ context.Context, doc power.Document) ([]byte, error) {
	f.docs = append(f.docs, doc)
	return []byte("%PDF-1.7 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicio de indexación falso
// ──────────────────────────────────────────────────────────────────────────────

type backendCall struct {
	Path  string
	Query url.Values
}

type fakeBackend struct {
	calls   []backendCall
	list    *dto.UpstreamEmailList
	search  *dto.UpstreamSearchResult
	full    *dto.UpstreamEmail
	raw     json.RawMessage
	instant map[string]any
	attach  *dto.Attachment
	err     error
}

func (f *fakeBackend) record(path string, q url.Values) { f.calls = append(f.calls, backendCall{path, q}) }

func (f *fakeBackend) last() backendCall { return f.calls[len(f.calls)-1] }

func (f *fakeBackend) Raw(_ context.Context, path string, q url.Values) (json.RawMessage, error) {
	f.record(path, q)
	return f.raw, f.err
}

func (f *fakeBackend) List(_ context.Context, path string, q url.Values) (*dto.UpstreamEmailList, error) {
	f.record(path, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeBackend) Search(_ context.Context, path string, q url.Values) (*dto.UpstreamSearchResult, error) {
	f.record(path, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.search, nil
}

func (f *fakeBackend) Full(_ context.Context, id string) (*dto.UpstreamEmail, error) {
	f.record("/api/emails/"+id+"/full", nil)
	if f.err != nil {
		return nil, f.err
	}
	if f.full == nil {
		return nil, domain.ErrNotFound
	}
	return f.full, nil
}

func (f *fakeBackend) Attachment(_ context.Context, emailID, filename string) (*dto.Attachment, error) {
	f.record("/api/attachment/"+emailID+"/"+filename, nil)
	return f.attach, f.err
}

func (f *fakeBackend) InstantSearch(_ context.Context, q url.Values) (map[string]any, error) {
	f.record("/api/instant-search", q)
	if f.err != nil {
		return nil, f.err
	}
	return f.instant, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Buzón IMAP falso
// ──────────────────────────────────────────────────────────────────────────────

type fakeMailbox struct {
	boxes   []entity.Mailbox
	stats   map[string]*entity.FolderStats
	info    *entity.ServerInfo
	page    *entity.EmailPage
	err     error
	listErr map[string]error
}

func (f *fakeMailbox) ListMailboxes(context.Context) ([]entity.Mailbox, error) {
	return f.boxes, f.err
}

func (f *fakeMailbox) ListPattern(_ context.Context, _, pattern string) ([]entity.Mailbox, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := f.listErr[pattern]; err != nil {
		return nil, err
	}
	return f.boxes, nil
}

func (f *fakeMailbox) EmailsWithPreview(context.Context, string, int, int) (*entity.EmailPage, error) {
	return f.page, f.err
}

func (f *fakeMailbox) FolderStats(_ context.Context, folder string) (*entity.FolderStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	if st, ok := f.stats[folder]; ok {
		return st, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMailbox) ServerInfo(context.Context) (*entity.ServerInfo, error) {
	return f.info, f.err
}

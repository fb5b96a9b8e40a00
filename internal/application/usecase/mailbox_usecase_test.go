package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
)

var imapCfg = config.IMAPConfig{Host: "mail.patriciastocker.com", Port: 993, TLS: true, User: "tomas@patriciastocker.com"}

func newMailbox(f *fakeMailbox) *usecase.MailboxUseCase {
	return usecase.NewMailboxUseCase(f, imapCfg, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Emails
// ──────────────────────────────────────────────────────────────────────────────

func TestMailboxEmails_FormateaFechas(t *testing.T) {
	date := time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)
	f := &fakeMailbox{page: &entity.EmailPage{
		Emails: []entity.EmailHeader{{
			UID: 7, EmailID: "7", Subject: "Renovación", From: "Juan <juan@statsen.cl>",
			FromEmail: "juan@statsen.cl", Date: date,
		}},
		Total: 120, Page: 2, PageSize: 50, TotalPages: 3,
	}}

	out, err := newMailbox(f).Emails(context.Background(), "", 2, 50)
	require.NoError(t, err)

	assert.Equal(t, "INBOX", out.Folder)
	assert.True(t, out.Status.Connected)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, 120, out.TotalCount)
	assert.Equal(t, 3, out.TotalPages)
	require.Len(t, out.Emails, 1)
	e := out.Emails[0]
	assert.Equal(t, "2025-03-04T15:30:00.000Z", e.Date)
	assert.Equal(t, e.Date, e.ParsedDate)
	assert.Equal(t, date.UnixMilli(), e.Timestamp)
	assert.NotNil(t, e.Attachments)
}

func TestMailboxEmails_ErrorDevuelveRespaldo(t *testing.T) {
	f := &fakeMailbox{err: errors.New("dial tcp: timeout")}

	out, err := newMailbox(f).Emails(context.Background(), "Sent", 0, 0)
	require.Error(t, err)
	require.NotNil(t, out)

	assert.False(t, out.Status.Connected)
	require.NotNil(t, out.Status.Error)
	assert.Equal(t, "dial tcp: timeout", *out.Status.Error)
	assert.Empty(t, out.Emails)
	assert.NotNil(t, out.Emails)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, usecase.PageLimit, out.PageSize)
	assert.Equal(t, "Sent", out.Folder)
}

// ──────────────────────────────────────────────────────────────────────────────
// Diagnostics
// ──────────────────────────────────────────────────────────────────────────────

func TestDiagnostics_TotalesYCarpetaPrincipal(t *testing.T) {
	f := &fakeMailbox{
		info: &entity.ServerInfo{Capabilities: []string{"IMAP4rev1", "IDLE"}},
		boxes: []entity.Mailbox{
			{Name: "INBOX", Selectable: true, Subscribed: true},
			{Name: "INBOX.Sent", Delimiter: "/", Selectable: true},
			{Name: "Archivo", Selectable: true},
		},
		stats: map[string]*entity.FolderStats{
			"INBOX":      {Exists: 40, Unseen: 3},
			"INBOX.Sent": {Exists: 12},
		},
	}

	out, err := newMailbox(f).Diagnostics(context.Background())
	require.NoError(t, err)

	assert.True(t, out.Connection.Connected)
	assert.Equal(t, "mail.patriciastocker.com", out.Connection.Host)
	require.NotNil(t, out.Connection.ServerInfo)
	assert.Equal(t, []string{"IMAP4rev1", "IDLE"}, out.Connection.ServerInfo.Capabilities)
	assert.Nil(t, out.Connection.ServerInfo.Namespace)

	s := out.Summary
	assert.Equal(t, 3, s.TotalFolders)
	assert.EqualValues(t, 52, s.TotalEmails)
	assert.EqualValues(t, 3, s.TotalUnseen)
	assert.Equal(t, 2, s.FoldersWithEmails)
	assert.Equal(t, "INBOX", s.LargestFolder.Name)
	assert.EqualValues(t, 40, s.LargestFolder.Exists)

	require.Len(t, out.Folders, 3)
	assert.Equal(t, ".", out.Folders[0].Delimiter)
	assert.Equal(t, "/", out.Folders[1].Delimiter)
	assert.NotEmpty(t, out.Folders[2].Error, "Archivo no tiene estadísticas")
	assert.False(t, out.Folders[2].Selectable)

	require.Len(t, out.Recommendations, 2)
	assert.Equal(t, "error", out.Recommendations[0].Type)
	assert.Equal(t, "success", out.Recommendations[1].Type)
	assert.Equal(t, "Se encontraron 52 correos. Carpeta principal: INBOX con 40 correos.", out.Recommendations[1].Message)
}

func TestDiagnostics_SinCorreosRecomiendaRevisar(t *testing.T) {
	f := &fakeMailbox{
		info:  &entity.ServerInfo{},
		boxes: []entity.Mailbox{{Name: "INBOX"}},
		stats: map[string]*entity.FolderStats{"INBOX": {}},
	}

	out, err := newMailbox(f).Diagnostics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ninguna", out.Summary.LargestFolder.Name)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "warning", out.Recommendations[0].Type)
}

func TestDiagnostics_ErrorDeConexion(t *testing.T) {
	f := &fakeMailbox{err: errors.New("auth failed")}

	out, err := newMailbox(f).Diagnostics(context.Background())
	require.Error(t, err)
	require.NotNil(t, out)

	assert.False(t, out.Connection.Connected)
	assert.Equal(t, "auth failed", out.Connection.Error)
	assert.Equal(t, "error", out.Summary.LargestFolder.Name)
	assert.Empty(t, out.Folders)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "Error de conexión: auth failed", out.Recommendations[0].Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeepDiagnostics
// ──────────────────────────────────────────────────────────────────────────────

func TestDeepDiagnostics_ExploraPatronesYCarpetas(t *testing.T) {
	f := &fakeMailbox{
		info:    &entity.ServerInfo{Capabilities: []string{"IMAP4rev1"}, Namespace: &entity.Namespace{Personal: []string{"INBOX."}}},
		boxes:   []entity.Mailbox{{Name: "INBOX", Selectable: true}},
		listErr: map[string]error{"**": errors.New("BAD pattern")},
		stats: map[string]*entity.FolderStats{
			"INBOX":      {Exists: 5, UIDNext: 6, UIDValidity: 1},
			"INBOX.Sent": {Exists: 0},
		},
	}

	out, err := newMailbox(f).DeepDiagnostics(context.Background())
	require.NoError(t, err)

	require.Len(t, out.FolderExploration, 5)
	assert.Equal(t, "Root level", out.FolderExploration[0].Pattern)
	assert.Equal(t, 1, out.FolderExploration[0].FoldersFound)
	last := out.FolderExploration[4]
	assert.Equal(t, "BAD pattern", last.Error)
	assert.Zero(t, last.FoldersFound)
	assert.NotNil(t, last.Folders)

	require.Len(t, out.FolderTests, 9)
	assert.True(t, out.FolderTests[0].Accessible)
	assert.EqualValues(t, 6, out.FolderTests[0].UIDNext)
	assert.False(t, out.FolderTests[1].Accessible)
	assert.NotEmpty(t, out.FolderTests[1].Error)

	require.NotNil(t, out.NamespaceInfo)
	assert.Equal(t, []string{"INBOX."}, out.NamespaceInfo.Personal)
	assert.Equal(t, []string{}, out.NamespaceInfo.Shared)

	require.Len(t, out.Recommendations, 2)
	assert.Equal(t, "Se pudieron acceder a 2 carpetas: INBOX, INBOX.Sent", out.Recommendations[0].Message)
	assert.Equal(t, "Carpetas con correos encontradas: INBOX (5)", out.Recommendations[1].Message)
}

func TestDeepDiagnostics_ErrorCritico(t *testing.T) {
	out, err := newMailbox(&fakeMailbox{err: errors.New("connection refused")}).DeepDiagnostics(context.Background())
	require.Error(t, err)
	assert.False(t, out.Connection.Connected)
	assert.Empty(t, out.FolderTests)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "Error crítico en diagnóstico: connection refused", out.Recommendations[0].Message)
}

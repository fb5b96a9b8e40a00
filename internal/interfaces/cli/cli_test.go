package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/patriciastocker/intranet/internal/interfaces/cli"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/jwt"
)

func testConfig(dir, secret string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", LogLevel: "error"},
		DB: config.DBConfig{
			Driver:       config.DriverSQLite,
			DataDir:      dir,
			IntranetPath: filepath.Join(dir, "intranet.db"),
			ContactsPath: filepath.Join(dir, "contacts.db"),
			PostItsPath:  filepath.Join(dir, "post-its.db"),
			StatusPath:   filepath.Join(dir, "data", "email-status.db"),
		},
		JWT:  config.JWTConfig{Secret: secret, Expiration: 30, Issuer: "intranet-test"},
		Auth: config.AuthConfig{AdminUser: "admin"},
	}
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand(cli.Options{
		Out:        &out,
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
	})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeed_SoloLlenaTablasVacias(t *testing.T) {
	cfg := testConfig(t.TempDir(), "")

	out, err := run(t, cfg, "seed")
	require.NoError(t, err)
	assert.NotContains(t, out, "empresas=0")

	out, err = run(t, cfg, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "empresas=0 deudas=0")
}

func TestMigrateYRecalc(t *testing.T) {
	cfg := testConfig(t.TempDir(), "")

	out, err := run(t, cfg, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "esquema aplicado (sqlite)")

	out, err = run(t, cfg, "recalc-overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "deudas actualizadas: 0")
}

func TestExportDeudas_EscribeXLSX(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, "")
	_, err := run(t, cfg, "seed")
	require.NoError(t, err)

	dest := filepath.Join(dir, "salida.xlsx")
	_, err = run(t, cfg, "export-deudas", "--out", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	// xlsx es un zip
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, nil, "hash-password", "secreto")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secreto")))

	_, err = run(t, nil, "hash-password")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	cfg := testConfig(t.TempDir(), "cli-secret")

	out, err := run(t, cfg, "token", "--user", "tomas")
	require.NoError(t, err)
	claims, err := jwt.Parse("cli-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "tomas", claims.Username)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)

	_, err = run(t, testConfig(t.TempDir(), ""), "token")
	assert.Error(t, err)
}

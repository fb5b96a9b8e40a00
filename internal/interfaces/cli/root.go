// Package cli comandos de mantenimiento de la intranet (intranetctl).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/patriciastocker/intranet/internal/infrastructure/sqldb"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
)

type runtimeState struct {
	cfg    *config.Config
	log    *logger.Logger
	writer io.Writer
	load   func() (*config.Config, error)
}

type runtimeKey struct{}

// Options permite inyectar la salida y la carga de configuración (tests).
type Options struct {
	Out        io.Writer
	LoadConfig func() (*config.Config, error)
}

// NewRootCommand arma intranetctl con todos los subcomandos.
func NewRootCommand(opts Options) *cobra.Command {
	rt := &runtimeState{writer: opts.Out, load: opts.LoadConfig}
	if rt.writer == nil {
		rt.writer = os.Stdout
	}
	if rt.load == nil {
		rt.load = config.Load
	}

	root := &cobra.Command{
		Use:           "intranetctl",
		Short:         "Mantenimiento de la intranet Patricia Stocker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// hash-password no necesita configuración
			if cmd.Name() == "hash-password" || cmd.Name() == "help" {
				return nil
			}
			cfg, err := rt.load()
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr}).Component("cli")
			return nil
		},
	}

	root.SetOut(rt.writer)
	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		newMigrateCommand(),
		newSeedCommand(),
		newRecalcCommand(),
		newExportCommand(),
		newHashPasswordCommand(),
		newTokenCommand(),
	)
	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime no inicializado")
	}
	return rt, nil
}

// openStores abre las bases y aplica el esquema.
func (rt *runtimeState) openStores(ctx context.Context) (*sqldb.Stores, error) {
	if rt.cfg == nil {
		return nil, errors.New("configuración no cargada")
	}
	stores, err := sqldb.Open(ctx, rt.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("abrir bases de datos: %w", err)
	}
	if err := stores.Migrate(ctx); err != nil {
		_ = stores.Close()
		return nil, fmt.Errorf("migrar esquema: %w", err)
	}
	return stores, nil
}

func (rt *runtimeState) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(rt.writer, format, args...)
}

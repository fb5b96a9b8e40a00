package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patriciastocker/intranet/internal/application/auth"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/infrastructure/export"
	"github.com/patriciastocker/intranet/internal/infrastructure/sqldb"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea las tablas que falten en las cuatro bases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			stores, err := rt.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer stores.Close()
			rt.log.Info().Str("driver", rt.cfg.DB.Driver).Msg("esquema aplicado")
			rt.printf("esquema aplicado (%s)\n", rt.cfg.DB.Driver)
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Inserta los datos de ejemplo en las tablas vacías",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			stores, err := rt.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer stores.Close()
			res, err := stores.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			rt.printf("empresas=%d deudas=%d companies=%d brands=%d contacts=%d\n",
				res.Empresas, res.Deudas, res.Companies, res.Brands, res.Contacts)
			return nil
		},
	}
}

func newRecalcCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recalc-overdue",
		Short: "Recalcula días de retraso y marca deudas vencidas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			stores, err := rt.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer stores.Close()
			uc := usecase.NewDeudaUseCase(sqldb.NewDeudaRepository(stores.Intranet), nil)
			res, err := uc.RecalcularVencimientos(cmd.Context())
			if err != nil {
				return err
			}
			rt.printf("deudas actualizadas: %d\n", res.Actualizadas)
			return nil
		},
	}
}

func newExportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-deudas",
		Short: "Exporta las deudas a una planilla xlsx",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			stores, err := rt.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer stores.Close()
			uc := usecase.NewDeudaUseCase(sqldb.NewDeudaRepository(stores.Intranet), export.NewExcelExporter())
			data, err := uc.Export(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			rt.printf("planilla escrita en %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "deudas.xlsx", "Archivo de salida")
	return cmd
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Genera el hash bcrypt para ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			rt.printf("%s\n", hash)
			return nil
		},
	}
}

func newTokenCommand() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT de administrador sin pasar por el login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if strings.TrimSpace(user) == "" {
				user = rt.cfg.Auth.AdminUser
			}
			uc := auth.NewAuthUseCase(rt.cfg.Auth, rt.cfg.JWT)
			if !uc.Enabled() {
				return fmt.Errorf("JWT_SECRET no configurado")
			}
			res, err := uc.Issue(user)
			if err != nil {
				return err
			}
			rt.printf("%s\n", res.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Usuario del token (por defecto ADMIN_USER)")
	return cmd
}

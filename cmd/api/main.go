package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/patriciastocker/intranet/docs"
	"github.com/patriciastocker/intranet/internal/application/auth"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain/analysis"
	infraai "github.com/patriciastocker/intranet/internal/infrastructure/ai"
	"github.com/patriciastocker/intranet/internal/infrastructure/export"
	"github.com/patriciastocker/intranet/internal/infrastructure/imap"
	"github.com/patriciastocker/intranet/internal/infrastructure/mailbackend"
	"github.com/patriciastocker/intranet/internal/infrastructure/metrics"
	infrapdf "github.com/patriciastocker/intranet/internal/infrastructure/pdf"
	"github.com/patriciastocker/intranet/internal/infrastructure/smtp"
	"github.com/patriciastocker/intranet/internal/infrastructure/sqldb"
	httpRouter "github.com/patriciastocker/intranet/internal/interfaces/http"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	stores, err := sqldb.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir bases de datos")
	}
	if err := stores.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrar esquema")
	}
	if cfg.DB.Seed {
		res, err := stores.Seed(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("datos de ejemplo")
		}
		log.Info().
			Int("empresas", res.Empresas).
			Int("deudas", res.Deudas).
			Int("contacts", res.Contacts).
			Msg("datos de ejemplo cargados")
	}

	deudaRepo := sqldb.NewDeudaRepository(stores.Intranet)
	empresaRepo := sqldb.NewEmpresaRepository(stores.Intranet)
	contactRepo := sqldb.NewContactRepository(stores.Contacts)
	companyRepo := sqldb.NewCompanyRepository(stores.Contacts)
	brandRepo := sqldb.NewBrandRepository(stores.Contacts)
	postItRepo := sqldb.NewPostItRepository(stores.PostIts)
	readStatusRepo := sqldb.NewReadStatusRepository(stores.Status)

	lexicon := analysis.NewLexicon(analysis.Profile{
		InternalExclusions: cfg.Office.InternalExclusions,
		KnownCompanies:     cfg.Office.KnownCompanies,
	})
	backend := mailbackend.NewClient(cfg.Upstream, log)
	mailer := smtp.NewSender(cfg.SMTP, log)

	// Sin OPENROUTER_API_KEY la redacción usa sólo la coincidencia local
	var llm ports.LLMService
	if cfg.AI.OpenRouterAPIKey != "" {
		llm = infraai.NewOpenRouterService(cfg.AI)
	}

	// Sin credenciales IMAP las rutas /mailbox y /diagnostics responden 503
	var mailboxUC *usecase.MailboxUseCase
	var mailbox *imap.Mailbox
	if cfg.IMAP.User != "" {
		mailbox = imap.NewMailbox(cfg.IMAP, log)
		mailboxUC = usecase.NewMailboxUseCase(mailbox, cfg.IMAP, log)
	} else {
		log.Warn().Msg("IMAP_USER vacío, acceso directo al buzón deshabilitado")
	}

	authUC := auth.NewAuthUseCase(cfg.Auth, cfg.JWT)
	if !authUC.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío, la API queda sin autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Upstream.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.MetricsMiddleware())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Intranet Patricia Stocker API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		DeudaUC:         usecase.NewDeudaUseCase(deudaRepo, export.NewExcelExporter()),
		EmpresaUC:       usecase.NewEmpresaUseCase(empresaRepo),
		ContactUC:       usecase.NewContactUseCase(contactRepo),
		CompanyUC:       usecase.NewCompanyUseCase(companyRepo, brandRepo, contactRepo),
		BrandUC:         usecase.NewBrandUseCase(brandRepo, companyRepo),
		PostItUC:        usecase.NewPostItUseCase(postItRepo),
		ReadStatusUC:    usecase.NewReadStatusUseCase(readStatusRepo),
		MailProxyUC:     usecase.NewMailProxyUseCase(backend, cfg.Office.RecipientFilter, cfg.Office.DefaultRecipient, log),
		MailboxUC:       mailboxUC,
		DraftUC:         usecase.NewDraftUseCase(contactRepo, llm, lexicon, cfg.Office.SignerName, log),
		ContactSearchUC: usecase.NewContactSearchUseCase(backend, lexicon, log),
		PowerUC:         usecase.NewPowerUseCase(contactRepo, infrapdf.NewMarotoPowerGenerator(), mailer, cfg.Power, log),
		SendMailUC:      usecase.NewSendMailUseCase(mailer),
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log,
	})

	// Frontend compilado; va al final para no tapar /api
	app.Static("/", cfg.App.PublicDir)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if mailbox != nil {
		mailbox.Close()
	}
	if err := stores.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar bases de datos")
	}

	log.Info().Msg("aplicación detenida")
}

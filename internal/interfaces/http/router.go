package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/auth"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/pkg/jwt"
	"github.com/patriciastocker/intranet/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DeudaUC         *usecase.DeudaUseCase
	EmpresaUC       *usecase.EmpresaUseCase
	ContactUC       *usecase.ContactUseCase
	CompanyUC       *usecase.CompanyUseCase
	BrandUC         *usecase.BrandUseCase
	PostItUC        *usecase.PostItUseCase
	ReadStatusUC    *usecase.ReadStatusUseCase
	MailProxyUC     *usecase.MailProxyUseCase
	MailboxUC       *usecase.MailboxUseCase // nil sin IMAP
	DraftUC         *usecase.DraftUseCase
	ContactSearchUC *usecase.ContactSearchUseCase
	PowerUC         *usecase.PowerUseCase
	SendMailUC      *usecase.SendMailUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Con JWT_SECRET vacío los middlewares dejan pasar todo
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(deps.JWTSecret, jwt.RoleAdmin))

	// Deudas y empresas acreedoras
	deudaHandler := NewDeudaHandler(deps.DeudaUC, deps.EmpresaUC)
	protected.Get("/deudas", deudaHandler.List)
	protected.Post("/deudas", deudaHandler.Create)
	protected.Post("/deudas/recalcular", deudaHandler.Recalcular)
	protected.Get("/deudas/export", deudaHandler.Export)
	protected.Put("/deudas/:id", deudaHandler.Update)
	protected.Delete("/deudas/:id", deudaHandler.Delete)
	protected.Get("/resumen", deudaHandler.Resumen)
	protected.Get("/empresas", deudaHandler.Empresas)

	// Contactos y poderes
	contacts := protected.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	powerHandler := NewPowerHandler(deps.PowerUC)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)
	contacts.Post("/:id/power", powerHandler.Generate)
	contacts.Post("/:id/power/send", powerHandler.Send)

	// Empresas cliente y marcas
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.BrandUC)
	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	brands := protected.Group("/brands")
	brands.Get("/", companyHandler.ListBrands)
	brands.Post("/", companyHandler.CreateBrand)
	brands.Get("/:id", companyHandler.GetBrand)
	brands.Put("/:id", companyHandler.UpdateBrand)
	brands.Delete("/:id", companyHandler.DeleteBrand)

	// Post-its (reorder antes de /:id)
	postItHandler := NewPostItHandler(deps.PostItUC, deps.ReadStatusUC)
	postIts := protected.Group("/post-its")
	postIts.Get("/", postItHandler.List)
	postIts.Post("/", postItHandler.Create)
	postIts.Put("/reorder", postItHandler.Reorder)
	postIts.Get("/:id", postItHandler.GetByID)
	postIts.Put("/:id", postItHandler.Update)
	postIts.Delete("/:id", postItHandler.Delete)
	protected.Get("/read-status", postItHandler.ReadEmails)
	protected.Post("/read-status", postItHandler.MarkRead)
	protected.Delete("/read-status", postItHandler.MarkUnread)

	// Correo: proxy al servicio de indexación
	mailHandler := NewMailHandler(deps.MailProxyUC, deps.MailboxUC)
	emails := protected.Group("/emails")
	emails.Get("/", mailHandler.Emails)
	emails.Get("/paginated", mailHandler.Paginated)
	emails.Get("/with-preview", mailHandler.WithPreview)
	emails.Get("/light", mailHandler.Light)
	emails.Get("/ultra-light", mailHandler.UltraLight)
	emails.Get("/search", mailHandler.Search)
	emails.Get("/for-tomas", mailHandler.ForRecipient)
	emails.Get("/:id/full", mailHandler.Full)
	protected.Get("/attachment/:email_id/:filename", mailHandler.Attachment)
	protected.Get("/loading-status", mailHandler.LoadingStatus)
	protected.Get("/search-emails", mailHandler.SearchEmails)
	protected.Get("/instant-search", mailHandler.InstantSearch)

	// Correo: IMAP directo
	protected.Get("/mailbox/folders", mailHandler.Folders)
	protected.Get("/mailbox/emails", mailHandler.MailboxEmails)
	protected.Get("/diagnostics", mailHandler.Diagnostics)
	protected.Get("/deep-diagnostics", mailHandler.DeepDiagnostics)

	// Redacción y búsqueda asistida
	draftHandler := NewDraftHandler(deps.DraftUC, deps.ContactSearchUC, deps.Log)
	protected.Post("/generate-email", draftHandler.GenerateEmail)
	protected.Post("/search-contact-in-emails", draftHandler.SearchContact)

	sendHandler := NewSendMailHandler(deps.SendMailUC)
	protected.Post("/send-email", sendHandler.Send)
}

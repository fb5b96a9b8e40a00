package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/analysis"
	"github.com/patriciastocker/intranet/pkg/logger"
)

const (
	// SearchPoolSize correos recientes sobre los que se busca al contacto.
	SearchPoolSize = 100
	// SearchMaxRelevant correos relevantes que se analizan en detalle.
	SearchMaxRelevant = 20

	relevanceScore = 5
)

// Emitter recibe cada evento de progreso. Un error (cliente desconectado) corta la búsqueda.
type Emitter func(dto.ProgressEvent) error

// ContactSearchUseCase busca rastros de un contacto en los últimos correos y reporta el avance paso a paso.
type ContactSearchUseCase struct {
	backend ports.MailBackend
	lexicon *analysis.Lexicon
	log     *logger.Logger
	now     func() time.Time
}

// NewContactSearchUseCase construye el caso de uso.
func NewContactSearchUseCase(backend ports.MailBackend, lexicon *analysis.Lexicon, log *logger.Logger) *ContactSearchUseCase {
	return &ContactSearchUseCase{
		backend: backend,
		lexicon: lexicon,
		log:     log.Component("contact_search"),
		now:     time.Now,
	}
}

// Validate se llama antes de abrir el stream.
func (uc *ContactSearchUseCase) Validate(in dto.ContactSearchRequest) error {
	if strings.TrimSpace(in.ContactName) == "" {
		return fmt.Errorf("Contact name is required: %w", domain.ErrInvalidInput)
	}
	return nil
}

// Run ejecuta la búsqueda emitiendo los eventos. Un fallo del servicio de correo termina
// con un evento de error al 100%; sólo se devuelve error si emit falla.
func (uc *ContactSearchUseCase) Run(ctx context.Context, in dto.ContactSearchRequest, emit Emitter) error {
	err := uc.run(ctx, in, emit)
	if err == nil {
		return nil
	}
	var ee emitError
	if errors.As(err, &ee) {
		return ee.err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	uc.log.Error().Err(err).Str("contact", in.ContactName).Msg("búsqueda de contacto fallida")
	return emit(dto.ProgressEvent{
		Step:     "Error en la búsqueda: " + err.Error(),
		Progress: 100,
		Filters:  []string{"Error en búsqueda"},
	})
}

// emitError distingue un fallo de emit (se propaga tal cual) de uno del proceso.
type emitError struct{ err error }

func (e emitError) Error() string { return e.err.Error() }

func (uc *ContactSearchUseCase) run(ctx context.Context, in dto.ContactSearchRequest, emit Emitter) (err error) {
	send := func(ev dto.ProgressEvent) {
		if err != nil {
			return
		}
		if e := emit(ev); e != nil {
			err = emitError{e}
		}
	}

	send(dto.ProgressEvent{
		Step:     "Conectando con servidor de correos...",
		Progress: 10,
		Filters:  []string{"Conexión al servidor de correo"},
	})
	if err != nil {
		return err
	}

	list, ferr := uc.backend.List(ctx, "/api/emails/with-preview", url.Values{"limit": {fmt.Sprint(SearchPoolSize)}})
	if ferr != nil {
		return fmt.Errorf("No se pudo conectar al servidor de correos: %w", ferr)
	}
	emails := list.Emails
	total := len(emails)

	send(dto.ProgressEvent{
		Step:        "Correos obtenidos, aplicando filtros...",
		Progress:    30,
		TotalEmails: intPtr(total),
		Filters:     []string{"Conexión exitosa", fmt.Sprintf("%d correos disponibles", total)},
	})

	a := uc.lexicon.Analyze(in.ContactName, in.PostItContent, in.ContactEmail)
	details := analysisDetails(a)
	send(dto.ProgressEvent{
		Step:            "Análisis inteligente de términos completado...",
		Progress:        35,
		Filters:         analysisFilters(details),
		AnalysisDetails: &details,
	})

	send(dto.ProgressEvent{
		Step:     fmt.Sprintf("Iniciando búsqueda en %d correos...", total),
		Progress: 40,
		Filters: []string{
			"Conexión exitosa",
			fmt.Sprintf("Total de correos disponibles: %d", total),
			"Iniciando búsqueda con términos rankeados...",
		},
	})

	priority := a.Priority
	var relevant []dto.UpstreamEmail
	if len(priority) > 0 {
		for _, e := range emails {
			if analysis.MatchesAny(searchableText(e), priority) {
				relevant = append(relevant, e)
			}
		}
		send(dto.ProgressEvent{
			Step:     fmt.Sprintf("Búsqueda prioritaria completada: %d/%d correos", len(relevant), total),
			Progress: 50,
			Filters: []string{
				"Conexión exitosa",
				fmt.Sprintf("Términos prioritarios usados: [%s]", strings.Join(priority, ", ")),
				fmt.Sprintf("Resultados: %d de %d correos (%s%%)", len(relevant), total, percent(len(relevant), total)),
			},
		})
		if len(relevant) > 0 {
			send(dto.ProgressEvent{
				Step:     "Análisis completado - Usando resultados específicos",
				Progress: 60,
				Filters: []string{
					"Conexión exitosa",
					"Estrategia: Búsqueda específica exitosa",
					fmt.Sprintf("Correos analizados: %d (filtrados por relevancia)", len(relevant)),
					fmt.Sprintf("Términos efectivos: [%s]", strings.Join(priority, ", ")),
				},
			})
		}
	}
	if len(relevant) == 0 {
		reason := "No se detectaron nombres específicos en el post-it"
		if len(priority) > 0 {
			reason = fmt.Sprintf("No se encontraron correos que mencionen: [%s]", strings.Join(priority, ", "))
		}
		send(dto.ProgressEvent{
			Step:     "Búsqueda completada - Sin resultados específicos",
			Progress: 60,
			Filters: []string{
				"Conexión exitosa",
				"Estrategia: Solo búsqueda por nombres específicos",
				reason,
				fmt.Sprintf("Correos analizados: %d", total),
			},
		})
	}
	if err != nil {
		return err
	}

	if len(relevant) > SearchMaxRelevant {
		relevant = relevant[:SearchMaxRelevant]
	}
	send(dto.ProgressEvent{
		Step:        fmt.Sprintf("%d correos relevantes encontrados", len(relevant)),
		Progress:    50,
		TotalEmails: intPtr(len(relevant)),
		Filters:     []string{fmt.Sprintf("%d correos filtrados", len(relevant)), "Iniciando análisis"},
	})

	approach := "Sin términos válidos detectados"
	if len(priority) > 0 {
		approach = "Búsqueda específica por nombres propios"
	} else if len(a.Context) > 0 {
		approach = "Búsqueda expandida por contexto"
	}
	report := dto.DetailedReport{
		ContactProfile: dto.ContactProfile{
			Name:           in.ContactName,
			SearchContext:  in.PostItContent,
			EmailsAnalyzed: len(relevant),
			AnalysisDate:   uc.now().UTC().Format(ISOLayout),
		},
		SearchStrategy: dto.SearchStrategy{
			TotalEmailsAvailable: total,
			FiltersUsed:          dto.FiltersUsed{Priority: nonNil(priority), Context: []string{}},
			TermAnalysis:         toTermDTOs(topTerms(a.Ranked, 10)),
			SearchApproach:       approach,
		},
		Communications:  []dto.Communication{},
		RelatedContacts: []dto.RelatedContact{},
		Timeline:        []dto.TimelineEntry{},
	}

	found := []string{}
	info := dto.ContactInfo{}
	seen := map[string]bool{}
	for i, e := range relevant {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		send(dto.ProgressEvent{
			Step:           fmt.Sprintf("Analizando correo %d de %d...", i+1, len(relevant)),
			Progress:       50 + float64(i)/float64(len(relevant))*40,
			AnalyzedEmails: intPtr(i + 1),
			Filters:        []string{fmt.Sprintf("Analizando: %q...", truncateRunes(e.Subject, 30))},
		})
		if err != nil {
			return err
		}

		content := searchableText(e)
		if info.Phone == "" {
			if p := analysis.FindPhone(content); p != "" {
				info.Phone = p
				found = append(found, "Teléfono: "+p)
			}
		}
		if info.Company == "" {
			if c := analysis.FindCompany(content); c != "" {
				info.Company = c
				found = append(found, "Empresa: "+c)
			}
		}

		from := fmt.Sprintf("%s <%s>", e.FromName, e.FromEmail)
		report.Communications = append(report.Communications, dto.Communication{
			EmailID:        i + 1,
			RelevanceScore: relevanceScore,
			Metadata: dto.CommunicationMetadata{
				From:    from,
				To:      orDefault(e.To, "No disponible"),
				Subject: e.Subject,
				Date:    orDefault(e.Date, "No disponible"),
			},
			CommunicationSummary: fmt.Sprintf("Correo de %s sobre: %s", e.FromName, e.Subject),
		})
		report.Timeline = append(report.Timeline, dto.TimelineEntry{
			Date:      orDefault(e.Date, "Fecha no disponible"),
			Subject:   e.Subject,
			From:      from,
			Summary:   "Correo de " + e.FromName,
			Relevance: relevanceScore,
		})
		if e.FromEmail != "" && e.FromEmail != in.ContactEmail && !seen[e.FromEmail] {
			seen[e.FromEmail] = true
			report.RelatedContacts = append(report.RelatedContacts, dto.RelatedContact{
				Name:         orDefault(e.FromName, "Nombre no disponible"),
				Email:        e.FromEmail,
				Relationship: "Comunicación por email",
			})
			found = append(found, fmt.Sprintf("Contacto: %s (%s)", e.FromName, e.FromEmail))
		}
	}

	report.Summary = summary(priority, len(relevant), total, len(report.Communications), len(report.RelatedContacts), found)

	send(dto.ProgressEvent{
		Step:           "Búsqueda completada - Reporte generado",
		Progress:       100,
		AnalyzedEmails: intPtr(len(relevant)),
		FoundInfo:      found,
		ContactInfo:    &info,
		DetailedReport: &report,
		Filters: []string{
			"Búsqueda completada",
			fmt.Sprintf("%d datos encontrados", len(found)),
			fmt.Sprintf("%d comunicaciones analizadas", len(report.Communications)),
		},
	})
	return err
}

func summary(priority []string, analyzed, total, comms, related int, found []string) string {
	var b strings.Builder
	if len(priority) > 0 {
		fmt.Fprintf(&b, "Se utilizó búsqueda específica con términos prioritarios: [%s]", strings.Join(priority, ", "))
	} else {
		b.WriteString("No se detectaron términos válidos para la búsqueda")
	}
	fmt.Fprintf(&b, ". Se analizaron %d correos de un total de %d disponibles.", analyzed, total)
	fmt.Fprintf(&b, " Se encontraron %d comunicaciones relevantes.", comms)
	fmt.Fprintf(&b, " Se identificaron %d contactos relacionados. ", related)
	if len(found) > 0 {
		fmt.Fprintf(&b, "Se extrajo información: %s.", strings.Join(found[:min(3, len(found))], ", "))
	} else {
		b.WriteString("No se encontró información de contacto específica.")
	}
	return b.String()
}

// searchableText todo el contenido donde se buscan los términos.
func searchableText(e dto.UpstreamEmail) string {
	return strings.Join([]string{e.Subject, e.FromName, e.FromEmail, e.Preview, e.Body, e.HTMLBody}, " ")
}

func analysisDetails(a analysis.Analysis) dto.AnalysisDetails {
	return dto.AnalysisDetails{
		OriginalText:       a.OriginalText,
		AllWords:           nonNil(a.Words),
		TermAnalysis:       toTermDTOs(a.Terms),
		RankedTerms:        toTermDTOs(a.Ranked),
		FinalPriorityTerms: nonNil(a.Priority),
		FinalContextTerms:  []string{},
		TopRankedTerms:     toTermDTOs(a.Top(5)),
	}
}

func analysisFilters(d dto.AnalysisDetails) []string {
	out := []string{
		"Conexión exitosa",
		fmt.Sprintf("Texto original: %q", d.OriginalText),
		fmt.Sprintf("Palabras analizadas: %d", len(d.AllWords)),
		"RANKING DE TÉRMINOS (Top 5):",
	}
	for _, t := range d.TopRankedTerms {
		out = append(out, fmt.Sprintf("   %dpts - %q (%s): %s", t.Score, t.Original, t.Category, strings.Join(t.Reasons, ", ")))
	}
	out = append(out, "FILTROS SELECCIONADOS:",
		fmt.Sprintf("   Prioritarios (score ≥80): [%s]", joinOr(d.FinalPriorityTerms, "ninguno")),
		"   Contexto (score 40-79): [ninguno]",
	)
	if len(d.FinalPriorityTerms) == 0 {
		out = append(out, "NO SE ENCONTRARON TÉRMINOS VÁLIDOS - Revise el contenido del post-it")
	} else {
		out = append(out, fmt.Sprintf("Se usarán %d términos para la búsqueda", len(d.FinalPriorityTerms)))
	}
	return out
}

func toTermDTOs(terms []analysis.Term) []dto.TermDTO {
	out := make([]dto.TermDTO, 0, len(terms))
	for _, t := range terms {
		out = append(out, dto.TermDTO{
			Original:   t.Original,
			Normalized: t.Normalized,
			Score:      t.Score,
			Reasons:    nonNil(t.Reasons),
			Category:   t.Category,
		})
	}
	return out
}

func topTerms(terms []analysis.Term, n int) []analysis.Term {
	return terms[:min(n, len(terms))]
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(n)/float64(total)*100)
}

func joinOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func intPtr(n int) *int { return &n }

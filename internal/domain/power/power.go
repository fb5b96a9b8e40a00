// Package power redacta el Poder especial que un mandante otorga al apoderado del estudio
// para gestionar asuntos de propiedad industrial e intelectual.
package power

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
)

// Tipos de mandante.
const (
	MandantePersona = "persona"
	MandanteEmpresa = "empresa"
)

// Attorney datos fijos del apoderado y de la oficina.
type Attorney struct {
	Name      string
	RUT       string
	Address   string
	City      string
	Signature string // firma del correo de envío
}

// Document texto del Poder listo para maquetar.
type Document struct {
	Title          string
	Place          string // "Santiago, 14-10-2026"
	Paragraphs     []string
	SignatureLabel string
	FileName       string
	Author         string
}

const faculties = "Con este objeto se le faculta para efectuar ante las autoridades competentes todas las gestiones " +
	"necesarias para el cumplimiento de lo encomendado, tales como presentar solicitudes, hacer declaraciones y " +
	"modificaciones, pagar impuestos, solicitar copias autorizadas, solicitar renovaciones de registros y anotaciones " +
	"marginales, presentar defensas de solicitudes, desistirse y limitar solicitudes, contestar y deducir oposiciones, " +
	"nulidades, cancelaciones por falta de uso, apelaciones y otros recursos, dándose también facultades para delegar " +
	"el presente poder."

const scope = "para que en nombre y representación del poderdante proceda a gestionar todos los asuntos relacionados " +
	"con marcas, frases de propaganda, patentes de invención, modelos de utilidad, diseños y/o dibujos industriales, " +
	"nombres de dominio, derechos de autor y todo otro asunto relacionado con la Propiedad Industrial e Intelectual."

// Validate comprueba los campos que exige cada tipo de mandante.
func Validate(mandanteType string, p entity.PowerData) error {
	if mandanteType != MandantePersona && mandanteType != MandanteEmpresa {
		return fmt.Errorf("mandante_type debe ser persona o empresa: %w", domain.ErrInvalidInput)
	}
	var missing []string
	if strings.TrimSpace(p.RUT) == "" {
		missing = append(missing, "rut")
	}
	if strings.TrimSpace(p.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(p.BrandClass) == "" {
		missing = append(missing, "brand_class")
	}
	if strings.TrimSpace(p.BrandDescription) == "" {
		missing = append(missing, "brand_description")
	}
	if mandanteType == MandanteEmpresa {
		if strings.TrimSpace(p.RepresentedCompany) == "" {
			missing = append(missing, "represented_company")
		}
		if strings.TrimSpace(p.RepresentedCompanyRUT) == "" {
			missing = append(missing, "represented_company_rut")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("faltan campos: %s: %w", strings.Join(missing, ", "), domain.ErrInvalidInput)
	}
	return nil
}

// Compose redacta el Poder de contact con los datos p a la fecha now.
func Compose(a Attorney, mandanteType string, contact *entity.Contact, p entity.PowerData, now time.Time) Document {
	female := p.Gender == entity.GenderFemenino
	var first string
	attorney := fmt.Sprintf("vengo en otorgar poder especial a don %s, RUT Nº %s, domiciliado en %s, %s",
		a.Name, a.RUT, a.Address, scope)
	if mandanteType == MandantePersona {
		first = fmt.Sprintf("Por el presente instrumento, yo, %s, RUT %s, %s en %s; %s",
			contact.Name, p.RUT, pick(female, "domiciliada", "domiciliado"), p.Address, attorney)
	} else {
		first = fmt.Sprintf("Por el presente instrumento, yo, %s, RUT %s, en representación de %s, RUT %s, %s en %s; %s",
			contact.Name, p.RUT, p.RepresentedCompany, p.RepresentedCompanyRUT,
			pick(female, "ambas domiciliadas", "ambos domiciliados"), p.Address, attorney)
	}
	return Document{
		Title:          "PODER",
		Place:          fmt.Sprintf("%s, %s", a.City, now.Format("02-01-2006")),
		Paragraphs:     []string{first, faculties},
		SignatureLabel: "FIRMA Mandante",
		FileName:       FileName(contact.Name, now),
		Author:         a.Name,
	}
}

var spaces = regexp.MustCompile(`\s+`)

// FileName Poder_<nombre_con_guiones_bajos>_<YYYY-MM-DD>.pdf
func FileName(name string, now time.Time) string {
	return fmt.Sprintf("Poder_%s_%s.pdf", spaces.ReplaceAllString(strings.TrimSpace(name), "_"), now.Format("2006-01-02"))
}

// MailSubject asunto del correo con el Poder adjunto.
func MailSubject(contact *entity.Contact) string {
	return "Poder Legal - " + contact.Name
}

// MailBody cuerpo del correo de envío del Poder; withLogo agrega la referencia al logo adjunto.
func MailBody(a Attorney, contact *entity.Contact, p entity.PowerData, withLogo bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s,\n\n", pick(p.Gender == entity.GenderFemenino, "Estimada", "Estimado"), contact.Name)
	fmt.Fprintf(&b, "Junto con saludar, adjunto el poder legal solicitado para la gestión de %s.\n\n", p.PowerPurpose)
	b.WriteString("DATOS DE LA MARCA:\n")
	fmt.Fprintf(&b, "• Propósito: %s\n", p.PowerPurpose)
	fmt.Fprintf(&b, "• Clase Niza: %s\n", p.BrandClass)
	fmt.Fprintf(&b, "• Tipo de Marca: %s\n", p.BrandType)
	fmt.Fprintf(&b, "• Cobertura: %s\n", p.BrandCoverage)
	fmt.Fprintf(&b, "• Descripción: %s\n", p.BrandDescription)
	fmt.Fprintf(&b, "• Número de Registro: %s\n", p.BrandRegistrationNumber)
	fmt.Fprintf(&b, "• Número de Solicitud: %s", p.BrandApplicationNumber)
	if withLogo {
		b.WriteString("\n• Logo de la marca: Ver imagen adjunta")
	}
	b.WriteString("\n\nEl documento se encuentra debidamente firmado y listo para su uso ante las autoridades competentes.\n\n")
	b.WriteString("Cualquier consulta, no dude en contactarnos.\n\n")
	b.WriteString("Saludos cordiales,\n\n")
	b.WriteString(a.Signature)
	return b.String()
}

// HasLogo informa si el logo de la marca debe adjuntarse (sólo marcas mixtas).
func HasLogo(p entity.PowerData) bool {
	return p.BrandType == entity.BrandTypeMixta && p.BrandLogo != ""
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

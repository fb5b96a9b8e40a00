package analysis

import (
	"regexp"
	"strings"
)

var (
	emailRe   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe   = regexp.MustCompile(`(\+?56)?[\s-]?[0-9]{1,2}[\s-]?[0-9]{4}[\s-]?[0-9]{4}`)
	companyRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:SpA|Ltda|SA|SRL|Corp|Inc|LLC)\b`)
	nameSeqRe = regexp.MustCompile(`\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)*`)
	phoneSep  = strings.NewReplacer(" ", "", "-", "", "\t", "", "\n", "")
)

// El prefijo no distingue mayúsculas; el nombre capturado sí debe ir capitalizado.
const nameGroup = `(\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)*)`

var contextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?i:reuni[oó]n|meeting|junta|cita)\s+(?i:con)\s+` + nameGroup),
	regexp.MustCompile(`\b(?i:hablar|llamar|contactar|escribir)(?:le)?\s+(?i:a|con)\s+` + nameGroup),
	regexp.MustCompile(`\b(?i:pregunt[aá]r|consultar)(?:le)?\s+(?i:a)\s+` + nameGroup),
	regexp.MustCompile(`\b(?i:enviar|mandar)(?:le)?\s+(?i:a|para)\s+` + nameGroup),
	regexp.MustCompile(`\b(?i:cliente|sr\.?|sra\.?|don|doña)\s+` + nameGroup),
	regexp.MustCompile(nameGroup + `\s+(?i:me|nos)\s+(?i:escribi[oó]|llam[oó]|contact[oó])`),
}

// SuggestedContact datos de contacto inferidos del texto cuando no hay coincidencia en la agenda.
type SuggestedContact struct {
	Email string
	Phone string
	Name  string
	Alias string
}

// FindPhone primer teléfono con formato chileno en text, tal como aparece.
func FindPhone(text string) string {
	return strings.TrimSpace(phoneRe.FindString(text))
}

// FindCompany primera razón social (SpA, Ltda, SA, ...) en text.
func FindCompany(text string) string {
	return companyRe.FindString(text)
}

// ExtractContactInfo infiere email, teléfono, nombre y alias desde text.
func (l *Lexicon) ExtractContactInfo(text string) SuggestedContact {
	s := SuggestedContact{
		Email: emailRe.FindString(text),
		Phone: phoneSep.Replace(phoneRe.FindString(text)),
	}

	for _, re := range contextPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 && m[1] != "" {
			s.Name = strings.TrimSpace(m[1])
			break
		}
	}
	if s.Name == "" {
		for _, cand := range nameSeqRe.FindAllString(text, -1) {
			if l.plausibleName(cand) {
				s.Name = cand
				break
			}
		}
	}
	if s.Name != "" {
		s.Alias = strings.Fields(s.Name)[0]
	}
	return s
}

// plausibleName descarta secuencias capitalizadas que contienen vocabulario genérico o fechas.
func (l *Lexicon) plausibleName(seq string) bool {
	if len([]rune(seq)) <= 2 {
		return false
	}
	for _, w := range strings.Fields(seq) {
		if l.genericNouns.has(w) || l.calendar.has(w) || l.stop.has(w) || l.neverProper.has(w) {
			return false
		}
	}
	return true
}

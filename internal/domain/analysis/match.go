package analysis

import (
	"strings"

	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/pkg/textnorm"
)

// isLooseProperNoun versión relajada usada por el matcher de respaldo:
// basta con venir capitalizada y no ser vocabulario genérico ni fecha.
func (l *Lexicon) isLooseProperNoun(word string) bool {
	w := trimWord(word)
	if !capitalized(w) {
		return false
	}
	return !l.genericNouns.has(w) && !l.calendar.has(w)
}

// SearchTerms términos que usa el matcher de respaldo: nombres propios o,
// si no hay, palabras de más de dos letras que no sean stop words.
func (l *Lexicon) SearchTerms(content string) []string {
	words := strings.Fields(content)

	var proper []string
	for _, w := range words {
		if l.isLooseProperNoun(w) && !l.stop.has(trimWord(w)) {
			proper = append(proper, textnorm.Fold(trimWord(w)))
		}
	}
	if len(proper) > 0 {
		return proper
	}

	var terms []string
	for _, w := range words {
		clean := trimWord(w)
		if len([]rune(clean)) > 2 && !l.stop.has(clean) {
			terms = append(terms, textnorm.Fold(clean))
		}
	}
	return terms
}

// MatchContacts contactos cuyo nombre, alias o email contiene algún término del contenido.
func (l *Lexicon) MatchContacts(content string, contacts []*entity.Contact) []*entity.Contact {
	terms := l.SearchTerms(content)
	if len(terms) == 0 {
		return nil
	}
	var out []*entity.Contact
	for _, c := range contacts {
		if MatchesAny(c.Name+" "+c.Alias+" "+c.Email, terms) {
			out = append(out, c)
		}
	}
	return out
}

// MatchAnswer resuelve la respuesta del LLM (un nombre) contra la agenda.
// Coincide si el nombre es igual, o si la respuesta contiene el nombre o el alias.
func MatchAnswer(answer string, contacts []*entity.Contact) *entity.Contact {
	a := textnorm.Fold(strings.TrimSpace(answer))
	if a == "" || a == "ninguno" {
		return nil
	}
	for _, c := range contacts {
		name := textnorm.Fold(c.Name)
		if name == "" {
			continue
		}
		if a == name || strings.Contains(a, name) {
			return c
		}
		if alias := textnorm.Fold(c.Alias); alias != "" && strings.Contains(a, alias) {
			return c
		}
	}
	return nil
}

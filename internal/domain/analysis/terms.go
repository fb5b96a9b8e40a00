package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/patriciastocker/intranet/pkg/textnorm"
)

// Categorías de un término.
const (
	CategoryDiscarded  = "descartado"
	CategoryProperNoun = "nombre_propio"
	CategoryCompany    = "empresa"
	CategoryLegal      = "contexto_legal"
	CategoryStopWord   = "stop_word"
)

// Puntajes del ranking.
const (
	ScoreProperNoun = 100
	ScoreCompany    = 90
	ScoreLegal      = 50
	PenaltyShort    = 30
	PriorityMin     = 80
	ContextMin      = 40
)

// Term una palabra del texto con su puntaje y explicación.
type Term struct {
	Original   string
	Normalized string
	Score      int
	Reasons    []string
	Category   string
}

// Analysis resultado completo del análisis de un texto.
type Analysis struct {
	OriginalText string
	Words        []string
	Terms        []Term // en el orden del texto
	Ranked       []Term // score > 0, de mayor a menor
	Priority     []string
	Context      []string // score entre ContextMin y PriorityMin; sólo informativo
}

// Top devuelve los n mejores términos rankeados.
func (a Analysis) Top(n int) []Term {
	if len(a.Ranked) < n {
		return a.Ranked
	}
	return a.Ranked[:n]
}

// trimWord quita puntuación en los extremos: "Statsen," -> "Statsen".
func trimWord(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// capitalized: mayúscula seguida de al menos dos minúsculas.
func capitalized(w string) bool {
	r := []rune(w)
	if len(r) < 3 || !unicode.IsUpper(r[0]) {
		return false
	}
	return unicode.IsLower(r[1]) && unicode.IsLower(r[2])
}

func onlyLetters(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsProperNoun aplica las reglas estrictas de nombre propio.
func (l *Lexicon) IsProperNoun(word string) bool {
	w := trimWord(word)
	if !capitalized(w) || !onlyLetters(w) {
		return false
	}
	if l.stop.has(w) || l.internal.has(w) || l.neverProper.has(w) {
		return false
	}
	if l.alwaysProper.has(w) {
		return true
	}
	if l.genericNouns.has(w) || l.calendar.has(w) {
		return false
	}
	return utf8.RuneCountInString(w) >= 4
}

// IsKnownCompany informa si w es un cliente externo conocido.
func (l *Lexicon) IsKnownCompany(word string) bool {
	w := trimWord(word)
	return !l.internal.has(w) && l.companies.has(w)
}

// IsLegalTerm informa si w es un término legal específico.
func (l *Lexicon) IsLegalTerm(word string) bool {
	return l.legal.has(trimWord(word))
}

// Score puntúa una palabra.
func (l *Lexicon) Score(word string) Term {
	clean := trimWord(word)
	t := Term{
		Original:   word,
		Normalized: strings.ToLower(clean),
		Category:   CategoryDiscarded,
		Reasons:    []string{},
	}

	if l.IsProperNoun(word) {
		t.Score += ScoreProperNoun
		t.Reasons = append(t.Reasons, "Nombre propio detectado")
		t.Category = CategoryProperNoun
	}
	if l.IsKnownCompany(word) {
		t.Score += ScoreCompany
		t.Reasons = append(t.Reasons, "Empresa conocida")
		t.Category = CategoryCompany
	}
	if l.IsLegalTerm(word) {
		t.Score += ScoreLegal
		t.Reasons = append(t.Reasons, "Término legal relevante")
		if t.Category == CategoryDiscarded {
			t.Category = CategoryLegal
		}
	}
	if l.stop.has(clean) {
		t.Score = 0
		t.Reasons = []string{"Stop word - palabra funcional sin valor de búsqueda"}
		t.Category = CategoryStopWord
	}
	if utf8.RuneCountInString(clean) < 3 {
		t.Score = max(0, t.Score-PenaltyShort)
		t.Reasons = append(t.Reasons, "Palabra muy corta")
	}
	return t
}

// RankTerms puntúa cada palabra de text y devuelve las de score > 0 de mayor a menor.
func (l *Lexicon) RankTerms(text string) []Term {
	return rank(l.scoreAll(strings.Fields(text)))
}

func (l *Lexicon) scoreAll(words []string) []Term {
	terms := make([]Term, 0, len(words))
	for _, w := range words {
		terms = append(terms, l.Score(w))
	}
	return terms
}

func rank(terms []Term) []Term {
	ranked := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.Score > 0 {
			ranked = append(ranked, t)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// PriorityTerms términos con score >= 80 más el email del contacto, sin repetir.
func PriorityTerms(ranked []Term, contactEmail string) []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, t := range ranked {
		if t.Score >= PriorityMin {
			add(t.Normalized)
		}
	}
	add(strings.ToLower(strings.TrimSpace(contactEmail)))
	return out
}

// ContextTerms términos de score intermedio, sin repetir.
func ContextTerms(ranked []Term) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range ranked {
		if t.Score >= ContextMin && t.Score < PriorityMin && !seen[t.Normalized] {
			seen[t.Normalized] = true
			out = append(out, t.Normalized)
		}
	}
	return out
}

// Analyze ejecuta el análisis completo sobre "contactName postItContent".
func (l *Lexicon) Analyze(contactName, content, contactEmail string) Analysis {
	text := strings.TrimSpace(contactName + " " + content)
	words := strings.Fields(text)
	terms := l.scoreAll(words)
	ranked := rank(terms)
	return Analysis{
		OriginalText: text,
		Words:        words,
		Terms:        terms,
		Ranked:       ranked,
		Priority:     PriorityTerms(ranked, contactEmail),
		Context:      ContextTerms(ranked),
	}
}

// MatchesAny informa si algún término aparece en text (sin tildes ni mayúsculas).
func MatchesAny(text string, terms []string) bool {
	folded := textnorm.Fold(text)
	for _, t := range terms {
		if t != "" && strings.Contains(folded, textnorm.Fold(t)) {
			return true
		}
	}
	return false
}

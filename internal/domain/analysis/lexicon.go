// Package analysis contiene las heurísticas puras que eligen términos de búsqueda
// y contactos a partir del texto libre de un post-it.
package analysis

import "github.com/patriciastocker/intranet/pkg/textnorm"

// Lexicon listas de palabras que alimentan el ranking. Todas se comparan plegadas
// (sin tildes, en minúsculas).
type Lexicon struct {
	stop         set // palabras funcionales: score 0
	neverProper  set // no son nombre propio aunque vengan capitalizadas
	genericNouns set // vocabulario del estudio demasiado genérico para buscar
	calendar     set // días y meses
	internal     set // personas y cuentas del estudio
	companies    set // clientes externos conocidos
	alwaysProper set // nombres externos que siempre cuentan como propios
	legal        set // términos legales específicos
}

type set map[string]struct{}

func newSet(words ...[]string) set {
	s := make(set)
	for _, list := range words {
		for _, w := range list {
			s[textnorm.Fold(w)] = struct{}{}
		}
	}
	return s
}

func (s set) has(w string) bool {
	_, ok := s[textnorm.Fold(w)]
	return ok
}

var defaultStopWords = []string{
	// artículos, pronombres y preposiciones
	"a", "al", "ante", "con", "de", "del", "el", "ella", "ellas", "ellos", "en", "es", "la", "las", "le", "les",
	"lo", "los", "me", "mi", "mis", "nos", "o", "para", "por", "se", "si", "sin", "su", "sus", "te", "tu", "un",
	"una", "unos", "unas", "y", "ya", "que", "qué", "no", "muy", "hay", "son", "ser", "fue", "era",
	// conectores
	"aunque", "como", "cuando", "donde", "mientras", "pero", "porque", "pues", "sino", "tambien", "entonces",
	"acerca", "respecto", "sobre", "mediante", "durante", "antes", "despues", "luego",
	// verbos de la tarea, no del asunto
	"avisar", "comentar", "confirmar", "consulta", "consultar", "consultarle", "contactar", "contactarle",
	"debe", "deberia", "decir", "enviar", "escribir", "hablar", "informar", "llamar", "mandar", "pedir",
	"pedirle", "podria", "pregunta", "preguntar", "preguntarle", "recordar", "revisar", "seria", "tiene",
	"uso", "usar", "verificar", "ver",
	// tiempo
	"hoy", "ayer", "mañana", "ahora", "pronto", "tarde", "semana", "mes",
}

var defaultNeverProper = []string{
	"esto", "esta", "este", "eso", "esa", "ese", "aqui", "alli", "siempre", "nunca", "tambien",
	"viene", "tengo", "hacer", "dice", "puede", "quiere", "sabe", "estan", "quiza", "hola",
	"desde", "hasta", "hacia", "segun", "entre", "contra", "bajo", "tras",
}

var defaultGenericNouns = []string{
	"abogado", "carta", "caso", "cliente", "consulta", "correo", "documento", "email", "empresa",
	"legal", "llamada", "marca", "meeting", "pendiente", "registro", "reunion", "solicitud",
	"telefono", "urgente", "tema", "favor", "gracias",
}

var defaultCalendar = []string{
	"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo",
	"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto",
	"septiembre", "octubre", "noviembre", "diciembre",
}

var defaultLegalTerms = []string{
	"inapi", "tribunal", "patente", "oposicion", "renovacion", "propiedad", "intelectual",
	"industrial", "comercial", "nulidad", "caducidad",
}

// Profile listas que dependen del estudio y vienen de la configuración.
type Profile struct {
	InternalExclusions []string
	KnownCompanies     []string
}

// NewLexicon construye el léxico con las listas por defecto más las del perfil.
// KnownCompanies también se consideran nombres propios.
func NewLexicon(p Profile) *Lexicon {
	return &Lexicon{
		stop:         newSet(defaultStopWords),
		neverProper:  newSet(defaultNeverProper),
		genericNouns: newSet(defaultGenericNouns),
		calendar:     newSet(defaultCalendar),
		internal:     newSet(p.InternalExclusions),
		companies:    newSet(p.KnownCompanies),
		alwaysProper: newSet(p.KnownCompanies),
		legal:        newSet(defaultLegalTerms),
	}
}

// IsStopWord informa si w es una palabra funcional.
func (l *Lexicon) IsStopWord(w string) bool { return l.stop.has(w) }

// IsInternal informa si w es una persona o cuenta del propio estudio.
func (l *Lexicon) IsInternal(w string) bool { return l.internal.has(w) }

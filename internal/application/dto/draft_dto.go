package dto

// GenerateEmailRequest datos del post-it a partir del cual se redacta el correo.
type GenerateEmailRequest struct {
	PostItContent  string `json:"postItContent"`
	PostItTitle    string `json:"postItTitle"`
	ForceContactID string `json:"forceContactId"`
}

// DraftEmail borrador generado.
type DraftEmail struct {
	To          string          `json:"to"`
	Subject     string          `json:"subject"`
	Body        string          `json:"body"`
	Contact     ContactResponse `json:"contact"`
	AIGenerated bool            `json:"aiGenerated"`
}

// GenerateEmailResponse {success:true, email:{...}}
type GenerateEmailResponse struct {
	Success bool       `json:"success"`
	Email   DraftEmail `json:"email"`
}

// SuggestedContact datos de contacto extraídos del texto cuando ningún contacto coincide.
type SuggestedContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

// NoContactResponse 400 de generate-email con la sugerencia extraída.
type NoContactResponse struct {
	Error            string           `json:"error"`
	SuggestedContact SuggestedContact `json:"suggestedContact"`
}

// ── Búsqueda de un contacto en el buzón (SSE) ─────────────────────────────────

// ContactSearchRequest entrada de /api/search-contact-in-emails.
type ContactSearchRequest struct {
	ContactName   string `json:"contactName"`
	ContactEmail  string `json:"contactEmail"`
	PostItContent string `json:"postItContent"`
}

// TermDTO término puntuado.
type TermDTO struct {
	Original   string   `json:"original"`
	Normalized string   `json:"normalized"`
	Score      int      `json:"score"`
	Reasons    []string `json:"reasons"`
	Category   string   `json:"category"`
}

// AnalysisDetails detalle del análisis de términos enviado en el paso 35.
type AnalysisDetails struct {
	OriginalText       string    `json:"originalText"`
	AllWords           []string  `json:"allWords"`
	TermAnalysis       []TermDTO `json:"termAnalysis"`
	RankedTerms        []TermDTO `json:"rankedTerms"`
	FinalPriorityTerms []string  `json:"finalPriorityTerms"`
	FinalContextTerms  []string  `json:"finalContextTerms"`
	TopRankedTerms     []TermDTO `json:"topRankedTerms"`
}

// ProgressEvent un evento "data: <json>" del stream.
type ProgressEvent struct {
	Step            string           `json:"step"`
	Progress        float64          `json:"progress"`
	Filters         []string         `json:"filters,omitempty"`
	TotalEmails     *int             `json:"totalEmails,omitempty"`
	AnalyzedEmails  *int             `json:"analyzedEmails,omitempty"`
	AnalysisDetails *AnalysisDetails `json:"analysisDetails,omitempty"`
	FoundInfo       []string         `json:"foundInfo,omitempty"`
	ContactInfo     *ContactInfo     `json:"contactInfo,omitempty"`
	DetailedReport  *DetailedReport  `json:"detailedReport,omitempty"`
}

// ContactInfo datos de contacto hallados en los correos.
type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// ContactProfile cabecera del reporte.
type ContactProfile struct {
	Name           string `json:"name"`
	SearchContext  string `json:"searchContext"`
	EmailsAnalyzed int    `json:"emailsAnalyzed"`
	AnalysisDate   string `json:"analysisDate"`
}

// FiltersUsed términos usados y de contexto.
type FiltersUsed struct {
	Priority []string `json:"priority"`
	Context  []string `json:"context"`
}

// SearchStrategy cómo se filtraron los correos.
type SearchStrategy struct {
	TotalEmailsAvailable int         `json:"totalEmailsAvailable"`
	FiltersUsed          FiltersUsed `json:"filtersUsed"`
	TermAnalysis         []TermDTO   `json:"termAnalysis"`
	SearchApproach       string      `json:"searchApproach"`
}

// CommunicationMetadata cabecera de un correo del reporte.
type CommunicationMetadata struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

// Communication correo relevante.
type Communication struct {
	EmailID              int                   `json:"emailId"`
	RelevanceScore       int                   `json:"relevanceScore"`
	Metadata             CommunicationMetadata `json:"metadata"`
	CommunicationSummary string                `json:"communicationSummary"`
}

// TimelineEntry correo en la línea de tiempo.
type TimelineEntry struct {
	Date      string `json:"date"`
	Subject   string `json:"subject"`
	From      string `json:"from"`
	Summary   string `json:"summary"`
	Relevance int    `json:"relevance"`
}

// RelatedContact remitente distinto del contacto buscado.
type RelatedContact struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
}

// DetailedReport reporte final de la búsqueda.
type DetailedReport struct {
	ContactProfile  ContactProfile   `json:"contactProfile"`
	SearchStrategy  SearchStrategy   `json:"searchStrategy"`
	Communications  []Communication  `json:"communications"`
	RelatedContacts []RelatedContact `json:"relatedContacts"`
	Timeline        []TimelineEntry  `json:"timeline"`
	Summary         string           `json:"summary"`
}

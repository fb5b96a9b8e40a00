package dto

// ConnectionInfo datos de la conexión IMAP informados por los diagnósticos.
type ConnectionInfo struct {
	Host       string      `json:"host"`
	Port       int         `json:"port"`
	Secure     bool        `json:"secure"`
	User       string      `json:"user"`
	Connected  bool        `json:"connected"`
	Error      string      `json:"error,omitempty"`
	Timestamp  string      `json:"timestamp"`
	ServerInfo *ServerInfo `json:"server_info,omitempty"`
}

// ServerInfo capacidades y namespace del servidor.
type ServerInfo struct {
	Capabilities []string       `json:"capabilities"`
	Namespace    *NamespaceInfo `json:"namespace"`
}

// NamespaceInfo prefijos de namespace (RFC 2342).
type NamespaceInfo struct {
	Personal []string `json:"personal"`
	Other    []string `json:"other"`
	Shared   []string `json:"shared"`
}

// FolderStatsResponse contadores de una carpeta.
type FolderStatsResponse struct {
	Name       string   `json:"name"`
	Error      string   `json:"error,omitempty"`
	Exists     uint32   `json:"exists"`
	Recent     uint32   `json:"recent"`
	Unseen     uint32   `json:"unseen"`
	Flags      []string `json:"flags"`
	Path       string   `json:"path"`
	Delimiter  string   `json:"delimiter"`
	Subscribed bool     `json:"subscribed"`
	Selectable bool     `json:"selectable"`
}

// LargestFolder carpeta con más correos.
type LargestFolder struct {
	Name   string `json:"name"`
	Exists uint32 `json:"exists"`
}

// DiagnosticsSummary totales de /api/diagnostics.
type DiagnosticsSummary struct {
	TotalFolders      int           `json:"total_folders"`
	TotalEmails       uint32        `json:"total_emails"`
	TotalUnseen       uint32        `json:"total_unseen"`
	FoldersWithEmails int           `json:"folders_with_emails"`
	LargestFolder     LargestFolder `json:"largest_folder"`
}

// Recommendation mensaje para el operador.
type Recommendation struct {
	Type    string `json:"type"` // success, info, warning, error, critical
	Message string `json:"message"`
}

// DiagnosticsResponse resultado de /api/diagnostics.
type DiagnosticsResponse struct {
	Connection      ConnectionInfo        `json:"connection"`
	Folders         []FolderStatsResponse `json:"folders"`
	Summary         DiagnosticsSummary    `json:"summary"`
	Recommendations []Recommendation      `json:"recommendations"`
}

// PatternFolder carpeta encontrada por un patrón LIST.
type PatternFolder struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Flags      []string `json:"flags"`
	Delimiter  string   `json:"delimiter"`
	Subscribed bool     `json:"subscribed"`
	Selectable bool     `json:"selectable"`
}

// FolderExploration resultado de un patrón LIST.
type FolderExploration struct {
	Pattern       string          `json:"pattern"`
	Reference     string          `json:"reference"`
	SearchPattern string          `json:"search_pattern"`
	Error         string          `json:"error,omitempty"`
	FoldersFound  int             `json:"folders_found"`
	Folders       []PatternFolder `json:"folders"`
}

// FolderTest resultado de intentar seleccionar una carpeta conocida.
type FolderTest struct {
	FolderName  string `json:"folder_name"`
	Accessible  bool   `json:"accessible"`
	Error       string `json:"error,omitempty"`
	Exists      uint32 `json:"exists"`
	Recent      uint32 `json:"recent"`
	Unseen      uint32 `json:"unseen"`
	UIDNext     uint32 `json:"uidNext,omitempty"`
	UIDValidity uint32 `json:"uidValidity,omitempty"`
}

// DeepDiagnosticsResponse resultado de /api/deep-diagnostics.
type DeepDiagnosticsResponse struct {
	Connection        ConnectionInfo      `json:"connection"`
	FolderExploration []FolderExploration `json:"folder_exploration"`
	FolderTests       []FolderTest        `json:"folder_tests"`
	NamespaceInfo     *NamespaceInfo      `json:"namespace_info"`
	Capabilities      []string            `json:"capabilities"`
	Recommendations   []Recommendation    `json:"recommendations"`
}

package dto

// CreateDeudaRequest entrada para registrar una deuda.
type CreateDeudaRequest struct {
	EmpresaAcreedora string   `json:"empresaAcreedora"`
	NumeroFactura    string   `json:"numeroFactura"`
	FechaEmision     string   `json:"fechaEmision"`
	FechaVencimiento string   `json:"fechaVencimiento"`
	MontoPendiente   *float64 `json:"montoPendiente"`
	Estado           string   `json:"estado"`
	DiasRetraso      int      `json:"diasRetraso"`
}

// UpdateDeudaRequest actualización parcial; sólo cambian los campos presentes.
type UpdateDeudaRequest struct {
	EmpresaAcreedora *string  `json:"empresaAcreedora"`
	NumeroFactura    *string  `json:"numeroFactura"`
	FechaEmision     *string  `json:"fechaEmision"`
	FechaVencimiento *string  `json:"fechaVencimiento"`
	MontoPendiente   *float64 `json:"montoPendiente"`
	Estado           *string  `json:"estado"`
	DiasRetraso      *int     `json:"diasRetraso"`
}

// DeudaResponse salida de una deuda.
type DeudaResponse struct {
	ID               int64   `json:"id"`
	EmpresaAcreedora string  `json:"empresaAcreedora"`
	NumeroFactura    string  `json:"numeroFactura"`
	FechaEmision     string  `json:"fechaEmision"`
	FechaVencimiento string  `json:"fechaVencimiento"`
	MontoPendiente   float64 `json:"montoPendiente"`
	Estado           string  `json:"estado"`
	DiasRetraso      int     `json:"diasRetraso"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}

// DeudaEnvelope {deuda: ...}
type DeudaEnvelope struct {
	Deuda DeudaResponse `json:"deuda"`
}

// DeudaListResponse {deudas: [...]}
type DeudaListResponse struct {
	Deudas []DeudaResponse `json:"deudas"`
}

// EmpresaResumen total y cantidad de facturas de una empresa.
type EmpresaResumen struct {
	Total    float64 `json:"total"`
	Facturas int     `json:"facturas"`
}

// ResumenResponse total adeudado y desglose por empresa acreedora.
type ResumenResponse struct {
	TotalAdeudado      float64                   `json:"totalAdeudado"`
	DesglosePorEmpresa map[string]EmpresaResumen `json:"desglosePorEmpresa"`
}

// RecalcularResponse resultado de recalcular vencimientos.
type RecalcularResponse struct {
	Actualizadas int `json:"actualizadas"`
}

// EmpresaResponse empresa acreedora con datos bancarios.
type EmpresaResponse struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	RUT       string  `json:"rut"`
	Banco     string  `json:"banco"`
	Cuenta    string  `json:"cuenta"`
	Email     *string `json:"email"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// EmpresasResponse {empresas: {<nombre>: {...}}}
type EmpresasResponse struct {
	Empresas map[string]EmpresaResponse `json:"empresas"`
}

package dto

// ErrorResponse cuerpo de error HTTP. El mensaje viaja en "error" como esperan los clientes existentes.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// SuccessResponse respuesta mínima {success:true}.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// DeletedResponse confirmación de borrado con el id eliminado.
type DeletedResponse struct {
	Message   string `json:"message"`
	DeletedID string `json:"deletedId"`
}

// PageRequest paginación por número de página.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero o negativos.
func (p *PageRequest) DefaultPage(limit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = limit
	}
}

// TotalPages páginas necesarias para total elementos.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

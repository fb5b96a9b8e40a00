package dto

// PowerFields datos del poder y de la marca; comparten forma en contactos y en la generación del poder.
type PowerFields struct {
	RUT                     string `json:"rut"`
	Address                 string `json:"address"`
	RepresentedCompany      string `json:"represented_company"`
	RepresentedCompanyRUT   string `json:"represented_company_rut"`
	Gender                  string `json:"gender"`
	PowerPurpose            string `json:"power_purpose"`
	BrandClass              string `json:"brand_class"`
	BrandType               string `json:"brand_type"`
	BrandCoverage           string `json:"brand_coverage"`
	BrandDescription        string `json:"brand_description"`
	BrandRegistrationNumber string `json:"brand_registration_number"`
	BrandApplicationNumber  string `json:"brand_application_number"`
	BrandLogo               string `json:"brand_logo"`
}

// ContactRequest entrada para crear o reemplazar un contacto.
type ContactRequest struct {
	Name      string `json:"name"`
	Alias     string `json:"alias"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CompanyID string `json:"company_id"`
	PowerFields
}

// ContactResponse salida de un contacto con los datos de su empresa.
type ContactResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Alias              string  `json:"alias"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	CompanyID          *string `json:"company_id"`
	CompanyName        *string `json:"company_name"`
	CompanyDescription *string `json:"company_description"`
	PowerFields
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ContactEnvelope {contact: ...}
type ContactEnvelope struct {
	Contact ContactResponse `json:"contact"`
}

// ContactListResponse {contacts: [...]}
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

// CompanyRequest entrada para crear o actualizar una empresa cliente.
type CompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// CompanyResponse salida de una empresa cliente; Brands sólo si se pidió.
type CompanyResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Website     string          `json:"website"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Brands      []BrandResponse `json:"brands,omitempty"`
}

// CompanyEnvelope {company: ...}
type CompanyEnvelope struct {
	Company CompanyResponse `json:"company"`
}

// CompanyListResponse {companies: [...]}
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// BrandRequest entrada para crear o actualizar una marca.
type BrandRequest struct {
	Name               string `json:"name"`
	CompanyID          string `json:"company_id"`
	Description        string `json:"description"`
	Status             string `json:"status"`
	RegistrationDate   string `json:"registration_date"`
	RegistrationNumber string `json:"registration_number"`
	ClassNice          string `json:"class_nice"`
	Notes              string `json:"notes"`
}

// BrandResponse salida de una marca con el nombre de su empresa.
type BrandResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	CompanyID          string  `json:"company_id"`
	Description        string  `json:"description"`
	Status             string  `json:"status"`
	RegistrationDate   *string `json:"registration_date"`
	RegistrationNumber string  `json:"registration_number"`
	ClassNice          string  `json:"class_nice"`
	Notes              string  `json:"notes"`
	CompanyName        string  `json:"company_name,omitempty"`
	CompanyDescription string  `json:"company_description,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// BrandEnvelope {brand: ...}
type BrandEnvelope struct {
	Brand BrandResponse `json:"brand"`
}

// BrandListResponse {brands: [...]}
type BrandListResponse struct {
	Brands []BrandResponse `json:"brands"`
}

package dto

// CreatePostItRequest entrada para crear un post-it.
type CreatePostItRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

// UpdatePostItRequest actualización parcial. archived acepta booleano o 0/1.
type UpdatePostItRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Color    *string   `json:"color"`
	Position *int      `json:"position"`
	Archived *FlexBool `json:"archived"`
}

// ReorderPostItsRequest ids en el orden deseado.
type ReorderPostItsRequest struct {
	IDs []string `json:"ids"`
}

// PostItResponse salida de un post-it; archived se expone como 0|1.
type PostItResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Color     string `json:"color"`
	Position  int    `json:"position"`
	Archived  int    `json:"archived"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PostItEnvelope {postIt: ...}
type PostItEnvelope struct {
	PostIt PostItResponse `json:"postIt"`
}

// PostItListResponse {postIts: [...]}
type PostItListResponse struct {
	PostIts []PostItResponse `json:"postIts"`
}

// ReadStatusRequest entrada de POST /api/read-status.
type ReadStatusRequest struct {
	EmailID string `json:"emailId"`
}

// ReadStatusResponse {readEmails: [...]}
type ReadStatusResponse struct {
	ReadEmails []string `json:"readEmails"`
}

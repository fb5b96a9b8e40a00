package entity

import "time"

// DefaultPostItColor color amarillo con el que nace un post-it.
const DefaultPostItColor = "#fef3c7"

// PostIt nota adhesiva del tablero, ordenada manualmente por Position.
type PostIt struct {
	ID        string
	Title     string
	Content   string
	Color     string
	Position  int
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostItPatch campos opcionales de una actualización parcial.
type PostItPatch struct {
	Title    *string
	Content  *string
	Color    *string
	Position *int
	Archived *bool
}

// Empty informa si el patch no trae ningún campo.
func (p PostItPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Color == nil && p.Position == nil && p.Archived == nil
}

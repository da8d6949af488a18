package domain

import "time"

type Author struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AuthorRef es la referencia parcial que acompaña a un documento.
// Puede traer solo id, solo email o solo nombre; el reconciliador
// decide si reutiliza un autor existente o crea uno nuevo.
type AuthorRef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	Specialization string `json:"specialization"`
}

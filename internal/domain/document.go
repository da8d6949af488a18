package domain

import "time"

type Document struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	Keywords        []string   `json:"keywords,omitempty"`
	FileURL         string     `json:"fileUrl"`
	FileType        string     `json:"fileType"`
	Theme           string     `json:"theme"`
	Author          *Author    `json:"author,omitempty"`
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

package models

import "time"

type Category struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package models

import "time"

// Tournament представляет турнир.
type Tournament struct {
	ID            int        `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	HasCategories bool       `json:"has_categories" db:"has_categories"`
	StartDate     *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty" db:"end_date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Teams     []Team     `json:"teams,omitempty" db:"-"`
	Schedules []Schedule `json:"schedules,omitempty" db:"-"`
}

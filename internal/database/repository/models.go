package repository

import "time"

// Category represents a category row.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MappingRule represents a description-to-category rule.
type MappingRule struct {
	ID         string    `json:"id"`
	Pattern    string    `json:"pattern"`
	CategoryID string    `json:"category_id"`
	Source     *string   `json:"source"`
	IsRegex    bool      `json:"is_regex"`
	Priority   int       `json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Transaction represents a transaction row.
type Transaction struct {
	ID                  string    `json:"id"`
	Date                time.Time `json:"date"`
	Amount              float64   `json:"amount"`
	Description         string    `json:"description"`
	OriginalDescription *string   `json:"original_description"`
	CategoryID          *string   `json:"category_id"`
	IsExpense           bool      `json:"is_expense"`
	Source              string    `json:"source"`
	ImportID            *string   `json:"import_id"`
	SourceID            *string   `json:"source_id"`
	HashID              string    `json:"hash_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

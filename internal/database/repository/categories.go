package repository

import (
	"context"
	"database/sql"
)

// CategoryRepo handles categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c Category) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO categories(id, name, description, is_default, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, c.ID, c.Name, c.Description, c.IsDefault)
	return err
}

func (r *CategoryRepo) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, is_default, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Get(ctx context.Context, id string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, is_default, created_at, updated_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetByName matches category names case-insensitively.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, is_default, created_at, updated_at FROM categories WHERE name = ? COLLATE NOCASE`, name)
	c, err := scanCategory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetDefault returns the fallback category, or nil when none is marked.
func (r *CategoryRepo) GetDefault(ctx context.Context) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, is_default, created_at, updated_at FROM categories WHERE is_default = 1 LIMIT 1`)
	c, err := scanCategory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c Category) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE categories SET name = ?, description = ?, is_default = ?, updated_at=CURRENT_TIMESTAMP
	WHERE id = ?;
	`, c.Name, c.Description, c.IsDefault, c.ID)
	return err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func scanCategory(row scanner) (Category, error) {
	var c Category
	var desc sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &desc, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Category{}, err
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	return c, nil
}

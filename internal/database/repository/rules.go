package repository

import (
	"context"
	"database/sql"
)

// RuleRepo handles mapping rules.
type RuleRepo struct {
	db *sql.DB
}

func NewRuleRepo(db *sql.DB) *RuleRepo { return &RuleRepo{db: db} }

func (r *RuleRepo) Create(ctx context.Context, m MappingRule) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO mapping_rules(id, pattern, category_id, source, is_regex, priority, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, m.ID, m.Pattern, m.CategoryID, m.Source, m.IsRegex, m.Priority)
	return err
}

// List returns rules highest priority first.
func (r *RuleRepo) List(ctx context.Context) ([]MappingRule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, pattern, category_id, source, is_regex, priority, created_at, updated_at FROM mapping_rules ORDER BY priority DESC, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MappingRule
	for rows.Next() {
		m, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *RuleRepo) Get(ctx context.Context, id string) (*MappingRule, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, pattern, category_id, source, is_regex, priority, created_at, updated_at FROM mapping_rules WHERE id = ?`, id)
	m, err := scanRule(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *RuleRepo) Update(ctx context.Context, m MappingRule) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE mapping_rules SET pattern = ?, category_id = ?, source = ?, is_regex = ?, priority = ?, updated_at=CURRENT_TIMESTAMP
	WHERE id = ?;
	`, m.Pattern, m.CategoryID, m.Source, m.IsRegex, m.Priority, m.ID)
	return err
}

func (r *RuleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mapping_rules WHERE id = ?`, id)
	return err
}

func scanRule(row scanner) (MappingRule, error) {
	var m MappingRule
	var source sql.NullString
	if err := row.Scan(&m.ID, &m.Pattern, &m.CategoryID, &source, &m.IsRegex, &m.Priority, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return MappingRule{}, err
	}
	if source.Valid {
		m.Source = &source.String
	}
	return m, nil
}

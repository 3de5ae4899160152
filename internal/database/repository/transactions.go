package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// TransactionFilters defines list filters.
type TransactionFilters struct {
	CategoryID string
	Source     string
	ImportID   string
	Month      time.Time // use first day of month; zero time = no month filter
	Search     string
	Limit      int
	Offset     int
}

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const transactionColumns = `id, date, amount, description, original_description, category_id, is_expense, source, import_id, source_id, hash_id, created_at, updated_at`

func (r *TransactionRepo) Insert(ctx context.Context, t Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(
	 id, date, amount, description, original_description, category_id, is_expense,
	 source, import_id, source_id, hash_id, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		t.ID, t.Date, t.Amount, t.Description, t.OriginalDescription, t.CategoryID,
		t.IsExpense, t.Source, t.ImportID, t.SourceID, t.HashID)
	return err
}

// ExistsByHash reports whether a transaction with the given fingerprint is
// already stored.
func (r *TransactionRepo) ExistsByHash(ctx context.Context, hashID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE hash_id = ?`, hashID).Scan(&n)
	return n > 0, err
}

func (r *TransactionRepo) UpdateCategory(ctx context.Context, id string, categoryID *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE transactions SET category_id = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, categoryID, id)
	return err
}

// ReassignCategory moves every transaction in one category to another.
// A nil target clears the assignment.
func (r *TransactionRepo) ReassignCategory(ctx context.Context, fromID string, toID *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE transactions SET category_id = ?, updated_at=CURRENT_TIMESTAMP WHERE category_id = ?`, toID, fromID)
	return err
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	return err
}

func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]Transaction, error) {
	var where []string
	var args []interface{}

	if f.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Source != "" {
		where = append(where, "source = ?")
		args = append(args, f.Source)
	}
	if f.ImportID != "" {
		where = append(where, "import_id = ?")
		args = append(args, f.ImportID)
	}
	if !f.Month.IsZero() {
		start := time.Date(f.Month.Year(), f.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		where = append(where, "date >= ? AND date < ?")
		args = append(args, start, end)
	}
	if f.Search != "" {
		where = append(where, "description LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := "SELECT " + transactionColumns + " FROM transactions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
		if f.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, f.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Uncategorized returns transactions with no category assigned.
func (r *TransactionRepo) Uncategorized(ctx context.Context) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE category_id IS NULL ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CategoryTotal aggregates spend per category.
type CategoryTotal struct {
	CategoryID string  `json:"category_id"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
}

func (r *TransactionRepo) SumByCategoryForMonth(ctx context.Context, month time.Time) ([]CategoryTotal, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	rows, err := r.db.QueryContext(ctx, `
	SELECT COALESCE(category_id, ''), SUM(amount) as total, COUNT(*)
	FROM transactions
	WHERE date >= ? AND date < ?
	GROUP BY category_id
	ORDER BY total ASC;
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.CategoryID, &ct.Total, &ct.Count); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// MonthTotal aggregates income and spend per calendar month.
type MonthTotal struct {
	Month    string  `json:"month"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

func (r *TransactionRepo) MonthlyTrend(ctx context.Context, months int) ([]MonthTotal, error) {
	start := time.Now().UTC().AddDate(0, -months, 0)
	rows, err := r.db.QueryContext(ctx, `
	SELECT strftime('%Y-%m', date) as ym,
	 SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END),
	 SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END)
	FROM transactions
	WHERE date >= ?
	GROUP BY ym
	ORDER BY ym;
	`, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MonthTotal
	for rows.Next() {
		var mt MonthTotal
		if err := rows.Scan(&mt.Month, &mt.Income, &mt.Expenses); err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	return out, rows.Err()
}

// scanTransaction handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	var original, category, importID, sourceID sql.NullString
	if err := row.Scan(&t.ID, &t.Date, &t.Amount, &t.Description, &original, &category,
		&t.IsExpense, &t.Source, &importID, &sourceID, &t.HashID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Transaction{}, err
	}
	if original.Valid {
		t.OriginalDescription = &original.String
	}
	if category.Valid {
		t.CategoryID = &category.String
	}
	if importID.Valid {
		t.ImportID = &importID.String
	}
	if sourceID.Valid {
		t.SourceID = &sourceID.String
	}
	return t, nil
}

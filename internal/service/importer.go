package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coinflow-dev/coinflow/internal/database/repository"
	"github.com/coinflow-dev/coinflow/internal/parser"
)

// Importer parses statement files and persists new transactions, skipping
// rows whose fingerprint is already stored.
type Importer struct {
	Transactions *repository.TransactionRepo
	Categorizer  *Categorizer
	Log          zerolog.Logger
}

func NewImporter(txs *repository.TransactionRepo, cat *Categorizer, log zerolog.Logger) *Importer {
	return &Importer{Transactions: txs, Categorizer: cat, Log: log}
}

// PreviewRow is one parsed transaction with its duplicate flag.
type PreviewRow struct {
	parser.Transaction
	Duplicate bool `json:"duplicate"`
}

// PreviewResult reports what an import would do without persisting anything.
type PreviewResult struct {
	ImportID   string       `json:"import_id"`
	Source     string       `json:"source"`
	Rows       []PreviewRow `json:"rows"`
	Total      int          `json:"total"`
	Duplicates int          `json:"duplicates"`
}

// ImportResult reports a committed import.
type ImportResult struct {
	ImportID    string `json:"import_id"`
	Imported    int    `json:"imported"`
	Skipped     int    `json:"skipped"`
	Categorized int    `json:"categorized"`
}

// Preview parses a statement file and flags duplicates without writing
// anything. Duplicate rows stay in the result so callers can show them.
func (s *Importer) Preview(ctx context.Context, path string) (PreviewResult, error) {
	parsed, source, err := s.parseFile(path)
	if err != nil {
		return PreviewResult{}, err
	}
	res := PreviewResult{
		ImportID: uuid.NewString(),
		Source:   source,
		Total:    len(parsed),
	}
	for _, tx := range parsed {
		tx.ImportID = res.ImportID
		exists, err := s.Transactions.ExistsByHash(ctx, tx.HashID)
		if err != nil {
			return PreviewResult{}, err
		}
		if exists {
			res.Duplicates++
		}
		res.Rows = append(res.Rows, PreviewRow{Transaction: tx, Duplicate: exists})
	}
	return res, nil
}

// ImportFile parses a statement file and persists every non-duplicate row.
func (s *Importer) ImportFile(ctx context.Context, path string, autoCategorize bool) (ImportResult, error) {
	parsed, source, err := s.parseFile(path)
	if err != nil {
		return ImportResult{}, err
	}
	s.Log.Info().Str("source", source).Int("rows", len(parsed)).Str("file", path).Msg("importing statement")
	return s.CommitBatch(ctx, parsed, nil, autoCategorize)
}

// CommitBatch persists parsed transactions. When hashIDs is non-empty only
// rows with those fingerprints are committed, so a caller can confirm a
// subset of a preview. Rows already stored are skipped either way.
func (s *Importer) CommitBatch(ctx context.Context, parsed []parser.Transaction, hashIDs []string, autoCategorize bool) (ImportResult, error) {
	res := ImportResult{ImportID: uuid.NewString()}

	var wanted map[string]bool
	if len(hashIDs) > 0 {
		wanted = make(map[string]bool, len(hashIDs))
		for _, h := range hashIDs {
			wanted[h] = true
		}
	}

	var inserted []repository.Transaction
	for _, tx := range parsed {
		if wanted != nil && !wanted[tx.HashID] {
			continue
		}
		exists, err := s.Transactions.ExistsByHash(ctx, tx.HashID)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}
		row := toRow(tx, res.ImportID)
		if err := s.Transactions.Insert(ctx, row); err != nil {
			// unique constraint races are duplicates, not failures
			if strings.Contains(err.Error(), "UNIQUE") {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("insert %q: %w", tx.Description, err)
		}
		inserted = append(inserted, row)
		res.Imported++
	}

	if autoCategorize && s.Categorizer != nil && len(inserted) > 0 {
		n, err := s.Categorizer.CategorizeBatch(ctx, inserted)
		if err != nil {
			return res, err
		}
		res.Categorized = n
	}
	return res, nil
}

func (s *Importer) parseFile(path string) ([]parser.Transaction, string, error) {
	p, err := parser.Detect(path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	parsed, err := p.Parse(f)
	if err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	return parsed, p.SourceName(), nil
}

func toRow(tx parser.Transaction, importID string) repository.Transaction {
	row := repository.Transaction{
		ID:          uuid.NewString(),
		Date:        tx.Date,
		Amount:      tx.Amount,
		Description: tx.Description,
		IsExpense:   tx.IsExpense,
		Source:      tx.Source,
		ImportID:    &importID,
		HashID:      tx.HashID,
	}
	if tx.OriginalDescription != "" && tx.OriginalDescription != tx.Description {
		orig := tx.OriginalDescription
		row.OriginalDescription = &orig
	}
	if tx.SourceID != "" {
		sid := tx.SourceID
		row.SourceID = &sid
	}
	return row
}

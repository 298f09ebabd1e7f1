package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/kanaflash/internal/logger"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Rows per INSERT; keeps bound parameters well under SQLite's limit.
const insertBatchSize = 500

type characterRepository struct {
	db *sql.DB
}

// NewCharacterRepository creates a new CharacterRepository implementation
func NewCharacterRepository(db *sql.DB) repository.CharacterRepository {
	return &characterRepository{db: db}
}

// ReplaceDataset swaps the stored entries of one dataset, keeping load order.
func (r *characterRepository) ReplaceDataset(ctx context.Context, dataset string, entries []models.CharacterEntry) error {
	log := logger.FromContext(ctx).WithPrefix("character_repo")
	log.Debug("replacing dataset: dataset=%s, entries=%d", dataset, len(entries))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM characters WHERE dataset = ?`, dataset); err != nil {
			log.Error("failed to clear dataset: %v", err)
			return err
		}

		for start := 0; start < len(entries); start += insertBatchSize {
			end := min(start+insertBatchSize, len(entries))
			insert := sqlBuilder.Insert("characters").
				Columns("dataset", "position", "kind", "glyph", "romaji", "reading", "meaning", "category")
			for i, e := range entries[start:end] {
				insert = insert.Values(dataset, start+i, e.Kind.String(), e.Glyph, e.Romaji, e.Reading, e.Meaning, e.Category)
			}
			query, args, err := insert.ToSql()
			if err != nil {
				log.Error("failed to build insert: %v", err)
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to insert entries: %v", err)
				return err
			}
		}

		_, err := tx.ExecContext(ctx, `
INSERT INTO dataset_imports (dataset, entry_count) VALUES (?, ?)
ON CONFLICT(dataset) DO UPDATE SET entry_count = excluded.entry_count, imported_at = CURRENT_TIMESTAMP
`, dataset, len(entries))
		if err != nil {
			log.Error("failed to record import: %v", err)
		}
		return err
	})
}

func applyFilter(query squirrel.SelectBuilder, filter models.CharacterFilter) squirrel.SelectBuilder {
	if filter.Dataset != "" {
		query = query.Where(squirrel.Eq{"dataset": filter.Dataset})
	}
	if filter.Kind != 0 {
		query = query.Where(squirrel.Eq{"kind": filter.Kind.String()})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	return query
}

func (r *characterRepository) List(ctx context.Context, filter models.CharacterFilter) ([]models.CharacterEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("character_repo")
	log.Debug("listing characters with filter: dataset=%s, kind=%s, category=%s", filter.Dataset, filter.Kind, filter.Category)

	query := applyFilter(sqlBuilder.Select(
		"kind", "glyph", "romaji", "reading", "meaning", "category",
	).From("characters"), filter).OrderBy("dataset", "position")

	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to list characters: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.CharacterEntry
	for rows.Next() {
		var (
			kind string
			e    models.CharacterEntry
		)
		if err := rows.Scan(&kind, &e.Glyph, &e.Romaji, &e.Reading, &e.Meaning, &e.Category); err != nil {
			log.Error("failed to scan character row: %v", err)
			return nil, err
		}
		if e.Kind, err = models.ParseEntryKind(kind); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	log.Debug("found %d characters", len(out))
	return out, rows.Err()
}

func (r *characterRepository) Count(ctx context.Context, filter models.CharacterFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("character_repo")

	q, args, err := applyFilter(sqlBuilder.Select("COUNT(*)").From("characters"), filter).ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		log.Error("failed to count characters: %v", err)
		return 0, err
	}
	return count, nil
}

// Categories returns the dataset's categories in first-seen order; an
// uncategorized entry contributes "".
func (r *characterRepository) Categories(ctx context.Context, dataset string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("character_repo")

	q, args, err := sqlBuilder.Select("category").
		From("characters").
		Where(squirrel.Eq{"dataset": dataset}).
		GroupBy("category").
		OrderBy("MIN(position)").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to list categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *characterRepository) Datasets(ctx context.Context) ([]models.DatasetSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("character_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT dataset, entry_count, imported_at
FROM dataset_imports
ORDER BY dataset
`)
	if err != nil {
		log.Error("failed to list datasets: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.DatasetSummary
	for rows.Next() {
		var s models.DatasetSummary
		if err := rows.Scan(&s.Name, &s.Count, &s.ImportedAt); err != nil {
			log.Error("failed to scan dataset row: %v", err)
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

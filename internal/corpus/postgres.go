package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/postgres"
)

// PostgresSource loads the batch from the collaborator's `articles` table in
// ingestion order, so document ids stay stable across runs over the same
// table.
type PostgresSource struct {
	db     *postgres.Client
	limit  int
	logger *slog.Logger
}

// NewPostgresSource creates a source over an open database connection.
func NewPostgresSource(db *postgres.Client, limit int) *PostgresSource {
	return &PostgresSource{
		db:     db,
		limit:  limit,
		logger: slog.Default().With("component", "corpus-postgres"),
	}
}

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) ([]clir.Document, error) {
	rows, err := s.db.DB.QueryContext(ctx,
		`SELECT title, body, url, COALESCE(published_at::text, ''), COALESCE(language, '')
		 FROM articles ORDER BY id LIMIT $1`, s.limit)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var docs []clir.Document
	for rows.Next() {
		var doc clir.Document
		if err := rows.Scan(&doc.Title, &doc.Body, &doc.URL, &doc.Date, &doc.Language); err != nil {
			if err == sql.ErrNoRows {
				break
			}
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating article rows: %w", err)
	}

	s.logger.Info("corpus loaded from postgres", "documents", len(docs))
	return docs, nil
}

package importer

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/kingsbal/kingsbal-backend/internal/corpus"
)

// Runs the full discover-and-import path against a live database. Requires
// migrations to have been applied first.
func TestImportCorpus_DBIntegration(t *testing.T) {
	if os.Getenv("KINGSBAL_INTEGRATION") != "1" {
		t.Skip("set KINGSBAL_INTEGRATION=1 to run integration tests")
	}

	dsn := os.Getenv("KINGSBAL_TEST_DSN")
	if strings.TrimSpace(dsn) == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if strings.TrimSpace(dsn) == "" {
		t.Skip("set KINGSBAL_TEST_DSN or DATABASE_URL to run integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping test db: %v", err)
	}

	suffix := time.Now().UnixNano()
	topic := fmt.Sprintf("ITEST Topic %d", suffix)
	records := []corpus.QuestionRecord{
		{
			ID:            fmt.Sprintf("itest-%d-1", suffix),
			Topic:         topic,
			Type:          corpus.TypeMCQ,
			Difficulty:    "easy",
			Question:      fmt.Sprintf("Integration question %d alpha?", suffix),
			Options:       map[string]string{"A": "yes", "B": "no"},
			CorrectAnswer: "A",
		},
		{
			ID:         fmt.Sprintf("itest-%d-2", suffix),
			Topic:      topic,
			Type:       corpus.TypeClinical,
			Difficulty: "hard",
			Question:   fmt.Sprintf("Integration question %d beta?", suffix),
		},
	}

	im := New(ctx, pool, zerolog.Nop())

	report, err := im.ImportCorpus(ctx, records)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if report.Inserted != len(records) || report.Skipped != 0 || report.Failed != 0 {
		t.Fatalf("first import report = %+v, want %d inserted", report, len(records))
	}

	// A second run over the same records must be a no-op: everything is a
	// duplicate by question text and topic.
	report, err = im.ImportCorpus(ctx, records)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if report.Inserted != 0 || report.Skipped != len(records) || report.Failed != 0 {
		t.Fatalf("second import report = %+v, want %d skipped", report, len(records))
	}

	var count int
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM questions q
		JOIN topics t ON t.id = q.topic_id
		WHERE t.title = $1
	`, topic).Scan(&count)
	if err != nil {
		t.Fatalf("count imported questions: %v", err)
	}
	if count != len(records) {
		t.Fatalf("imported question count = %d, want %d", count, len(records))
	}

	// Cleanup. Questions cascade with the topic.
	if _, err := pool.Exec(ctx, `DELETE FROM topics WHERE title = $1`, topic); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

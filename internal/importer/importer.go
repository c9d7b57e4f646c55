// Package importer seeds question corpora into a persistent store whose
// exact column set varies across environments. Statements are built once per
// run from the discovered schema capabilities; topics and questions are
// de-duplicated so re-importing the same corpus is idempotent.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/rs/zerolog"
)

// Report summarizes one import run. Inserted counts only rows actually
// added; duplicates and failures are tracked separately.
type Report struct {
	Inserted int
	Skipped  int
	Failed   int
}

// Importer writes QuestionRecords into the destination store.
type Importer struct {
	pool *pgxpool.Pool
	caps SchemaCapabilities
	log  zerolog.Logger

	topicQuery    string
	topicColumns  []string
	insertQuery   string
	insertColumns []string

	// topicCache maps lowercased titles to ids for the run's duration.
	topicCache map[string]int
}

// New builds an Importer, discovering schema capabilities once.
func New(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) *Importer {
	log = log.With().Str("component", "importer").Logger()
	caps := DiscoverCapabilities(ctx, pool, log)
	return newWithCapabilities(pool, caps, log)
}

func newWithCapabilities(pool *pgxpool.Pool, caps SchemaCapabilities, log zerolog.Logger) *Importer {
	topicQuery, topicColumns := buildTopicInsert(caps.Topics)
	insertQuery, insertColumns := buildQuestionInsert(caps.Questions)

	return &Importer{
		pool:          pool,
		caps:          caps,
		log:           log,
		topicQuery:    topicQuery,
		topicColumns:  topicColumns,
		insertQuery:   insertQuery,
		insertColumns: insertColumns,
		topicCache:    make(map[string]int),
	}
}

// ImportCorpus inserts every record, continuing past single-record failures.
// Only a wholesale inability to reach the store returns an error.
func (im *Importer) ImportCorpus(ctx context.Context, records []corpus.QuestionRecord) (Report, error) {
	var report Report

	for _, rec := range records {
		inserted, err := im.importOne(ctx, rec)
		switch {
		case err != nil:
			report.Failed++
			im.log.Warn().Err(err).Str("question", truncate(rec.Question, 60)).Msg("record import failed, continuing")
		case inserted:
			report.Inserted++
		default:
			report.Skipped++
		}
	}

	im.log.Info().
		Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("corpus import finished")

	return report, nil
}

func (im *Importer) importOne(ctx context.Context, rec corpus.QuestionRecord) (bool, error) {
	topicID, err := im.resolveTopic(ctx, rec)
	if err != nil {
		return false, fmt.Errorf("resolve topic: %w", err)
	}

	// Duplicate check: identical question text under the same topic means
	// this record was imported before.
	var existingID int
	err = im.pool.QueryRow(ctx,
		`SELECT id FROM questions WHERE question = $1 AND topic_id = $2 LIMIT 1`,
		rec.Question, topicID,
	).Scan(&existingID)
	if err == nil {
		return false, nil
	}
	if err != pgx.ErrNoRows {
		return false, fmt.Errorf("duplicate check: %w", err)
	}

	values, err := im.questionValues(topicID, rec)
	if err != nil {
		return false, err
	}
	if _, err := im.pool.Exec(ctx, im.insertQuery, values...); err != nil {
		return false, fmt.Errorf("insert question: %w", err)
	}
	return true, nil
}

// resolveTopic finds or creates the topic for a record. Lookup is
// case-insensitive on title; the record's topic falls back to its subject,
// then to "General".
func (im *Importer) resolveTopic(ctx context.Context, rec corpus.QuestionRecord) (int, error) {
	title := strings.TrimSpace(rec.Topic)
	if title == "" {
		title = strings.TrimSpace(rec.Subject)
	}
	if title == "" {
		title = "General"
	}

	key := strings.ToLower(title)
	if id, ok := im.topicCache[key]; ok {
		return id, nil
	}

	var id int
	err := im.pool.QueryRow(ctx,
		`SELECT id FROM topics WHERE lower(title) = lower($1) LIMIT 1`, title,
	).Scan(&id)
	if err == nil {
		im.topicCache[key] = id
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}

	values := im.topicValues(title, rec)
	if err := im.pool.QueryRow(ctx, im.topicQuery, values...).Scan(&id); err != nil {
		return 0, err
	}
	im.topicCache[key] = id
	return id, nil
}

func (im *Importer) topicValues(title string, rec corpus.QuestionRecord) []any {
	values := make([]any, 0, len(im.topicColumns))
	for _, col := range im.topicColumns {
		switch col {
		case "title":
			values = append(values, title)
		case "category":
			category := strings.TrimSpace(rec.Subject)
			if category == "" {
				category = "General"
			}
			values = append(values, category)
		case "description":
			values = append(values, nil)
		}
	}
	return values
}

func (im *Importer) questionValues(topicID int, rec corpus.QuestionRecord) ([]any, error) {
	qType := string(rec.Type)
	if qType == "" {
		if len(rec.Options) > 0 {
			qType = string(corpus.TypeMCQ)
		} else {
			qType = string(corpus.TypeClinical)
		}
	}
	difficulty := rec.Difficulty
	if difficulty == "" {
		difficulty = corpus.DifficultyMedium
	}

	options, err := json.Marshal(rec.Options)
	if err != nil {
		return nil, fmt.Errorf("serialize options: %w", err)
	}
	if rec.Options == nil {
		options = []byte("{}")
	}

	values := make([]any, 0, len(im.insertColumns))
	for _, col := range im.insertColumns {
		switch col {
		case "topic_id":
			values = append(values, topicID)
		case "type":
			values = append(values, qType)
		case "difficulty":
			values = append(values, difficulty)
		case "question":
			values = append(values, rec.Question)
		case "options":
			values = append(values, options)
		case "correct_answer":
			values = append(values, nullable(rec.CorrectAnswer))
		case "explanation":
			values = append(values, nullable(rec.Explanation))
		case "is_active":
			values = append(values, true)
		}
	}
	return values, nil
}

// buildTopicInsert assembles the topics insert from the confirmed columns.
// Returns the statement and the ordered column list its values must follow.
func buildTopicInsert(caps TopicColumns) (string, []string) {
	columns := []string{"title"}
	if caps.Category {
		columns = append(columns, "category")
	}
	if caps.Description {
		columns = append(columns, "description")
	}
	return fmt.Sprintf(
		"INSERT INTO topics (%s) VALUES (%s) RETURNING id",
		strings.Join(columns, ", "), placeholders(len(columns)),
	), columns
}

// buildQuestionInsert assembles the questions insert from the confirmed
// columns, topic_id first.
func buildQuestionInsert(caps QuestionColumns) (string, []string) {
	columns := []string{"topic_id"}
	if caps.Type {
		columns = append(columns, "type")
	}
	if caps.Difficulty {
		columns = append(columns, "difficulty")
	}
	if caps.Question {
		columns = append(columns, "question")
	}
	if caps.Options {
		columns = append(columns, "options")
	}
	if caps.CorrectAnswer {
		columns = append(columns, "correct_answer")
	}
	if caps.Explanation {
		columns = append(columns, "explanation")
	}
	if caps.IsActive {
		columns = append(columns, "is_active")
	}
	return fmt.Sprintf(
		"INSERT INTO questions (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders(len(columns)),
	), columns
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

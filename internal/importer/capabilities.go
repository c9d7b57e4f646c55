package importer

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// SchemaCapabilities is the explicit descriptor of which optional columns the
// destination schema actually has. It is populated by one introspection pass
// per run; every dynamic statement is derived from this struct, never from
// per-row introspection, so the capability assumptions stay auditable.
type SchemaCapabilities struct {
	Topics    TopicColumns
	Questions QuestionColumns
}

// TopicColumns enumerates the optional columns of the topics table.
// Title always exists; it is the lookup key.
type TopicColumns struct {
	Category    bool
	Description bool
}

// QuestionColumns enumerates the optional columns of the questions table.
// topic_id always exists.
type QuestionColumns struct {
	Type          bool
	Difficulty    bool
	Question      bool
	Options       bool
	CorrectAnswer bool
	Explanation   bool
	IsActive      bool
}

// defaultCapabilities is the conservative fallback when introspection is not
// possible: only the columns every deployed schema variant has.
func defaultCapabilities() SchemaCapabilities {
	return SchemaCapabilities{
		Questions: QuestionColumns{Question: true, Options: true},
	}
}

// DiscoverCapabilities introspects information_schema once and maps the
// result onto the descriptor. Introspection failures degrade to the
// conservative defaults with a warning; they never abort a run.
func DiscoverCapabilities(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) SchemaCapabilities {
	caps := defaultCapabilities()

	topicCols, err := tableColumns(ctx, pool, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("topics introspection failed, assuming minimal schema")
	} else {
		caps.Topics = TopicColumns{
			Category:    topicCols["category"],
			Description: topicCols["description"],
		}
	}

	questionCols, err := tableColumns(ctx, pool, "questions")
	if err != nil || len(questionCols) == 0 {
		// An absent table yields zero rows rather than an error; either way
		// the minimal defaults stand.
		log.Warn().Err(err).Msg("questions introspection failed, assuming minimal schema")
	} else {
		caps.Questions = QuestionColumns{
			Type:          questionCols["type"],
			Difficulty:    questionCols["difficulty"],
			Question:      questionCols["question"],
			Options:       questionCols["options"],
			CorrectAnswer: questionCols["correct_answer"],
			Explanation:   questionCols["explanation"],
			IsActive:      questionCols["is_active"],
		}
	}

	return caps
}

func tableColumns(ctx context.Context, pool *pgxpool.Pool, table string) (map[string]bool, error) {
	rows, err := pool.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_name = $1`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

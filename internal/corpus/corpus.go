// Package corpus loads and merges every available question source into one
// immutable, queryable snapshot.
//
// The snapshot starts from a built-in fallback set and concatenates each
// embedded source, in declaration order, that parsed successfully. A source
// that is missing or malformed contributes zero records; loading never fails.
// The resulting order is the snapshot's stable iteration order.
package corpus

import (
	"embed"
	"encoding/json"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed data
var sourceFS embed.FS

// sources lists the external question files in merge order. Files listed here
// may be absent from a build; absence is treated the same as a parse failure.
var sources = []string{
	"anatomy.json",
	"fundamentals.json",
	"med_surg.json",
	"pharmacology.json",
	"reproductive_health.json",
	"community_health.json",
	"mental_health.json",
	"pediatrics.json",
	"ethics_law.json",
	"geriatric_nursing.json",
	"health_economics.json",
	"midwifery.json",
	"nutrition_dietetics.json",
	"primary_health_care.json",
	"research.json",
}

// Snapshot is a process-lifetime view of the merged question corpus. It is
// never mutated after Load returns; rebuild one by calling Load again.
type Snapshot struct {
	records  []QuestionRecord
	fallback []QuestionRecord
}

// Load builds a fresh Snapshot from the fallback set plus every source that
// loads cleanly. Partial failures are logged and absorbed; Load itself never
// fails and the result is never empty.
func Load(log zerolog.Logger) *Snapshot {
	log = log.With().Str("component", "corpus").Logger()

	records := make([]QuestionRecord, 0, len(fallbackSet))
	records = append(records, fallbackSet...)

	seen := make(map[string]bool, len(records))
	for _, q := range records {
		seen[q.ID] = true
	}

	for _, name := range sources {
		loaded, err := loadSource(name, seen)
		if err != nil {
			log.Debug().Err(err).Str("source", name).Msg("question source skipped")
			continue
		}
		records = append(records, loaded...)
	}

	log.Info().Int("questions", len(records)).Msg("question corpus loaded")

	return &Snapshot{records: records, fallback: fallbackSet}
}

// loadSource parses one embedded source file. Individual malformed records
// are dropped; ids that collide with already-merged records are resynthesized
// so the snapshot-wide uniqueness invariant holds.
func loadSource(name string, seen map[string]bool) ([]QuestionRecord, error) {
	data, err := sourceFS.ReadFile("data/" + name)
	if err != nil {
		return nil, err
	}

	var raws []sourceRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	sourceName := strings.TrimSuffix(name, ".json")
	records := make([]QuestionRecord, 0, len(raws))
	for i, raw := range raws {
		q, err := normalize(raw, sourceName, i+1)
		if err != nil {
			continue
		}
		if seen[q.ID] {
			q.ID = sourceName + "-" + q.ID
		}
		seen[q.ID] = true
		records = append(records, q)
	}
	return records, nil
}

// All returns the full merged corpus in stable order.
func (s *Snapshot) All() []QuestionRecord {
	return s.records
}

// Count returns the number of records in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.records)
}

// Fallback returns the built-in fallback set.
func (s *Snapshot) Fallback() []QuestionRecord {
	return s.fallback
}

// ByTopic filters the corpus by a case-insensitive substring match against
// each record's topic (or subject, when the topic is absent).
//
// When the filter matches nothing the fallback set is returned instead of an
// empty list. That substitution is a contract, not an accident: a caller
// asking for a recognized-looking topic must never receive zero questions,
// trading precision for availability.
func (s *Snapshot) ByTopic(topic string) []QuestionRecord {
	if topic == "" {
		return s.records
	}

	needle := strings.ToLower(topic)
	var matched []QuestionRecord
	for _, q := range s.records {
		if strings.Contains(strings.ToLower(q.TopicLabel()), needle) {
			matched = append(matched, q)
		}
	}

	if len(matched) == 0 {
		return s.fallback
	}
	return matched
}

// RandomSample shuffles a copy of the corpus and returns the first
// min(count, Count()) records. Samples are not seeded or reproducible;
// sessions are never replayed, so two calls may differ.
func (s *Snapshot) RandomSample(count int) []QuestionRecord {
	return Sample(s.records, count)
}

// Sample shuffles a copy of records and returns the first
// min(count, len(records)) of them.
func Sample(records []QuestionRecord, count int) []QuestionRecord {
	shuffled := make([]QuestionRecord, len(records))
	copy(shuffled, records)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	if count < 0 {
		count = 0
	}
	return shuffled[:count]
}

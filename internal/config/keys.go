package config

import "fmt"

// KeyBuilder builds the Redis keys and channels for one deployment's
// term. Versioning keys with year+term means a new term never reads the
// previous term's selections.
type KeyBuilder struct {
	Year     string
	TermCode string
}

// NewKeyBuilder creates a KeyBuilder for the configured term.
func NewKeyBuilder(cfg *Config) *KeyBuilder {
	return &KeyBuilder{Year: cfg.CatalogYear, TermCode: cfg.CatalogTermCode}
}

// SelectionKey returns the key holding a planner's selected section ids
// as a JSON array.
func (k *KeyBuilder) SelectionKey(plannerID string) string {
	return fmt.Sprintf("timetable:%s:%s:planner:%s:selected", k.Year, k.TermCode, plannerID)
}

// ScheduleChannel returns the Pub/Sub channel schedule snapshots are
// published on after every selection mutation of the planner.
func (k *KeyBuilder) ScheduleChannel(plannerID string) string {
	return fmt.Sprintf("timetable:%s:%s:planner:%s:schedule", k.Year, k.TermCode, plannerID)
}

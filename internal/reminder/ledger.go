package reminder

import "time"

// Ledger records composite keys that already produced an alert. Entries are
// never removed during the engine's lifetime; a changed due time or a new
// calendar day yields a fresh key, which is what re-arms a rule after a
// snooze or across days.
type Ledger map[string]bool

func NewLedger() Ledger {
	return make(Ledger)
}

func (l Ledger) Fired(key string) bool {
	return l[key]
}

func (l Ledger) MarkFired(key string) {
	l[key] = true
}

func (l Ledger) Len() int {
	return len(l)
}

// taskKey discriminates a task rule by its due instant, so rescheduling
// produces a new cycle.
func taskKey(taskID string, ruleType RuleType, due time.Time) string {
	return taskID + "|" + string(ruleType) + "|" + due.UTC().Format(time.RFC3339)
}

// habitKey discriminates a habit reminder by calendar day.
func habitKey(habitID, day string) string {
	return habitID + "|" + day
}

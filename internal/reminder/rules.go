package reminder

import (
	"fmt"
	"math"
	"time"

	"github.com/focusflow-app/focusflow/internal/model"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

type RuleType string

const (
	RuleNow        RuleType = "now"
	RuleFifteenMin RuleType = "fifteen_min"
	RuleHourBefore RuleType = "hour_before"
	RuleCustom     RuleType = "custom"
	RuleDayBefore  RuleType = "day_before"
)

// rule is one trigger window for a task. The window is half-open:
// afterMin < diffMinutes <= beforeMin, a 5-minute band sized to the poll
// granularity so a tick cannot straddle past it unnoticed.
type rule struct {
	Type      RuleType
	Label     string
	Severity  Severity
	BeforeMin int
	AfterMin  int
}

func (r rule) contains(diffMin int) bool {
	return diffMin > r.AfterMin && diffMin <= r.BeforeMin
}

// candidateRules returns the task's trigger rules in fixed priority order:
// immediacy first, then the tighter windows before the looser ones. The
// evaluator takes the first rule whose window contains diffMinutes and whose
// composite key has not fired.
func candidateRules(t model.Task) []rule {
	out := make([]rule, 0, 5)
	out = append(out, rule{Type: RuleNow, Label: "Due now!", Severity: SeverityDanger, BeforeMin: 0, AfterMin: -5})
	if t.Reminders.FifteenMinBefore {
		out = append(out, rule{Type: RuleFifteenMin, Label: "15 minutes left", Severity: SeverityDanger, BeforeMin: 15, AfterMin: 10})
	}
	if t.Reminders.HourBefore {
		out = append(out, rule{Type: RuleHourBefore, Label: "One hour left", Severity: SeverityWarning, BeforeMin: 60, AfterMin: 55})
	}
	if t.Reminders.Custom != nil {
		c := *t.Reminders.Custom
		n := c.Minutes()
		out = append(out, rule{
			Type:      RuleCustom,
			Label:     fmt.Sprintf("%d %s before", c.Value, c.Unit),
			Severity:  SeverityWarning,
			BeforeMin: n,
			AfterMin:  n - 5,
		})
	}
	if t.Reminders.DayBefore {
		out = append(out, rule{Type: RuleDayBefore, Label: "Due tomorrow", Severity: SeverityInfo, BeforeMin: 1440, AfterMin: 1430})
	}
	return out
}

// diffMinutes rounds the distance to the due time to whole minutes, with
// .5 ties rounding toward positive infinity.
func diffMinutes(due, now time.Time) int {
	mins := float64(due.Sub(now)) / float64(time.Minute)
	return int(math.Floor(mins + 0.5))
}

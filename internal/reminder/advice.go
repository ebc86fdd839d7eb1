package reminder

import "github.com/focusflow-app/focusflow/internal/model"

// UrgentPrefix marks advice for tasks in the highest priority tier.
const UrgentPrefix = "URGENT: "

// Advice returns the focus tip shown with an alert. Urgent tasks get a
// directive prefix and suffix around the rule's base advice.
func Advice(t model.Task, ruleType RuleType) string {
	var advice string
	switch ruleType {
	case RuleDayBefore:
		advice = "Preparing materials today lowers tomorrow's cognitive load."
	case RuleHourBefore:
		advice = "Time to close distractions. Drink some water and start settling in."
	case RuleFifteenMin:
		advice = "Transition time! Open everything you need. Full focus incoming."
	case RuleCustom:
		advice = "This is the custom reminder you set. Get ready accordingly."
	default:
		advice = "Don't think about the whole task, only the first step. Start now!"
	}
	if t.Priority == model.PriorityUrgent {
		advice = UrgentPrefix + advice + " Act decisively, no room for stalling!"
	}
	return advice
}

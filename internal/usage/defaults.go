package usage

import "time"

const (
	defaultPlan  = "Starter"
	defaultLimit = 50

	// Quota periods roll over every 30 days.
	periodLength = 30 * 24 * time.Hour
)

func defaultUsage() Usage {
	return Usage{
		Plan:     defaultPlan,
		Limit:    defaultLimit,
		Used:     0,
		ResetsAt: time.Now().UTC().Add(periodLength),
	}
}

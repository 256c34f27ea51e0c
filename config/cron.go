package config

import "strings"

// CronSchedules maps built-in job names to their default schedule.
// CRON_<NAME> in the environment overrides an entry.
var CronSchedules = map[string]string{
	"overduepurchaseorders": "@hourly",
}

// CronSchedule returns the effective schedule for a built-in job.
func CronSchedule(name string) string {
	return GetEnv("CRON_"+strings.ToUpper(name), CronSchedules[name])
}

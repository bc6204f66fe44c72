package models

// Config holds everything a run needs. It is built once by the CLI
// from flags, environment variables, and an optional config file, so
// no component reaches into ambient process state on its own.
type Config struct {
	// AWS regions to scan, in order.
	Regions []string

	// Slack delivery settings.
	SlackToken   string
	SlackChannel string

	// BestEffort controls delivery failure handling: false aborts
	// remaining sends on the first error, true keeps going and
	// reports the accumulated errors at the end.
	BestEffort bool

	// DryRun prints the scan result as a table instead of posting
	// to Slack.
	DryRun bool
}

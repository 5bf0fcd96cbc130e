package redisbus

// Config holds the command bus channels
type Config struct {
	// CommandChannel carries console lines to execute
	CommandChannel string
	// ReportChannel receives every report as JSON
	ReportChannel string
	// ReplyChannel receives the outcome of each command; empty disables replies
	ReplyChannel string
}

// DefaultConfig returns the default channel names
func DefaultConfig() Config {
	return Config{
		CommandChannel: "forceteam:commands",
		ReportChannel:  "forceteam:reports",
		ReplyChannel:   "forceteam:replies",
	}
}

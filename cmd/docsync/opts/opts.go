// Package opts carries the flag values shared by every subcommand.
package opts

// 🔧 RootOpts holds the persistent flag values
type RootOpts struct {
	// ConfigPath is the configuration file path
	ConfigPath string
	// DryRun suppresses all filesystem mutation while keeping decision
	// logic and logging identical
	DryRun bool
	// Debug enables debug logging
	Debug bool
}

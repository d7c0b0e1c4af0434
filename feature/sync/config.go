package sync

// Config holds configuration for the fleet sync feature.
type Config struct {
	// ArchiveEnabled turns on best-effort archiving of raw sync batches
	// to object storage.
	ArchiveEnabled bool `mapstructure:"archive_enabled" default:"false"`
	// SweepSchedule is the cron expression for the stale-agent sweeper.
	// Empty disables sweeping.
	SweepSchedule string `mapstructure:"sweep_schedule" default:"@every 5m"`
	// StaleAfterMinutes is how long an agent may stay silent before the
	// sweeper marks it unknown.
	StaleAfterMinutes int `mapstructure:"stale_after_minutes" default:"15"`
}

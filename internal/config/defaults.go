// Package config provides configuration loading and defaults for devpulse.
package config

// DefaultConfigDir is the default location for devpulse configuration.
const DefaultConfigDir = "~/.config/devpulse"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "devpulse.db"

// DefaultWindowDays is the default trailing window for burnout
// assessments.
const DefaultWindowDays = 30

// DefaultSyncWorkers is how many calendar days are aggregated
// concurrently during a sync.
const DefaultSyncWorkers = 4

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

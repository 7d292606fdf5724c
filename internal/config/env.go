package config

import (
	"os"
	"strconv"
)

// Environment variables recognized as overrides. The prefix convention
// follows the distribution name; values here win over the settings file.
const (
	EnvEncoding      = "DOOM_ENCODING"
	EnvHistoryLength = "DOOM_HISTORY_LENGTH"
	EnvGCPercent     = "DOOM_GC_PERCENT"
	EnvLogLevel      = "DOOM_LOG_LEVEL"
	EnvBackupDir     = "DOOM_BACKUP_DIR"
)

// applyEnv overlays recognized environment variables onto s. Unset
// variables leave the current value alone; unparseable numeric values
// are ignored rather than failing the boot.
func applyEnv(s *Settings) {
	if v, ok := os.LookupEnv(EnvEncoding); ok {
		s.Encoding = v
	}
	if v, ok := os.LookupEnv(EnvHistoryLength); ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.HistoryLength = n
		}
	}
	if v, ok := os.LookupEnv(EnvGCPercent); ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.GCPercent = n
		}
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		s.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvBackupDir); ok {
		s.Backup.Dir = v
	}
}

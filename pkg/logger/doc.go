// Package logger provides structured logging for srer.
//
// It wraps zerolog behind a small Logger interface so pipeline components can
// be handed a logger explicitly (or fall back to the global one) and tests can
// swap in a TestLogger that records every message.
//
//	logger.Initialize(&cfg.Logging)
//	logger.WithField("station_id", "101").Info("Fetching station page")
//	logger.GetLogger().WarnWithFields("Skipping photo", map[string]interface{}{
//	    "reason": "empty image reference",
//	})
//
// Console output is written to stderr; when a log file is configured every
// entry is also appended to it.
package logger

package logger

import (
	"time"
)

// LogRequest logs the completion of an upstream HTTP request
func LogRequest(log Logger, method, url string, statusCode int, duration time.Duration) {
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": statusCode,
		"duration":    duration,
	}

	switch {
	case statusCode >= 200 && statusCode < 300:
		log.DebugWithFields("HTTP request completed", fields)
	case statusCode >= 400 && statusCode < 500:
		log.WarnWithFields("HTTP request client error", fields)
	default:
		log.ErrorWithFields("HTTP request server error", fields)
	}
}

// LogComponentStart logs when a pipeline component starts
func LogComponentStart(log Logger, component string, config map[string]interface{}) {
	l := log.WithField("component", component)
	if len(config) > 0 {
		l = l.WithFields(config)
	}
	l.Info("Component started")
}

// LogComponentStop logs when a pipeline component finishes
func LogComponentStop(log Logger, component string, summary map[string]interface{}) {
	log.WithField("component", component).InfoWithFields("Component finished", summary)
}

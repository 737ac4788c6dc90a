// Package logger provides structured logging for the schoolauth service
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("store")
//	log.Info("connected", logger.Fields("database", "schoolManagement"))
package logger

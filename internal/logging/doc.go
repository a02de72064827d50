// Package logging sets up the zerolog logger for one letsyolo invocation.
//
// The CLI builds a root Logger from --log-level (or the log_level setting)
// and hands each package a Sub logger tagged with its subsystem. Packages
// constructed without a logger fall back to Nop, so library code never has to
// check for nil before logging.
package logging

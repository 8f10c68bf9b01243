// Package log provides simple leveled logging for bigip-sd.
//
// This package implements a lightweight logging system with colored output
// and support for different log levels: DEBUG, INFO, WARN, and ERROR.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Skipped entries and other recoverable problems
//   - ERROR: Error messages for failures
//
// # Example Usage
//
//	log.Infof("Read %d URLs from %s", len(urls), path)
//	log.Warnf("Failed to parse URL %q, skipping: %v", line, err)
//
// Enabling verbose mode for debug output:
//
//	log.SetVerbose(true)
//	log.Debugf("Resolved %s to %v", host, addrs)
//
// Output control:
//
//	log.SetForceStdErr(true) // stdout is reserved for the exported targets
//
// Global state is guarded by a mutex, so the functions are safe to call from
// several goroutines.
package log

// Package utils provides small helpers shared across bigip-sd.
//
//   - Path utilities: resolve paths relative to the configuration directory
//   - File utilities: closing with a logged warning, atomic writes
//
// Path resolution:
//
//	out := utils.GetAbsolutePath("targets/bigip.json", "/etc/bigip-sd")
//	// Returns: /etc/bigip-sd/targets/bigip.json
package utils

// Package export builds and writes the service-discovery document.
//
// The document is always a two-element list: the matched targets with their
// label set first, then the unmatched targets with theirs. It can be encoded as
// JSON or YAML, both of which Prometheus file_sd accepts.
//
//	records := export.Build(targets, export.NewLabels(map[string]string{"location": "BigIP"}), export.NewLabels(nil))
//	data, err := export.Encode(records, export.FormatJSON)
//	changed, err := export.WriteFile("/etc/prometheus/sd/bigip.json", data)
package export

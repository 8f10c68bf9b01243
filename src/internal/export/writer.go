package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/valyala/fasttemplate"

	"github.com/maksimkurb/bigip-sd/src/internal/diagnostics"
	"github.com/maksimkurb/bigip-sd/src/internal/errors"
	"github.com/maksimkurb/bigip-sd/src/internal/hashing"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
	"github.com/maksimkurb/bigip-sd/src/internal/utils"
)

// OutputPath expands placeholders in an output path template.
// Supported placeholders: {{format}}.
func OutputPath(template string, format Format) (string, error) {
	t, err := fasttemplate.NewTemplate(template, "{{", "}}")
	if err != nil {
		return "", errors.NewValidationError("invalid output path template '"+template+"'", err)
	}

	path, err := t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		switch tag {
		case "format":
			return w.Write([]byte(format))
		default:
			return 0, fmt.Errorf("unknown placeholder {{%s}}", tag)
		}
	})
	if err != nil {
		return "", errors.NewValidationError("invalid output path template '"+template+"'", err)
	}
	return path, nil
}

// WriteFile atomically replaces the file at path with data. The write is
// skipped when the file already holds identical content.
func WriteFile(path string, data []byte) (bool, error) {
	newSum, err := hashing.ChecksumBytes(data)
	if err != nil {
		return false, errors.NewInternalError("failed to checksum export", err)
	}

	if oldSum, found, err := hashing.ChecksumFile(path); err != nil {
		log.Debugf("Failed to checksum '%s', assuming it's changed: %v", path, err)
	} else if found && oldSum == newSum {
		log.Infof("File '%s' is not changed, skipping write to disk", path)
		return false, nil
	}

	if err := utils.WriteFileAtomic(path, data, 0644); err != nil {
		return false, errors.NewExportError("failed to write '"+path+"'", err)
	}
	log.Infof("Written '%s' (md5 %s)", path, newSum)
	return true, nil
}

// WriteDiagnostics writes record as TOML to path.
func WriteDiagnostics(path string, record diagnostics.Record) error {
	var buf bytes.Buffer
	if err := record.WriteTOML(&buf); err != nil {
		return errors.NewExportError("failed to encode diagnostics", err)
	}
	_, err := WriteFile(path, buf.Bytes())
	return err
}

package lists

import (
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/maksimkurb/bigip-sd/src/internal/diagnostics"
	"github.com/maksimkurb/bigip-sd/src/internal/errors"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

var (
	ErrEmptyLine     = stderrors.New("empty line")
	ErrMissingScheme = stderrors.New("relative URL without a scheme")
)

// URLList is the result of loading a URL list file.
type URLList struct {
	Source      string
	URLs        []*url.URL
	Diagnostics diagnostics.Record
}

// ParseURL parses a single line as an absolute URL.
// Surrounding whitespace is ignored; a scheme is required.
func ParseURL(line string) (*url.URL, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errors.NewParseError("invalid URL", ErrEmptyLine)
	}

	u, err := url.Parse(line)
	if err != nil {
		return nil, errors.NewParseError("invalid URL", err)
	}
	if u.Scheme == "" {
		return nil, errors.NewParseError("invalid URL", ErrMissingScheme)
	}
	return u, nil
}

// LoadURLs reads the URL list at path. Lines that fail to parse are skipped and
// recorded; the returned URLs keep input order.
func LoadURLs(path string) (*URLList, error) {
	list := &URLList{Source: path}

	err := iterateOverFile(path, func(lineNo int, line string) {
		u, err := ParseURL(line)
		if err != nil {
			if stderrors.Is(err, ErrEmptyLine) {
				log.Debugf("Skipping empty line %s:%d", path, lineNo)
			} else {
				log.Warnf("Could not parse URL, skipping: %s:%d %q: %v", path, lineNo, line, err)
			}
			list.Diagnostics.Add(diagnostics.Diagnostic{
				Stage:  diagnostics.StageURL,
				Source: path,
				Line:   lineNo,
				Input:  line,
				Err:    err,
			})
			return
		}
		list.URLs = append(list.URLs, u)
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("Loaded %d URLs from %s, skipped %d lines", len(list.URLs), path, list.Diagnostics.Len())
	return list, nil
}

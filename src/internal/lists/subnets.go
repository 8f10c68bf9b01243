package lists

import (
	stderrors "errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/maksimkurb/bigip-sd/src/internal/diagnostics"
	"github.com/maksimkurb/bigip-sd/src/internal/errors"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

var ErrNotIPv4 = stderrors.New("not an IPv4 network")

// SubnetList is the result of loading a subnet list file.
type SubnetList struct {
	Source      string
	Subnets     []netip.Prefix
	Diagnostics diagnostics.Record
}

// ParseSubnet parses a single line in a.b.c.d/len form.
// Host bits below the prefix length are kept as written.
func ParseSubnet(line string) (netip.Prefix, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return netip.Prefix{}, errors.NewParseError("invalid subnet", ErrEmptyLine)
	}

	prefix, err := netip.ParsePrefix(line)
	if err != nil {
		return netip.Prefix{}, errors.NewParseError("invalid subnet", err)
	}
	if !prefix.Addr().Is4() {
		return netip.Prefix{}, errors.NewParseError("invalid subnet",
			fmt.Errorf("%w: %s", ErrNotIPv4, line))
	}
	return prefix, nil
}

// LoadSubnets reads the subnet list at path. Malformed lines are skipped and
// recorded. Order is preserved and duplicates are kept.
func LoadSubnets(path string) (*SubnetList, error) {
	list := &SubnetList{Source: path}

	err := iterateOverFile(path, func(lineNo int, line string) {
		prefix, err := ParseSubnet(line)
		if err != nil {
			if stderrors.Is(err, ErrEmptyLine) {
				log.Debugf("Skipping empty line %s:%d", path, lineNo)
			} else {
				log.Warnf("Could not parse subnet, skipping: %s:%d %q: %v", path, lineNo, line, err)
			}
			list.Diagnostics.Add(diagnostics.Diagnostic{
				Stage:  diagnostics.StageSubnet,
				Source: path,
				Line:   lineNo,
				Input:  line,
				Err:    err,
			})
			return
		}
		list.Subnets = append(list.Subnets, prefix)
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("Loaded %d subnets from %s, skipped %d lines", len(list.Subnets), path, list.Diagnostics.Len())
	return list, nil
}

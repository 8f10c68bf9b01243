package lists

import (
	"bufio"
	"os"

	"github.com/maksimkurb/bigip-sd/src/internal/errors"
	"github.com/maksimkurb/bigip-sd/src/internal/utils"
)

const maxLineLength = 1024 * 1024

// iterateOverFile calls iterateFn for every line of the file at path with its
// 1-based line number. Open and read failures are returned as input errors.
func iterateOverFile(path string, iterateFn func(lineNo int, line string)) error {
	listFile, err := os.Open(path)
	if err != nil {
		return errors.NewInputError("failed to open list file '"+path+"'", err)
	}
	defer utils.CloseOrWarn(listFile)

	scanner := bufio.NewScanner(listFile)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		iterateFn(lineNo, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return errors.NewInputError("failed to read list file '"+path+"'", err)
	}
	return nil
}

// Package cheader packs binary blobs into C headers for firmware builds.
package cheader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// DefaultColumns is the number of bytes written per line.
const DefaultColumns = 12

// ErrNoModel is returned when no file matches the model pattern.
var ErrNoModel = errors.New("no model file found")

// FindModel returns the first file, in lexical order, matching pattern.
func FindModel(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: pattern %q", ErrNoModel, pattern)
	}

	sort.Strings(matches)
	return matches[0], nil
}

// Identifier turns name into a valid C identifier. Characters outside
// [A-Za-z0-9_] become underscores and a leading digit gets an underscore
// prefix.
func Identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	id := b.String()
	if id == "" {
		return "_"
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	return id
}

// Encode writes data as an unsigned char array named name followed by a
// name_len constant, wrapped in an include guard. A newline follows every
// columns-th byte; columns <= 0 selects DefaultColumns.
func Encode(w io.Writer, name string, data []byte, columns int) error {
	if columns <= 0 {
		columns = DefaultColumns
	}

	id := Identifier(name)
	guard := strings.ToUpper(id) + "_H"

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#ifndef %s\n", guard)
	fmt.Fprintf(bw, "#define %s\n\n", guard)
	fmt.Fprintf(bw, "unsigned char %s[] = {\n", id)

	for i, b := range data {
		fmt.Fprintf(bw, "0x%02x, ", b)
		if (i+1)%columns == 0 {
			bw.WriteByte('\n')
		}
	}

	fmt.Fprintf(bw, "};\n\nunsigned int %s_len = %d;\n", id, len(data))
	bw.WriteString("#endif\n")

	return bw.Flush()
}

package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zerosign/envit/internal/config"
	"github.com/zerosign/envit/internal/errors"
	"github.com/zerosign/envit/internal/models"
)

// maxLineBytes bounds a single input line; the bufio default of 64KiB is too
// small for values carrying large blobs.
const maxLineBytes = 1024 * 1024

// Read scans env-style lines from r and returns the pair stream sorted per
// models.SortPairs, ready for the assembler.
//
// Blank lines and lines starting with the comment prefix are skipped.
// A line must split into exactly key and value on the key/value separator;
// lines with no separator or with more than one are dropped silently, as is
// a line whose key is blank or contains empty path segments. Keys and values
// are trimmed, path segment case is preserved.
func Read(r io.Reader, opts config.Options) ([]models.Pair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var pairs []models.Pair
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, opts.CommentPrefix) {
			continue
		}

		words := strings.Split(line, opts.KeyValueSep)
		if len(words) != 2 {
			continue
		}
		key := strings.TrimSpace(words[0])
		value := strings.TrimSpace(words[1])
		if key == "" {
			continue
		}

		path := models.Path(strings.Split(key, opts.FieldSep))
		if hasEmptySegment(path) {
			continue
		}

		pairs = append(pairs, models.Pair{Path: path, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewReadError("failed to read input", err)
	}

	models.SortPairs(pairs)
	return pairs, nil
}

func hasEmptySegment(path models.Path) bool {
	for _, segment := range path {
		if segment == "" {
			return true
		}
	}
	return false
}

// ReadString reads pairs from an in-memory string.
func ReadString(raw string, opts config.Options) ([]models.Pair, error) {
	return Read(strings.NewReader(raw), opts)
}

// ReadFile reads pairs from a file path.
func ReadFile(filePath string, opts config.Options) ([]models.Pair, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewReadError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewReadError(
				fmt.Sprintf("file %q not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewReadError(
			fmt.Sprintf("failed to open file %q", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	return Read(file, opts)
}

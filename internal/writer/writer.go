package writer

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zerosign/envit/internal/config"
	"github.com/zerosign/envit/internal/errors"
	"github.com/zerosign/envit/internal/models"
	"github.com/zerosign/envit/internal/parser"
)

// Writer re-serializes an assembled tree into the flat key/value line
// format. Nested objects are flattened with the field separator, arrays are
// rendered in bracket syntax, and string quoting follows the configured
// quote mode. Output is deterministic: keys are emitted in sorted order.
type Writer struct {
	opts config.Options
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts config.Options) *Writer {
	return &Writer{opts: opts}
}

// Render serializes the tree into a string.
func (w *Writer) Render(root *models.Object) (string, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write serializes the tree to out, one key/value line per leaf.
func (w *Writer) Write(out io.Writer, root *models.Object) error {
	if root == nil {
		return errors.NewWriteError("tree is nil", errors.ErrEmptyInput)
	}
	var buf bytes.Buffer
	if err := w.writeObject(&buf, nil, root); err != nil {
		return err
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return errors.NewWriteError("failed to write serialized tree", err)
	}
	return nil
}

func (w *Writer) writeObject(buf *bytes.Buffer, prefix models.Path, obj *models.Object) error {
	keys := make([]string, 0, len(obj.Items))
	for key := range obj.Items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := append(prefix.Clone(), key)
		switch v := obj.Items[key].(type) {
		case *models.Object:
			if err := w.writeObject(buf, path, v); err != nil {
				return err
			}
		case models.Array:
			w.writeLine(buf, path, w.renderArray(v))
		case models.Scalar:
			w.writeLine(buf, path, w.renderLiteral(v.Literal, false))
		default:
			return errors.NewWriteError(
				fmt.Sprintf("unexpected value kind at %s", path),
				errors.ErrKindMismatch,
			)
		}
	}
	return nil
}

func (w *Writer) writeLine(buf *bytes.Buffer, path models.Path, value string) {
	buf.WriteString(path.Join(w.opts.FieldSep))
	buf.WriteString(w.opts.KeyValueSep)
	buf.WriteString(value)
	buf.WriteByte('\n')
}

func (w *Writer) renderArray(arr models.Array) string {
	parts := make([]string, len(arr.Elems))
	for i, elem := range arr.Elems {
		parts[i] = w.renderLiteral(elem, true)
	}
	return "[" + strings.Join(parts, w.opts.ArraySep) + "]"
}

// renderLiteral renders one literal. Strings are quoted per the quote mode;
// inArray additionally forces quoting of strings that contain the array
// separator, so a re-read never splits them.
func (w *Writer) renderLiteral(lit models.Literal, inArray bool) string {
	text := lit.Text()
	if lit.Kind != models.StringLiteral {
		return text
	}
	switch w.opts.Quote {
	case config.QuoteAlways:
		return quote(text)
	case config.QuoteNever:
		return text
	default:
		if w.needsQuoting(text, inArray) {
			return quote(text)
		}
		return text
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote wraps text in quotes, backslash-escaping interior quotes and
// backslashes so the quote-aware read scan reproduces the payload exactly.
func quote(text string) string {
	return `"` + escaper.Replace(text) + `"`
}

// needsQuoting reports whether an unquoted string payload would come back as
// something other than the same string when re-read and re-parsed.
func (w *Writer) needsQuoting(text string, inArray bool) bool {
	if text == "" {
		return true
	}
	if strings.TrimSpace(text) != text {
		return true
	}
	if strings.ContainsAny(text, `"\`) {
		return true
	}
	if parser.IsArray(text) {
		return true
	}
	if inArray && strings.Contains(text, w.opts.ArraySep) {
		return true
	}
	lit, err := parser.ParseLiteral(text)
	if err != nil {
		return true
	}
	return lit.Kind != models.StringLiteral
}

package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zerosign/envit/internal/errors"
	"github.com/zerosign/envit/internal/models"
)

// Key looks up a child of an object node by segment name.
func Key(v models.Value, name string) (models.Value, error) {
	obj, ok := v.(*models.Object)
	if !ok {
		return nil, errors.NewQueryError(
			fmt.Sprintf("cannot look up key %q in a %s value", name, v.Kind()),
			errors.ErrKindMismatch,
		)
	}
	child, ok := obj.Items[name]
	if !ok {
		return nil, errors.NewQueryError(
			fmt.Sprintf("key %q does not exist", name),
			errors.ErrKeyNotFound,
		)
	}
	return child, nil
}

// Index looks up an element of an array node. The element is returned as a
// scalar value; arrays hold only literals.
func Index(v models.Value, idx int) (models.Value, error) {
	arr, ok := v.(models.Array)
	if !ok {
		return nil, errors.NewQueryError(
			fmt.Sprintf("cannot index [%d] into a %s value", idx, v.Kind()),
			errors.ErrKindMismatch,
		)
	}
	if idx < 0 || idx >= len(arr.Elems) {
		return nil, errors.NewQueryError(
			fmt.Sprintf("index %d is out of range for an array of %d elements", idx, len(arr.Elems)),
			errors.ErrIndexOutOfRange,
		)
	}
	return models.Scalar{Literal: arr.Elems[idx]}, nil
}

// Lookup resolves a dotted query expression against a tree, e.g.
// "database.connection.retries[0]". Each dot-separated step names an object
// key and may carry one or more [idx] suffixes for array indexing.
func Lookup(v models.Value, expr string) (models.Value, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.NewQueryError("query expression is empty", errors.ErrBadQuery)
	}

	current := v
	for _, step := range strings.Split(expr, ".") {
		name, indexes, err := parseStep(step)
		if err != nil {
			return nil, err
		}
		if current, err = Key(current, name); err != nil {
			return nil, err
		}
		for _, idx := range indexes {
			if current, err = Index(current, idx); err != nil {
				return nil, err
			}
		}
	}
	return current, nil
}

// parseStep splits one query step into the key name and its index suffixes.
func parseStep(step string) (string, []int, error) {
	open := strings.IndexByte(step, '[')
	if open < 0 {
		if step == "" {
			return "", nil, errors.NewQueryError("query step is empty", errors.ErrBadQuery)
		}
		return step, nil, nil
	}

	name := step[:open]
	if name == "" {
		return "", nil, errors.NewQueryError(
			fmt.Sprintf("query step %q has no key before the index", step),
			errors.ErrBadQuery,
		)
	}

	var indexes []int
	rest := step[open:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, errors.NewQueryError(
				fmt.Sprintf("unexpected text %q after index in query step", rest),
				errors.ErrBadQuery,
			)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, errors.NewQueryError(
				fmt.Sprintf("unterminated index in query step %q", step),
				errors.ErrBadQuery,
			)
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, errors.NewQueryError(
				fmt.Sprintf("index %q is not a number", rest[1:end]),
				errors.ErrBadQuery,
			)
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, nil
}

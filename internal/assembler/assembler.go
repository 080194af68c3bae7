package assembler

import (
	"fmt"

	"github.com/zerosign/envit/internal/errors"
	"github.com/zerosign/envit/internal/models"
	"github.com/zerosign/envit/internal/parser"
)

// frame is one currently-open ancestor object on the assembly stack. The
// frame at index i holds the object for the path segment at depth i of the
// previously processed pair; it owns its object exclusively until closed,
// at which point the object moves into the parent frame (or the root).
type frame struct {
	name string
	obj  *models.Object
}

// Assemble consumes a sorted pair stream and produces the nested value tree.
// The result is always an object at the root; a stream of single-segment
// pairs yields a flat one-level object.
//
// The pass is a single forward iteration. For each pair the length of the
// common prefix with the previous path decides how many frames to close and
// how many fresh ancestor frames to open, then the parsed value is inserted
// under the leaf segment. Divergence with no shared ancestor is just a
// common prefix of zero; no special case is needed.
//
// Sorting per models.SortPairs is a precondition. An out-of-order pair fails
// with ErrUnsortedInput rather than silently producing a malformed tree, and
// every other failure (malformed payload, duplicate key, type conflict)
// aborts the whole assembly with no partial tree.
func Assemble(pairs []models.Pair) (*models.Object, error) {
	root := models.NewObject()
	var stack []frame
	var prev models.Path

	for _, pair := range pairs {
		if len(pair.Path) == 0 {
			return nil, errors.NewAssembleError("pair has an empty path", nil, errors.ErrEmptyPath)
		}
		if prev != nil && prev.Compare(pair.Path) > 0 {
			return nil, errors.NewAssembleError(
				fmt.Sprintf("pair %s arrived after %s", pair.Path, prev),
				pair.Path,
				errors.ErrUnsortedInput,
			)
		}

		common := prev.CommonPrefixLen(pair.Path)

		// Close every frame deeper than the shared prefix: those branches
		// can receive no further children under a sorted stream.
		for len(stack) > common {
			var err error
			stack, err = closeTop(stack, root)
			if err != nil {
				return nil, err
			}
		}

		// Open a frame for each ancestor of the new leaf that is not open
		// yet, outermost first.
		for depth := len(stack); depth < len(pair.Path)-1; depth++ {
			stack = append(stack, frame{name: pair.Path[depth], obj: models.NewObject()})
		}

		value, err := parser.ParseValue(pair.Value)
		if err != nil {
			return nil, errors.NewAssembleError("value failed to parse", pair.Path, err)
		}

		top := root
		if len(stack) > 0 {
			top = stack[len(stack)-1].obj
		}
		leaf := pair.Path[len(pair.Path)-1]
		if existing, ok := top.Items[leaf]; ok {
			if existing.Kind() == models.ObjectValue {
				return nil, errors.NewAssembleError(
					"path is already bound to an object",
					pair.Path,
					errors.ErrTypeConflict,
				)
			}
			return nil, errors.NewAssembleError(
				"key is bound twice",
				pair.Path,
				errors.ErrDuplicateKey,
			)
		}
		top.Items[leaf] = value

		prev = pair.Path
	}

	// Exhausted stream: seal whatever is still open.
	for len(stack) > 0 {
		var err error
		stack, err = closeTop(stack, root)
		if err != nil {
			return nil, err
		}
	}

	return root, nil
}

// closeTop pops the deepest frame and inserts its completed object into the
// parent frame, or into the root when no parent frame remains. If a sibling
// pair already bound the frame's segment to a scalar in the same parent,
// that is a type conflict; the scalar is never coerced or dropped.
func closeTop(stack []frame, root *models.Object) ([]frame, error) {
	top := stack[len(stack)-1]
	stack = stack[:len(stack)-1]

	parent := root
	if len(stack) > 0 {
		parent = stack[len(stack)-1].obj
	}
	if _, ok := parent.Items[top.name]; ok {
		return nil, errors.NewAssembleError(
			"path is used both as a value and as a parent",
			framePath(stack, top.name),
			errors.ErrTypeConflict,
		)
	}
	parent.Items[top.name] = top.obj
	return stack, nil
}

// framePath rebuilds the absolute path of a frame from the open ancestors
// below it, for error reporting.
func framePath(stack []frame, name string) models.Path {
	path := make(models.Path, 0, len(stack)+1)
	for _, f := range stack {
		path = append(path, f.name)
	}
	return append(path, name)
}

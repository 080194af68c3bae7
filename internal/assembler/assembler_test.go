package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerosign/envit/internal/errors"
	"github.com/zerosign/envit/internal/models"
)

func pair(value string, segments ...string) models.Pair {
	return models.Pair{Path: models.Path(segments), Value: value}
}

func obj(items map[string]models.Value) *models.Object {
	return &models.Object{Items: items}
}

func scalar(lit models.Literal) models.Scalar {
	return models.Scalar{Literal: lit}
}

func TestAssemble_SameParent(t *testing.T) {
	root, err := Assemble([]models.Pair{
		pair("1", "A", "B", "X"),
		pair("2", "A", "B", "Y"),
	})
	require.NoError(t, err)

	want := obj(map[string]models.Value{
		"A": obj(map[string]models.Value{
			"B": obj(map[string]models.Value{
				"X": scalar(models.IntegerOf(1)),
				"Y": scalar(models.IntegerOf(2)),
			}),
		}),
	})
	assert.Equal(t, want, root)
}

func TestAssemble_DivergenceSharedAncestor(t *testing.T) {
	root, err := Assemble([]models.Pair{
		pair("1", "A", "B", "X"),
		pair("2", "A", "C", "Y"),
	})
	require.NoError(t, err)

	want := obj(map[string]models.Value{
		"A": obj(map[string]models.Value{
			"B": obj(map[string]models.Value{"X": scalar(models.IntegerOf(1))}),
			"C": obj(map[string]models.Value{"Y": scalar(models.IntegerOf(2))}),
		}),
	})
	assert.Equal(t, want, root)
}

func TestAssemble_DivergenceNoSharedAncestor(t *testing.T) {
	root, err := Assemble([]models.Pair{
		pair("1", "A", "X"),
		pair("2", "B", "Y"),
	})
	require.NoError(t, err)

	want := obj(map[string]models.Value{
		"A": obj(map[string]models.Value{"X": scalar(models.IntegerOf(1))}),
		"B": obj(map[string]models.Value{"Y": scalar(models.IntegerOf(2))}),
	})
	assert.Equal(t, want, root)
}

func TestAssemble_SingleSegmentPaths(t *testing.T) {
	root, err := Assemble([]models.Pair{
		pair("1", "A"),
		pair("true", "B"),
	})
	require.NoError(t, err)

	want := obj(map[string]models.Value{
		"A": scalar(models.IntegerOf(1)),
		"B": scalar(models.BoolOf(true)),
	})
	assert.Equal(t, want, root)
}

func TestAssemble_DeepDivergence(t *testing.T) {
	// Leaving A.B.C for A.D closes two frames at once; leaving A for E
	// closes the rest back to the root.
	root, err := Assemble([]models.Pair{
		pair("1", "A", "B", "C", "X"),
		pair("2", "A", "D"),
		pair("3", "E"),
	})
	require.NoError(t, err)

	want := obj(map[string]models.Value{
		"A": obj(map[string]models.Value{
			"B": obj(map[string]models.Value{
				"C": obj(map[string]models.Value{"X": scalar(models.IntegerOf(1))}),
			}),
			"D": scalar(models.IntegerOf(2)),
		}),
		"E": scalar(models.IntegerOf(3)),
	})
	assert.Equal(t, want, root)
}

func TestAssemble_ArrayLeaf(t *testing.T) {
	root, err := Assemble([]models.Pair{
		pair("[10,20,30]", "A", "RETRIES"),
	})
	require.NoError(t, err)

	want := obj(map[string]models.Value{
		"A": obj(map[string]models.Value{
			"RETRIES": models.Array{Elems: []models.Literal{
				models.IntegerOf(10), models.IntegerOf(20), models.IntegerOf(30),
			}},
		}),
	})
	assert.Equal(t, want, root)
}

func TestAssemble_Empty(t *testing.T) {
	root, err := Assemble(nil)
	require.NoError(t, err)
	assert.Equal(t, models.NewObject(), root)
}

func TestAssemble_DuplicateKey(t *testing.T) {
	_, err := Assemble([]models.Pair{
		pair("1", "A", "X"),
		pair("2", "A", "X"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDuplicateKey)

	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"A", "X"}, appErr.Path)
}

func TestAssemble_TypeConflict(t *testing.T) {
	// A is bound to a scalar and later used as an ancestor.
	_, err := Assemble([]models.Pair{
		pair("1", "A"),
		pair("2", "A", "B"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTypeConflict)

	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"A"}, appErr.Path)
}

func TestAssemble_TypeConflictDeep(t *testing.T) {
	_, err := Assemble([]models.Pair{
		pair("1", "A", "B"),
		pair("2", "A", "B", "C"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTypeConflict)

	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"A", "B"}, appErr.Path)
}

func TestAssemble_UnsortedInput(t *testing.T) {
	_, err := Assemble([]models.Pair{
		pair("1", "B", "Y"),
		pair("2", "A", "X"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsortedInput)
}

func TestAssemble_EmptyPath(t *testing.T) {
	_, err := Assemble([]models.Pair{
		{Path: nil, Value: "1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyPath)
}

func TestAssemble_ValueErrorAborts(t *testing.T) {
	// The malformed payload aborts the whole assembly; no partial tree.
	root, err := Assemble([]models.Pair{
		pair("1", "A"),
		pair("9223372036854775808", "B"),
	})
	require.Error(t, err)
	assert.Nil(t, root)
	assert.ErrorIs(t, err, errors.ErrNumber)
}

package decode

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/iancoleman/strcase"

	"github.com/zerosign/envit/internal/errors"
	"github.com/zerosign/envit/internal/models"
)

// ToInterface converts a tree value into plain Go values: objects become
// map[string]interface{}, arrays become []interface{}, scalars their
// underlying Go value. This is the shape the decoder and JSON output consume.
func ToInterface(v models.Value) interface{} {
	switch t := v.(type) {
	case models.Scalar:
		return t.Literal.Interface()
	case models.Array:
		out := make([]interface{}, len(t.Elems))
		for i, elem := range t.Elems {
			out[i] = elem.Interface()
		}
		return out
	case *models.Object:
		out := make(map[string]interface{}, len(t.Items))
		for key, child := range t.Items {
			out[key] = ToInterface(child)
		}
		return out
	default:
		return nil
	}
}

// Decode maps an assembled tree onto a caller-provided typed structure.
// Tree keys keep the casing of the input (typically SCREAMING_SNAKE env
// segments); fields match case-insensitively and through their
// ScreamingSnake rendering, so POOL_SIZE binds to PoolSize. Fields can
// override the matched key with an `envit` struct tag.
func Decode(v models.Value, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    out,
		TagName:   "envit",
		MatchName: matchName,
	})
	if err != nil {
		return errors.NewDecodeError("failed to build decoder", err)
	}
	if err := dec.Decode(ToInterface(v)); err != nil {
		return errors.NewDecodeError("value tree does not fit the target structure", err)
	}
	return nil
}

// matchName pairs a tree key with a struct field name.
func matchName(key, fieldName string) bool {
	if strings.EqualFold(key, fieldName) {
		return true
	}
	return key == strcase.ToScreamingSnake(fieldName)
}

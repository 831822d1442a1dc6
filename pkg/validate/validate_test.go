package validate_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/books-service/pkg/validate"
)

var schema = validate.Schema{
	{Name: "name", Type: validate.TypeString, Required: true},
	{Name: "count", Type: validate.TypeInteger, Required: true},
	{Name: "ratio", Type: validate.TypeNumber},
}

type item struct {
	Name  string  `json:"name" validate:"required"`
	Count int     `json:"count" validate:"gte=0"`
	Ratio float64 `json:"ratio"`
}

func TestSchema_Check(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "ok", raw: `{"name":"a","count":1,"ratio":0.5}`},
		{name: "optional omitted", raw: `{"name":"a","count":1}`},
		{name: "optional null", raw: `{"name":"a","count":1,"ratio":null}`},
		{name: "unknown fields are ignored", raw: `{"name":"a","count":1,"extra":true}`},
		{name: "numeric string is not a number", raw: `{"name":"a","count":"322"}`, want: []string{"count: expected number, got string"}},
		{name: "fraction is not an integer", raw: `{"name":"a","count":1.5}`, want: []string{"count: expected integer, got 1.5"}},
		{name: "integral float is not an integer literal", raw: `{"name":"a","count":322.0}`, want: []string{"count: expected integer, got 322.0"}},
		{name: "integer beyond int64", raw: `{"name":"a","count":99999999999999999999}`, want: []string{"count: integer 99999999999999999999 is out of range"}},
		{name: "number is not a string", raw: `{"name":1,"count":1}`, want: []string{"name: expected string, got number"}},
		{name: "required null", raw: `{"name":null,"count":1}`, want: []string{"name: is required"}},
		{name: "all missing", raw: `{}`, want: []string{"name: is required", "count: is required"}},
		{name: "wrong kinds", raw: `{"name":[],"count":{},"ratio":true}`, want: []string{
			"name: expected string, got array",
			"count: expected number, got object",
			"ratio: expected number, got boolean",
		}},
		{name: "not an object", raw: `"str"`, want: []string{"body must be a JSON object"}},
		{name: "null body", raw: `null`, want: []string{"body must be a JSON object"}},
		{name: "broken json", raw: `{"name":`, want: []string{"body must be a JSON object"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got []string
			for _, v := range schema.Check([]byte(tt.raw)) {
				got = append(got, v.String())
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()
	cv := validate.NewCustomValidator()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		var it item
		err := validate.Decode([]byte(`{"name":"a","count":3,"ratio":0.25}`), schema, &it, cv.Validate)
		require.NoError(t, err)
		require.Equal(t, item{Name: "a", Count: 3, Ratio: 0.25}, it)
	})

	t.Run("schema and struct rules are aggregated", func(t *testing.T) {
		t.Parallel()
		var it item
		err := validate.Decode([]byte(`{"name":"","count":"3"}`), schema, &it, cv.Validate)

		var verr *validate.ValidationErrors
		require.True(t, errors.As(err, &verr))
		require.Equal(t, []string{"count: expected number, got string", "name: must not be empty"}, verr.Messages())
	})

	t.Run("struct rule only", func(t *testing.T) {
		t.Parallel()
		var it item
		err := validate.Decode([]byte(`{"name":"a","count":-1}`), schema, &it, cv.Validate)

		var verr *validate.ValidationErrors
		require.True(t, errors.As(err, &verr))
		require.Equal(t, []string{"count: must be at least 0"}, verr.Messages())
		require.EqualError(t, err, "validation failed: count: must be at least 0")
	})

	t.Run("no struct rules", func(t *testing.T) {
		t.Parallel()
		var it item
		require.NoError(t, validate.Decode([]byte(`{"name":"","count":1}`), schema, &it, nil))
	})
}

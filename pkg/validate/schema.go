package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
)

type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
)

type Field struct {
	Name     string
	Type     Type
	Required bool
}

// Schema is a static description of a JSON object payload.
// Types are checked strictly: "322" is never a number.
type Schema []Field

// Violation is a single failed schema or struct rule.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// Check reports every violation of s found in raw, in schema order.
func (s Schema) Check(raw []byte) []Violation {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return []Violation{{Message: "body must be a JSON object"}}
	}

	var out []Violation
	for _, f := range s {
		v, ok := obj[f.Name]
		if !ok || v == nil {
			if f.Required {
				out = append(out, Violation{Field: f.Name, Message: "is required"})
			}
			continue
		}
		if msg := f.check(v); msg != "" {
			out = append(out, Violation{Field: f.Name, Message: msg})
		}
	}
	return out
}

func (f Field) check(v any) string {
	switch f.Type {
	case TypeString:
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("expected string, got %s", jsonType(v))
		}
	case TypeNumber, TypeInteger:
		n, ok := v.(json.Number)
		if !ok {
			return fmt.Sprintf("expected number, got %s", jsonType(v))
		}
		if f.Type == TypeInteger {
			if _, err := n.Int64(); err != nil {
				if _, ok := new(big.Int).SetString(n.String(), 10); ok {
					return fmt.Sprintf("integer %s is out of range", n.String())
				}
				return fmt.Sprintf("expected integer, got %s", n.String())
			}
		}
	}
	return ""
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

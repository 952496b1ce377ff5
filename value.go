package cabinet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind string

// ValueKind constants.
const (
	ValueBool   ValueKind = "bool"
	ValueInt    ValueKind = "int"
	ValueFloat  ValueKind = "float"
	ValueString ValueKind = "string"
	ValueList   ValueKind = "list"
)

// Value is a typed configuration value. The zero Value holds nothing.
//
// Values encode as {"type": kind, "value": payload} so that a list and a
// string containing commas never decode into one another.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
	l    []Value
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

// IntValue returns an integer Value.
func IntValue(i int64) Value { return Value{kind: ValueInt, i: i} }

// FloatValue returns a floating point Value.
func FloatValue(f float64) Value { return Value{kind: ValueFloat, f: f} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: ValueString, s: s} }

// ListValue returns an ordered list Value.
func ListValue(items ...Value) Value {
	l := make([]Value, len(items))
	copy(l, items)
	return Value{kind: ValueList, l: l}
}

// StringsValue returns a list Value holding the given strings.
func StringsValue(items ...string) Value {
	l := make([]Value, len(items))
	for i, s := range items {
		l[i] = StringValue(s)
	}
	return Value{kind: ValueList, l: l}
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsZero reports whether v holds no value.
func (v Value) IsZero() bool { return v.kind == "" }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, error) {
	if v.kind != ValueBool {
		return false, v.mismatch(ValueBool)
	}
	return v.b, nil
}

// AsInt returns the integer held by v.
func (v Value) AsInt() (int64, error) {
	if v.kind != ValueInt {
		return 0, v.mismatch(ValueInt)
	}
	return v.i, nil
}

// AsFloat returns the number held by v. Integers are widened.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case ValueFloat:
		return v.f, nil
	case ValueInt:
		return float64(v.i), nil
	}
	return 0, v.mismatch(ValueFloat)
}

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.kind != ValueString {
		return "", v.mismatch(ValueString)
	}
	return v.s, nil
}

// AsList returns a copy of the items held by v.
func (v Value) AsList() ([]Value, error) {
	if v.kind != ValueList {
		return nil, v.mismatch(ValueList)
	}
	l := make([]Value, len(v.l))
	copy(l, v.l)
	return l, nil
}

// AsStrings returns the items of a list Value as strings.
// Every item must be a string.
func (v Value) AsStrings() ([]string, error) {
	if v.kind != ValueList {
		return nil, v.mismatch(ValueList)
	}
	ss := make([]string, 0, len(v.l))
	for _, item := range v.l {
		s, err := item.AsString()
		if err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}
	return ss, nil
}

func (v Value) mismatch(want ValueKind) error {
	got := string(v.kind)
	if got == "" {
		got = "empty"
	}
	return Errorf(EINVALID, "expected %s value, got %s", want, got)
}

// String returns a human-readable rendering of v.
func (v Value) String() string {
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueString:
		return v.s
	case ValueList:
		parts := make([]string, len(v.l))
		for i, item := range v.l {
			if item.kind == ValueString {
				parts[i] = strconv.Quote(item.s)
			} else {
				parts[i] = item.String()
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// Payload returns v converted to plain Go values: bool, int64, float64,
// string or []any.
func (v Value) Payload() any {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueInt:
		return v.i
	case ValueFloat:
		return v.f
	case ValueString:
		return v.s
	case ValueList:
		items := make([]any, len(v.l))
		for i, item := range v.l {
			items[i] = item.Payload()
		}
		return items
	}
	return nil
}

// ParseValue parses text as a Value of the given kind.
// Lists are written as a JSON array of strings.
func ParseValue(kind ValueKind, text string) (Value, error) {
	switch kind {
	case ValueBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, Errorf(EINVALID, "invalid bool %q", text)
		}
		return BoolValue(b), nil
	case ValueInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, Errorf(EINVALID, "invalid int %q", text)
		}
		return IntValue(i), nil
	case ValueFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, Errorf(EINVALID, "invalid float %q", text)
		}
		return FloatValue(f), nil
	case ValueString:
		return StringValue(text), nil
	case ValueList:
		var items []string
		if err := json.Unmarshal([]byte(text), &items); err != nil {
			return Value{}, Errorf(EINVALID, "invalid list %q: expected a JSON array of strings", text)
		}
		return StringsValue(items...), nil
	}
	return Value{}, Errorf(EINVALID, "unknown value type %q", kind)
}

type taggedValue struct {
	Type  ValueKind       `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.kind {
	case ValueBool:
		payload = v.b
	case ValueInt:
		payload = v.i
	case ValueFloat:
		payload = v.f
	case ValueString:
		payload = v.s
	case ValueList:
		items := v.l
		if items == nil {
			items = []Value{}
		}
		payload = items
	default:
		return []byte("null"), nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(taggedValue{Type: v.kind, Value: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}

	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	if len(tv.Value) == 0 {
		return Errorf(EINVALID, "value of type %q has no payload", tv.Type)
	}

	switch tv.Type {
	case ValueBool:
		var b bool
		if err := json.Unmarshal(tv.Value, &b); err != nil {
			return fmt.Errorf("decode bool value: %w", err)
		}
		*v = BoolValue(b)
	case ValueInt:
		var i int64
		if err := json.Unmarshal(tv.Value, &i); err != nil {
			return fmt.Errorf("decode int value: %w", err)
		}
		*v = IntValue(i)
	case ValueFloat:
		var f float64
		if err := json.Unmarshal(tv.Value, &f); err != nil {
			return fmt.Errorf("decode float value: %w", err)
		}
		*v = FloatValue(f)
	case ValueString:
		var s string
		if err := json.Unmarshal(tv.Value, &s); err != nil {
			return fmt.Errorf("decode string value: %w", err)
		}
		*v = StringValue(s)
	case ValueList:
		var items []Value
		if err := json.Unmarshal(tv.Value, &items); err != nil {
			return fmt.Errorf("decode list value: %w", err)
		}
		*v = ListValue(items...)
	default:
		return Errorf(EINVALID, "unknown value type %q", tv.Type)
	}
	return nil
}

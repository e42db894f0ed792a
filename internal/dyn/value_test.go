package dyn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_WholeNumbersBecomeInt(t *testing.T) {
	v, err := Decode([]byte(`42`))
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)
}

func TestDecode_FractionalNumbersBecomeFloat(t *testing.T) {
	v, err := Decode([]byte(`0.75`))
	require.NoError(t, err)
	assert.Equal(t, Float(0.75), v)
}

func TestDecode_NestedStructure(t *testing.T) {
	v, err := Decode([]byte(`{"path": "a.txt", "opts": {"recursive": true}, "lines": [1, 2]}`))
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, String("a.txt"), obj["path"])
	assert.Equal(t, Object{"recursive": Bool(true)}, obj["opts"])
	assert.Equal(t, Array{Int(1), Int(2)}, obj["lines"])
}

func TestDecode_NullMapsToEmptyString(t *testing.T) {
	v, err := Decode([]byte(`{"maybe": null}`))
	require.NoError(t, err)
	assert.Equal(t, Object{"maybe": String("")}, v)
}

func TestDecodeObject_RejectsNonObject(t *testing.T) {
	_, err := DecodeObject([]byte(`[1, 2, 3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected JSON object")
}

func TestTypeOf_Precedence(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want TypeTag
	}{
		{"bool", Bool(true), TypeBoolean},
		{"int", Int(2), TypeInteger},
		{"float", Float(2.5), TypeNumber},
		{"object", Object{"k": String("v")}, TypeObject},
		{"array", Array{Int(1)}, TypeArray},
		{"string", String("a.txt"), TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.val))
		})
	}
}

func TestFromAny_YAMLShapes(t *testing.T) {
	// yaml.v3 yields int for whole numbers and float64 for fractions.
	v, err := FromAny(map[string]any{
		"count": 3,
		"ratio": 0.5,
		"debug": true,
		"tags":  []any{"a", "b"},
	})
	require.NoError(t, err)

	obj := v.(Object)
	assert.Equal(t, Int(3), obj["count"])
	assert.Equal(t, Float(0.5), obj["ratio"])
	assert.Equal(t, Bool(true), obj["debug"])
	assert.Equal(t, Array{String("a"), String("b")}, obj["tags"])
}

func TestFromAny_WholeFloat64BecomesInt(t *testing.T) {
	v, err := FromAny(float64(7))
	require.NoError(t, err)
	assert.Equal(t, Int(7), v)
}

func TestMarshal_ObjectKeysSorted(t *testing.T) {
	obj := Object{"zeta": Int(1), "alpha": Int(2), "mid": Int(3)}

	data, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mid":3,"zeta":1}`, string(data))
}

func TestMarshal_RoundTrip(t *testing.T) {
	original := Object{
		"path":      String("a.txt"),
		"recursive": Bool(true),
		"depth":     Int(2),
		"weights":   Array{Float(0.25), Float(0.75)},
	}

	data, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := DecodeObject(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	obj := Object{"b": Int(2), "a": String("x")}

	first, err := MarshalCanonical(obj)
	require.NoError(t, err)
	second, err := MarshalCanonical(obj)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, `{"a":"x","b":2}`, string(first))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical(String("a < b && c > d"))
	require.NoError(t, err)
	assert.Equal(t, `"a < b && c > d"`, string(data))
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// "é" as a combining sequence (e + U+0301) normalizes to the precomposed form.
	composed := "café"
	decomposed := "café"

	a, err := MarshalCanonical(String(composed))
	require.NoError(t, err)
	b, err := MarshalCanonical(String(decomposed))
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestToAny_RoundTrip(t *testing.T) {
	obj := Object{"n": Int(1), "xs": Array{Bool(false)}}

	back, err := FromAny(ToAny(obj))
	require.NoError(t, err)
	assert.Equal(t, obj, back)
}

package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	var _ Value = Null{}
	var _ Value = String("test")
	var _ Value = Int(42)
	var _ Value = Float(1.5)
	var _ Value = Bool(true)
	var _ Value = Array{String("a"), Int(1)}
	var _ Value = Object{"key": String("value")}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindAbsent, KindOf(nil))
	assert.Equal(t, KindNull, KindOf(Null{}))
	assert.Equal(t, KindInt, KindOf(Int(1)))
	assert.Equal(t, KindObject, KindOf(Object{}))
	assert.True(t, KindArray.IsComposite())
	assert.False(t, KindString.IsComposite())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"string", KindString},
		{"int", KindInt},
		{"float", KindFloat},
		{"bool", KindBool},
		{"mapping", KindObject},
		{"dict", KindObject},
		{"sequence", KindArray},
		{"list", KindArray},
		{"null", KindNull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKind(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ParseKind("absent")
	assert.False(t, ok)
	_, ok = ParseKind("complex")
	assert.False(t, ok)
}

func TestObjectSortedKeys(t *testing.T) {
	obj := Object{
		"zebra":  String("z"),
		"apple":  String("a"),
		"banana": String("b"),
		"A":      String("A"),
	}

	assert.Equal(t, []string{"A", "apple", "banana", "zebra"}, obj.SortedKeys())
}

func TestLen(t *testing.T) {
	n, ok := Len(String("héllo"))
	require.True(t, ok)
	assert.Equal(t, 5, n, "length counts runes, not bytes")

	n, ok = Len(Array{Int(1), Int(2)})
	require.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = Len(Int(3))
	assert.False(t, ok)
}

func TestIsAbsent(t *testing.T) {
	assert.True(t, IsAbsent(nil))
	assert.True(t, IsAbsent(Null{}))
	assert.False(t, IsAbsent(String("")))
	assert.False(t, IsAbsent(Int(0)))
}

func TestEqual(t *testing.T) {
	a := Object{"list": Array{Int(1), Object{"x": String("y")}}}
	b := Object{"list": Array{Int(1), Object{"x": String("y")}}}
	assert.True(t, Equal(a, b))

	b["list"].(Array)[1].(Object)["x"] = String("z")
	assert.False(t, Equal(a, b))

	assert.False(t, Equal(Int(1), Float(1)))
	assert.False(t, Equal(nil, Null{}))
	assert.True(t, Equal(nil, nil))
}

func TestCloneIsDeep(t *testing.T) {
	orig := Object{"inner": Object{"n": Int(1)}, "list": Array{Int(1)}}
	cp := Clone(orig).(Object)

	cp["inner"].(Object)["n"] = Int(2)
	cp["list"].(Array)[0] = Int(9)

	assert.Equal(t, Int(1), orig["inner"].(Object)["n"])
	assert.Equal(t, Int(1), orig["list"].(Array)[0])
}

func TestFromGoAndBack(t *testing.T) {
	raw := map[string]any{
		"name":  "Alice",
		"age":   30,
		"score": 9.5,
		"tags":  []any{"a", "b"},
		"meta":  map[string]any{"active": true, "nothing": nil},
	}

	v, err := FromGo(raw)
	require.NoError(t, err)

	obj := v.(Object)
	assert.Equal(t, String("Alice"), obj["name"])
	assert.Equal(t, Int(30), obj["age"])
	assert.Equal(t, Float(9.5), obj["score"])
	assert.Equal(t, Array{String("a"), String("b")}, obj["tags"])
	assert.Equal(t, Null{}, obj["meta"].(Object)["nothing"])

	back := ToGo(v).(map[string]any)
	assert.Equal(t, int64(30), back["age"])
	assert.Nil(t, back["meta"].(map[string]any)["nothing"])
}

func TestFromGoRejects(t *testing.T) {
	_, err := FromGo(map[string]any{"x": struct{}{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x: unsupported type")

	_, err = FromGo(map[any]any{1: "one"})
	require.Error(t, err)

	_, err = FromGo(uint64(1 << 63))
	require.Error(t, err)
}

func TestFromGoJSONNumber(t *testing.T) {
	v, err := FromGo(json.Number("12"))
	require.NoError(t, err)
	assert.Equal(t, Int(12), v)

	v, err = FromGo(json.Number("1.25"))
	require.NoError(t, err)
	assert.Equal(t, Float(1.25), v)
}

func TestMarshalJSONSortedOutput(t *testing.T) {
	obj := Object{"b": Int(1), "a": Array{Null{}, Bool(true)}}
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[null,true],"b":1}`, string(data))
}

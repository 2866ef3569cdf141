package plainval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPlainPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "hello"},
		{"int", 42},
		{"float", 3.5},
		{"bool", true},
		{"json number", json.Number("1.25")},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, ToPlain(tt.value))
		})
	}
}

func TestToPlainRoundTrip(t *testing.T) {
	// An already-plain structure comes back unchanged.
	m := NewMap()
	m.Set("b", "first")
	m.Set("a", []any{"x", json.Number("1"), nil})

	out := ToPlain(m)
	outMap, ok := out.(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, outMap.Keys())

	b, _ := outMap.Get("b")
	assert.Equal(t, "first", b)
	a, _ := outMap.Get("a")
	assert.Equal(t, []any{"x", json.Number("1"), nil}, a)
}

func TestToPlainSetSorted(t *testing.T) {
	set := map[string]struct{}{
		"pear":   {},
		"apple":  {},
		"cherry": {},
	}

	// Go map iteration order is randomized; repeated runs must agree.
	for i := 0; i < 10; i++ {
		out := ToPlain(set)
		assert.Equal(t, []any{"apple", "cherry", "pear"}, out)
	}
}

func TestToPlainMapSortedKeys(t *testing.T) {
	in := map[string]any{"zebra": 1, "ant": 2, "moth": 3}

	out, ok := ToPlain(in).(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"ant", "moth", "zebra"}, out.Keys())
}

func TestToPlainSlicePreservesOrder(t *testing.T) {
	out := ToPlain([]string{"c", "a", "b"})
	assert.Equal(t, []any{"c", "a", "b"}, out)
}

func TestToPlainStruct(t *testing.T) {
	type inner struct {
		Count int `json:"count"`
	}
	type record struct {
		Name    string `json:"name"`
		Ignored string `json:"-"`
		Plain   string
		Nested  inner `json:"nested"`
		hidden  int
	}

	out, ok := ToPlain(record{Name: "n", Ignored: "x", Plain: "p", Nested: inner{Count: 2}, hidden: 9}).(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "Plain", "nested"}, out.Keys())

	nested, _ := out.Get("nested")
	nestedMap, ok := nested.(*Map)
	require.True(t, ok)
	count, _ := nestedMap.Get("count")
	assert.Equal(t, 2, count)
}

type mapperType struct {
	Raw string `json:"raw"`
}

func (m mapperType) ToMap() map[string]any {
	return map[string]any{"converted": m.Raw}
}

func TestToPlainMapperWinsOverFields(t *testing.T) {
	out, ok := ToPlain(mapperType{Raw: "v"}).(*Map)
	require.True(t, ok)

	assert.False(t, out.Has("raw"))
	converted, _ := out.Get("converted")
	assert.Equal(t, "v", converted)
}

func TestToPlainPointers(t *testing.T) {
	v := 7
	assert.Equal(t, 7, ToPlain(&v))

	var p *int
	assert.Nil(t, ToPlain(p))
}

func TestToPlainPassThrough(t *testing.T) {
	fn := func() {}
	out := ToPlain(fn)
	assert.NotNil(t, out)
}

func TestDecodePreservesKeyOrder(t *testing.T) {
	data := []byte(`{"version":"1.2.3","commitTag":"abc","updateAvailable":false,"restartRequired":false}`)

	v, err := Decode(data)
	require.NoError(t, err)

	m, ok := v.(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"version", "commitTag", "updateAvailable", "restartRequired"}, m.Keys())

	version, _ := m.Get("version")
	assert.Equal(t, "1.2.3", version)
	update, _ := m.Get("updateAvailable")
	assert.Equal(t, false, update)
}

func TestDecodeNested(t *testing.T) {
	data := []byte(`{"outer":{"z":1,"a":[true,null,"s"]}}`)

	v, err := Decode(data)
	require.NoError(t, err)

	m := v.(*Map)
	outer, _ := m.Get("outer")
	outerMap, ok := outer.(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, outerMap.Keys())

	a, _ := outerMap.Get("a")
	assert.Equal(t, []any{true, nil, "s"}, a)
}

func TestDecodeScalar(t *testing.T) {
	v, err := Decode([]byte(`"plain"`))
	require.NoError(t, err)
	assert.Equal(t, "plain", v)

	v, err = Decode([]byte(`12`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12"), v)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte(`{broken`))
	assert.Error(t, err)
}

func TestMapMarshalJSON(t *testing.T) {
	m := NewMap()
	m.Set("b", 1)
	m.Set("a", "two")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":"two"}`, string(data))
}

func TestMapSetTwiceKeepsPosition(t *testing.T) {
	m := NewMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	a, _ := m.Get("a")
	assert.Equal(t, 3, a)
}

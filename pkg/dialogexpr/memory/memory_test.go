package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "single", path: "a", want: []string{"a"}},
		{name: "dotted", path: "a.b.c", want: []string{"a", "b", "c"}},
		{name: "index", path: "a.b[0].c", want: []string{"a", "b", "0", "c"}},
		{name: "single quoted", path: "a['b']['c']", want: []string{"a", "b", "c"}},
		{name: "double quoted", path: `a["b c"]`, want: []string{"a", "b c"}},
		{name: "quoted dot", path: "a['b.c']", want: []string{"a", "b.c"}},
		{name: "leading bracket", path: "[1].x", want: []string{"1", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Invalid(t *testing.T) {
	for _, path := range []string{"", ".", "a[", "a['b]", "a]", "a[]", "a['b'x]"} {
		t.Run(path, func(t *testing.T) {
			_, err := ParsePath(path)
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestSimpleObjectMemory_GetValue(t *testing.T) {
	m := NewSimpleObjectMemory(map[string]any{
		"user": map[string]any{
			"Name":  "Ada",
			"tags":  []any{"a", "b"},
			"empty": nil,
		},
		"Foo": 1,
	})

	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{"user.Name", "Ada", true},
		{"user.name", "Ada", true},
		{"foo", 1, true},
		{"user.tags[1]", "b", true},
		{"user['tags'][0]", "a", true},
		{"user.tags[2]", nil, false},
		{"user.tags.x", nil, false},
		{"user.empty", nil, true},
		{"user.missing", nil, false},
		{"user.Name.first", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, found := m.GetValue(tt.path)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimpleObjectMemory_ListRoot(t *testing.T) {
	m := NewSimpleObjectMemory([]int{10, 20})
	v, ok := m.GetValue("[1]")
	require.True(t, ok)
	assert.Equal(t, 20, v)
}

func TestSimpleObjectMemory_NilRoot(t *testing.T) {
	m := NewSimpleObjectMemory(nil)
	_, ok := m.GetValue("a")
	assert.False(t, ok)

	require.NoError(t, m.SetValue("a.b", 1))
	v, ok := m.GetValue("a.b")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestAccessProperty_CaseCollision(t *testing.T) {
	record := map[string]any{"NAME": 1, "Name": 2, "name": 3}

	v, ok := AccessProperty(record, "name")
	require.True(t, ok)
	assert.Equal(t, 3, v, "exact match wins")

	v, ok = AccessProperty(record, "nAmE")
	require.True(t, ok)
	assert.Equal(t, 1, v, "lexically smallest key wins")
}

func TestSimpleObjectMemory_SetValue(t *testing.T) {
	data := map[string]any{
		"User": map[string]any{"name": "Ada"},
		"list": []any{1},
	}
	m := NewSimpleObjectMemory(data)

	require.NoError(t, m.SetValue("user.name", "Grace"))
	assert.Equal(t, "Grace", data["User"].(map[string]any)["name"], "existing key casing is kept")

	require.NoError(t, m.SetValue("a.b.c", true))
	v, ok := m.GetValue("a.b.c")
	require.True(t, ok)
	assert.Equal(t, true, v)

	require.NoError(t, m.SetValue("list[1]", 2))
	v, ok = m.GetValue("list")
	require.True(t, ok)
	assert.Equal(t, []any{1, 2}, v)

	err := m.SetValue("list[5]", 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	err = m.SetValue("user.name.first", "x")
	assert.ErrorIs(t, err, ErrNotContainer)

	err = m.SetValue("", 1)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

type profile struct {
	Name  string   `json:"name"`
	Langs []string `json:"langs"`
}

func TestNormalize(t *testing.T) {
	t.Run("struct via json tags", func(t *testing.T) {
		got := Normalize(profile{Name: "Ada", Langs: []string{"go"}})
		assert.Equal(t, map[string]any{"name": "Ada", "langs": []any{"go"}}, got)
	})

	t.Run("pointer", func(t *testing.T) {
		got := Normalize(&profile{Name: "Ada"})
		assert.Equal(t, KindRecord, KindOf(got))
	})

	t.Run("typed map and slice", func(t *testing.T) {
		got := Normalize(map[string][]string{"a": {"x", "y"}})
		assert.Equal(t, map[string]any{"a": []any{"x", "y"}}, got)
	})

	t.Run("nested conversion in place", func(t *testing.T) {
		in := map[string]any{"inner": map[string]int{"n": 1}}
		Normalize(in)
		assert.Equal(t, map[string]any{"n": 1}, in["inner"])
	})

	t.Run("scalars unchanged", func(t *testing.T) {
		assert.Equal(t, 3, Normalize(3))
		assert.Equal(t, "s", Normalize("s"))
		assert.Nil(t, Normalize(nil))
		assert.Equal(t, "raw", Normalize([]byte("raw")))
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindRecord, KindOf(map[string]any{}))
	assert.Equal(t, KindList, KindOf([]any{}))
	assert.Equal(t, KindScalar, KindOf("x"))
	assert.Equal(t, KindScalar, KindOf(nil))
	assert.Equal(t, "list", KindList.String())
}

func TestWrap(t *testing.T) {
	m := NewSimpleObjectMemory(map[string]any{})
	assert.Same(t, m, Wrap(m))

	wrapped := Wrap(map[string]any{"a": 1})
	v, ok := wrapped.GetValue("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestSetPath_ErrorsWrapSentinels(t *testing.T) {
	_, err := SetPath([]any{}, []string{"x"}, 1)
	assert.True(t, errors.Is(err, ErrInvalidPath))
}

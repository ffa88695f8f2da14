package nestdict_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nestdict"
)

func userSchema(t *testing.T) *nestdict.Schema {
	t.Helper()
	name, err := nestdict.NewField(nestdict.KindString, nestdict.Required(), nestdict.MinLength(1))
	require.NoError(t, err)
	age, err := nestdict.NewField(nestdict.KindInt, nestdict.Min(0), nestdict.Max(150))
	require.NoError(t, err)
	role, err := nestdict.NewField(nestdict.KindString, nestdict.Choices(nestdict.String("admin"), nestdict.String("dev")))
	require.NoError(t, err)

	users, err := nestdict.NewSequence(map[string]nestdict.Node{
		"name": name,
		"age":  age,
		"role": role,
	}, nestdict.Unique("name"), nestdict.MaxItems(2))
	require.NoError(t, err)

	root, err := nestdict.NewMapping(map[string]nestdict.Node{"users": users})
	require.NoError(t, err)
	return root
}

func TestStoreWithSchema(t *testing.T) {
	_, err := nestdict.New(nil, nestdict.WithSchema(userSchema(t)))
	assert.Equal(t, "TypeMismatch", nestdict.ErrorCode(err))

	st, err := nestdict.New(nestdict.Object{"users": nestdict.Array{}}, nestdict.WithSchema(userSchema(t)))
	require.NoError(t, err)

	require.NoError(t, st.Set("users.[0]", nestdict.Object{"name": nestdict.String("Ann")}))
	require.NoError(t, st.Set("users.[0].age", nestdict.Int(41)))

	err = st.Set("users.[1]", nestdict.Object{"name": nestdict.String("Ann")})
	assert.Equal(t, "DuplicateUniqueValue", nestdict.ErrorCode(err))

	err = st.Set("users.[0].role", nestdict.String("ops"))
	assert.Equal(t, "NotInChoices", nestdict.ErrorCode(err))

	err = st.Delete("users.[0].name")
	assert.Equal(t, "RequiredFieldMissing", nestdict.ErrorCode(err))

	assert.Equal(t, nestdict.Array{nestdict.String("Ann")}, st.Get("users.[].name", nil))
	assert.Equal(t, map[string]any{
		"users": []any{map[string]any{"name": "Ann", "age": int64(41)}},
	}, nestdict.ToGo(st.Canonical()))
}

func TestConstructionErrors(t *testing.T) {
	_, err := nestdict.NewField(nestdict.KindString, nestdict.Min(1))
	assert.Equal(t, "ConstructionError", nestdict.ErrorCode(err))

	_, err = nestdict.NewField(nestdict.KindInt, nestdict.Pattern("^a"))
	assert.Equal(t, "ConstructionError", nestdict.ErrorCode(err))

	assert.Empty(t, nestdict.ErrorCode(fmt.Errorf("unrelated")))
}

func TestLoadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: mapping\nitems:\n  port: {type: int, required: true}\n"), 0644))

	s, err := nestdict.LoadSchema(path)
	require.NoError(t, err)

	_, err = nestdict.New(nestdict.Object{}, nestdict.WithSchema(s))
	assert.Equal(t, "RequiredFieldMissing", nestdict.ErrorCode(err))
}

func TestDecodeEncode(t *testing.T) {
	v, err := nestdict.Decode([]byte("a:\n  b: [1, 2.5]\n"), "yaml")
	require.NoError(t, err)

	out, err := nestdict.Encode(v, "json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":[1,2.5]}}`, string(out))

	_, err = nestdict.Decode([]byte("{}"), "toml")
	assert.Error(t, err)
}

func TestFromGo(t *testing.T) {
	v, err := nestdict.FromGo(map[string]any{"a": []any{1, "x", nil}})
	require.NoError(t, err)
	assert.Equal(t, nestdict.Object{"a": nestdict.Array{nestdict.Int(1), nestdict.String("x"), nestdict.Null{}}}, v)
}

func Example() {
	st, err := nestdict.New(nestdict.Object{})
	if err != nil {
		panic(err)
	}

	_ = st.Set("user.address.[0].city", nestdict.String("Paris"))
	_ = st.Set("user.address.[1].city", nestdict.String("Oslo"))

	fmt.Println(st.Get("user.address.[1].city", nil))
	fmt.Println(st.Get("user.address.[].city", nil))
	fmt.Println(st.Has("user.zip"))
	// Output:
	// Oslo
	// [Paris Oslo]
	// false
}

package answers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Accessors(t *testing.T) {
	s := Set{
		ProjectType: Text("api-backend"),
		StackTech:   List("nodejs", "postgres"),
		HasAuth:     Text(Yes),
		HasPayments: Text("YES"),
		StoresData:  Text(" yes "),
	}

	assert.Equal(t, "api-backend", s.String(ProjectType))
	assert.Equal(t, []string{"nodejs", "postgres"}, s.List(StackTech))
	assert.Empty(t, s.String(StackTech), "list answers have no scalar text")
	assert.Nil(t, s.List(ProjectType), "scalar answers have no list")
	assert.True(t, s.Flag(HasAuth))
	assert.False(t, s.Flag(HasPayments), "only the exact answer yes counts")
	assert.False(t, s.Flag(StoresData), "only the exact answer yes counts")
	assert.False(t, s.Flag(HasSensitiveData))
	assert.False(t, s.Has(Description))
}

func TestSet_ListIsCopied(t *testing.T) {
	s := Set{StackTech: List("go")}
	got := s.List(StackTech)
	got[0] = "python"
	assert.Equal(t, []string{"go"}, s.List(StackTech))
}

func TestSet_WithSecurityDefaults(t *testing.T) {
	s := Set{HasPayments: Text(Yes)}
	out := s.WithSecurityDefaults()

	for _, id := range SecurityFlags {
		require.True(t, out.Has(id), "flag %s should be answered", id)
	}
	assert.Equal(t, Yes, out.String(HasPayments))
	assert.Equal(t, No, out.String(HasAuth))
	assert.False(t, s.Has(HasAuth), "original set must not be mutated")
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
version: v1
answers:
  projectType: web-app
  stackTech: [react, postgres]
  hasAuth: yes
  description: ~
`)
	s, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "web-app", s.String(ProjectType))
	assert.Equal(t, []string{"react", "postgres"}, s.List(StackTech))
	assert.True(t, s.Flag(HasAuth))
	assert.False(t, s.Has(Description))
}

func TestParse_JSON(t *testing.T) {
	s, err := Parse([]byte(`{"answers": {"projectType": "cli-tool", "stackTech": ["go"]}}`))
	require.NoError(t, err)
	assert.Equal(t, "cli-tool", s.String(ProjectType))
	assert.Equal(t, []string{"go"}, s.List(StackTech))
}

func TestParse_Version(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"", false},
		{"v1", false},
		{"1.2.0", false},
		{"v2.0.0", true},
		{"banana", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			_, err := Parse([]byte("version: " + tt.version + "\nanswers: {}\n"))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedVersion))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	in := Set{ProjectType: Text("library"), StackTech: List()}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Set
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "library", out.String(ProjectType))
	assert.True(t, out[StackTech].IsList())
	assert.Empty(t, out.List(StackTech))
}

func TestValue_JSONLiterals(t *testing.T) {
	var out Set
	require.NoError(t, json.Unmarshal([]byte(`{"hasAuth": true, "description": null}`), &out))
	assert.Equal(t, "true", out.String(HasAuth))
	assert.False(t, out.Has(Description))

	err := json.Unmarshal([]byte(`{"stackTech": {"a": 1}}`), &out)
	assert.Error(t, err)
}

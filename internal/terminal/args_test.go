package terminal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []token
	}{
		{"empty", "", nil},
		{"bare words", "a, b", []token{{Value: "a"}, {Value: "b"}}},
		{"pairs", "length:24, symbols:true", []token{
			{Key: "length", Value: "24"},
			{Key: "symbols", Value: "true"},
		}},
		{"quoted with space after colon", `lang: "py", task:"sum a, b"`, []token{
			{Key: "lang", Value: "py", Quoted: true},
			{Key: "task", Value: "sum a, b", Quoted: true},
		}},
		{"braces", `count:2, schema:{'a':'x.y', 'b':{'c':'}'}}`, []token{
			{Key: "count", Value: "2"},
			{Key: "schema", Value: `{'a':'x.y', 'b':{'c':'}'}}`},
		}},
		{"keys lowercased", "LENGTH:8", []token{{Key: "length", Value: "8"}}},
		{"unterminated quote", `task:"open`, []token{{Key: "task", Value: "open"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, scanTokens(tt.raw)); diff != "" {
				t.Errorf("scanTokens(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestParseKeyOptions(t *testing.T) {
	opts, err := ParseKeyOptions("")
	require.NoError(t, err)
	assert.Equal(t, KeyOptions{Length: DefaultKeyLength}, opts)

	opts, err = ParseKeyOptions("length:24, symbols:true, numbers:TRUE")
	require.NoError(t, err)
	assert.Equal(t, KeyOptions{Length: 24, Symbols: true, Numbers: true}, opts)

	opts, err = ParseKeyOptions("symbols:false")
	require.NoError(t, err)
	assert.False(t, opts.Symbols)

	for _, raw := range []string{"length:0", "length:1025", "length:abc", "length:-3"} {
		_, err := ParseKeyOptions(raw)
		assert.ErrorIs(t, err, errKeyLength, raw)
	}
}

func TestParseProcessArgs(t *testing.T) {
	tests := []struct {
		raw     string
		want    ProcessArgs
		wantErr bool
	}{
		{raw: `hash:sha256, text:"abc"`, want: ProcessArgs{Mode: "hash", Type: "sha256", Text: "abc"}},
		{raw: "encode:base64, text:hello world, again", want: ProcessArgs{Mode: "encode", Type: "base64", Text: "hello world, again"}},
		{raw: "DECODE:Base64 text:YWJj", want: ProcessArgs{Mode: "decode", Type: "base64", Text: "YWJj"}},
		{raw: "text:abc, hash:sha256", wantErr: true},
		{raw: "hash:sha256", wantErr: true},
		{raw: "hash:sha256, text:   ", wantErr: true},
		{raw: "text:abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseProcessArgs(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCodeArgs(t *testing.T) {
	got, err := ParseCodeArgs(`lang:"py", task:"reverse a string"`)
	require.NoError(t, err)
	assert.Equal(t, CodeArgs{Language: "py", Task: "reverse a string"}, got)

	for _, raw := range []string{
		"",
		`lang:"py"`,
		`lang:py, task:"x"`,
		`lang:"", task:"x"`,
		`task:"x", lang:"go`,
	} {
		_, err := ParseCodeArgs(raw)
		assert.ErrorIs(t, err, errInvalidSyntax, raw)
	}
}

func TestParseFabricateArgs(t *testing.T) {
	got, err := ParseFabricateArgs(`count:3, schema:{'name':'person.fullName', 'email':'internet.email'}, format:YAML`)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "yaml", got.Format)
	assert.JSONEq(t, `{"name":"person.fullName","email":"internet.email"}`, got.Schema)

	got, err = ParseFabricateArgs(`schema:{}`)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Empty(t, got.Format)

	_, err = ParseFabricateArgs("count:3")
	assert.ErrorIs(t, err, errSchemaRequired)

	_, err = ParseFabricateArgs(`schema:{'a':}`)
	assert.ErrorIs(t, err, errSchemaInvalid)

	_, err = ParseFabricateArgs(`schema:{'a':'b'`)
	assert.ErrorIs(t, err, errSchemaInvalid)

	_, err = ParseFabricateArgs(`schema:{'a':'b'}, count:many`)
	assert.ErrorIs(t, err, errCountInvalid)
}

func TestParseAlias(t *testing.T) {
	shortcut, target, ok := ParseAlias(" w , whoami ")
	require.True(t, ok)
	assert.Equal(t, "w", shortcut)
	assert.Equal(t, "whoami", target)

	for _, raw := range []string{"", "w", "w,", ",whoami", "a, b, c", "w, who ami", "w, ask(x)"} {
		_, _, ok := ParseAlias(raw)
		assert.False(t, ok, raw)
	}
}

package carve

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceString(t *testing.T) {
	got, err := SliceString("a\nb\nc\nd\n", "1:3")
	require.NoError(t, err)
	assert.Equal(t, "b\nc\n", got)
}

func TestSliceStringIdentity(t *testing.T) {
	for _, content := range []string{"", "one line\n", "a\nb\nc", "no newline at all"} {
		got, err := SliceString(content, ":")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	}
}

func TestSliceWithByteUnit(t *testing.T) {
	got, err := SliceString("0123456789", "-4:", WithUnit(UnitByte))
	require.NoError(t, err)
	assert.Equal(t, "6789", got)
}

func TestSliceInvalidRange(t *testing.T) {
	var out bytes.Buffer
	err := Slice(&out, strings.NewReader("data"), "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.Zero(t, out.Len(), "no output on parse failure")
}

func TestSliceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\ne\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, SliceFile(&out, path, "-2:"))
	assert.Equal(t, "d\ne\n", out.String())
}

func TestSliceFileMissing(t *testing.T) {
	var out bytes.Buffer
	err := SliceFile(&out, filepath.Join(t.TempDir(), "nope"), ":")
	require.Error(t, err)
}

func TestParseRange(t *testing.T) {
	intent, err := ParseRange("5:+2")
	require.NoError(t, err)
	require.NotNil(t, intent.Start)
	assert.Equal(t, int64(5), *intent.Start)

	_, err = ParseRange("5")
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

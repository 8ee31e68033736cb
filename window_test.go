package imbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/imbridge"
)

func TestWindowFlagsString(t *testing.T) {
	tests := []struct {
		flags imbridge.WindowFlags
		want  string
	}{
		{imbridge.WindowFlagsNone, "none"},
		{imbridge.WindowFlagsFloating, "floating"},
		{imbridge.WindowFlagsNotResizable | imbridge.WindowFlagsTransparent, "not-resizable|transparent"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.flags.String())
	}
}

func TestWindowFlagsAreIndependent(t *testing.T) {
	all := []imbridge.WindowFlags{
		imbridge.WindowFlagsNotResizable,
		imbridge.WindowFlagsMaximized,
		imbridge.WindowFlagsFloating,
		imbridge.WindowFlagsFrameless,
		imbridge.WindowFlagsTransparent,
	}
	var seen imbridge.WindowFlags
	for _, f := range all {
		assert.NotZero(t, f)
		assert.Zero(t, seen&f, "flag %s overlaps", f)
		seen |= f
	}
	assert.False(t, imbridge.WindowFlagsNone.Has(imbridge.WindowFlagsFloating))
	assert.True(t, seen.Has(imbridge.WindowFlagsFrameless|imbridge.WindowFlagsMaximized))
}

func TestParseWindowFlags(t *testing.T) {
	f, err := imbridge.ParseWindowFlags([]string{"Frameless", " floating ", "none", ""})
	require.NoError(t, err)
	assert.Equal(t, imbridge.WindowFlagsFrameless|imbridge.WindowFlagsFloating, f)

	f, err = imbridge.ParseWindowFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, imbridge.WindowFlagsNone, f)

	_, err = imbridge.ParseWindowFlags([]string{"fullscreen"})
	assert.Error(t, err)
}

func TestNilWindowPanics(t *testing.T) {
	var w *imbridge.Window
	assert.False(t, w.Valid())
	assert.Panics(t, func() { w.ShouldClose() })
	assert.Panics(t, func() { w.Close() })
}

package selflog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.colors = false
	l.log(LevelInfo, "should be dropped", nil)
	require.Empty(t, buf.String())

	l.log(LevelWarn, "should appear", []interface{}{"k", "v"})
	out := buf.String()
	require.True(t, strings.Contains(out, "should appear"))
	require.True(t, strings.Contains(out, "k=v"))
}

func TestCritPanics(t *testing.T) {
	var buf bytes.Buffer
	prevOut, prevMin := root.out, root.min
	root.out, root.min = &buf, LevelDebug
	defer func() { root.out, root.min = prevOut, prevMin }()

	require.Panics(t, func() { Crit("boom") })
	require.True(t, strings.Contains(buf.String(), "boom"))
}

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotIsolation(t *testing.T) {
	args := []string{"jruby", "-e", "1"}
	vars := map[string]string{JavaHome: "/opt/jdk"}

	snap := New(args, "/work", vars)

	args[1] = "mutated"
	vars[JavaHome] = "/elsewhere"
	vars[JRubyHome] = "/late"

	assert.Equal(t, []string{"jruby", "-e", "1"}, snap.Args())
	assert.Equal(t, "/opt/jdk", snap.Get(JavaHome))
	_, ok := snap.Lookup(JRubyHome)
	assert.False(t, ok)

	got := snap.Args()
	got[0] = "changed"
	assert.Equal(t, "jruby", snap.Argv0())
}

func TestSnapshotCurrentDir(t *testing.T) {
	dir, ok := New(nil, "", nil).CurrentDir()
	assert.False(t, ok)
	assert.Empty(t, dir)

	dir, ok = New(nil, "/work", nil).CurrentDir()
	assert.True(t, ok)
	assert.Equal(t, "/work", dir)
}

func TestFromOS(t *testing.T) {
	t.Setenv(JavaOpts, "-Xa -Xb")
	t.Setenv(Classpath, "")
	t.Setenv(JRubyJSA, "/tmp/custom.jsa")

	snap := FromOS([]string{"/usr/bin/jruby", "-v"})

	require.Equal(t, "/usr/bin/jruby", snap.Argv0())

	opts, ok := snap.Lookup(JavaOpts)
	assert.True(t, ok)
	assert.Equal(t, "-Xa -Xb", opts)

	cp, ok := snap.Lookup(Classpath)
	assert.True(t, ok, "empty CLASSPATH should still count as set")
	assert.Empty(t, cp)

	assert.Equal(t, "/tmp/custom.jsa", snap.Get(JRubyJSA))

	_, known := snap.CurrentDir()
	assert.True(t, known)
}

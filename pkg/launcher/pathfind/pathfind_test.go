package pathfind

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pathList(dirs ...string) string {
	return strings.Join(dirs, string(filepath.ListSeparator))
}

func existsIn(paths ...string) func(string) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func TestFind(t *testing.T) {
	first := filepath.Join("/opt", "a", "java")
	second := filepath.Join("/opt", "b", "java")

	tests := []struct {
		name     string
		pathList string
		exists   func(string) bool
		want     string
		found    bool
	}{
		{
			name:     "absent path list",
			pathList: "",
			exists:   func(string) bool { return true },
		},
		{
			name:     "no candidate exists",
			pathList: pathList("/opt/a", "/opt/b"),
			exists:   existsIn(),
		},
		{
			name:     "first match in path order",
			pathList: pathList("/opt/a", "/opt/b"),
			exists:   existsIn(first, second),
			want:     first,
			found:    true,
		},
		{
			name:     "later entry when earlier misses",
			pathList: pathList("/opt/a", "/opt/b"),
			exists:   existsIn(second),
			want:     second,
			found:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Finder{Exists: tt.exists}
			got, ok := f.Find("java", tt.pathList)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindProbesInOrder(t *testing.T) {
	var probed []string
	f := &Finder{Exists: func(p string) bool {
		probed = append(probed, p)
		return false
	}}

	_, ok := f.Find("jruby", pathList("/x", "/y", "/z"))

	assert.False(t, ok)
	assert.Equal(t, []string{
		filepath.Join("/x", "jruby"),
		filepath.Join("/y", "jruby"),
		filepath.Join("/z", "jruby"),
	}, probed)
}

package launcher

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jruby/jruby-launcher/pkg/launcher/env"
	lerrors "github.com/jruby/jruby-launcher/pkg/launcher/errors"
	"github.com/jruby/jruby-launcher/pkg/launcher/options"
	"github.com/jruby/jruby-launcher/pkg/launcher/platform"
)

type execution struct {
	command string
	args    []string
	fork    bool
}

// fakeServices runs against the real file system but never executes.
type fakeServices struct {
	self     string
	code     int
	err      error
	executed []execution
}

func (f *fakeServices) OS() string { return "linux" }

func (f *fakeServices) Executable() (string, bool) { return f.self, f.self != "" }

func (f *fakeServices) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *fakeServices) Readable(string) bool { return false }
func (f *fakeServices) Writable(string) bool { return true }
func (f *fakeServices) ConsoleAttached() bool { return true }

func (f *fakeServices) Execute(command string, args []string, fork bool, _ hclog.Logger) (int, error) {
	f.executed = append(f.executed, execution{command: command, args: args, fork: fork})
	return f.code, f.err
}

type installation struct {
	home string
	jdk  string
	java string
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
}

func install(t *testing.T) installation {
	t.Helper()
	root := t.TempDir()
	in := installation{
		home: filepath.Join(root, "jruby"),
		jdk:  filepath.Join(root, "jdk"),
	}
	in.java = filepath.Join(in.jdk, "bin", "java")

	writeFile(t, filepath.Join(in.home, "bin", "jruby"), "")
	writeFile(t, filepath.Join(in.home, "lib", "jruby.jar"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(in.home, "lib", "jni"), 0o755))
	writeFile(t, filepath.Join(in.jdk, "release"), "IMPLEMENTOR=\"Eclipse Adoptium\"\nJAVA_VERSION=\"21.0.1\"\n")
	writeFile(t, in.java, "")
	return in
}

func newLauncher(services *fakeServices) (*Launcher, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Launcher{
		Services: services,
		FS:       platform.OSFS{},
		EvalSymlinks: func(path string) (string, error) {
			return path, nil
		},
		Stdout:  &stdout,
		Stderr:  &stderr,
		Version: "9.9.9",
	}, &stdout, &stderr
}

func snapshot(in installation, args ...string) *env.Snapshot {
	return env.New(append([]string{filepath.Join(in.home, "bin", "jruby")}, args...), "", map[string]string{
		env.JavaCmd: in.java,
	})
}

func TestRunPrintsVersion(t *testing.T) {
	l, stdout, _ := newLauncher(&fakeServices{})

	code := l.Run(env.New([]string{"jruby", "-Xversion"}, "", nil))

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "jruby-launcher 9.9.9\n", stdout.String())
}

func TestRunDryRunModularRuntime(t *testing.T) {
	in := install(t)
	services := &fakeServices{}
	l, stdout, stderr := newLauncher(services)

	code := l.Run(snapshot(in, "-Xcommand", "-e", "puts 1"))

	require.Equal(t, ExitOK, code, stderr.String())
	assert.Empty(t, services.executed)

	line := strings.TrimSpace(stdout.String())
	assert.True(t, strings.HasPrefix(line, in.java+" "))
	assert.Contains(t, line, "--module-path="+filepath.Join(in.home, "lib", "jruby.jar"))
	for _, opens := range []string{
		"java.base/java.io=org.jruby.dist",
		"java.base/java.nio.channels=org.jruby.dist",
		"java.base/sun.nio.ch=org.jruby.dist",
		"java.management/sun.management=org.jruby.dist",
	} {
		assert.Contains(t, line, "--add-opens "+opens)
	}
	assert.True(t, strings.HasSuffix(line, "org/jruby/Main -e 'puts 1'"), line)
}

func TestRunExecutesAndPropagatesExitCode(t *testing.T) {
	in := install(t)
	services := &fakeServices{code: 7}
	l, _, _ := newLauncher(services)

	code := l.Run(snapshot(in, "-Xfork-java", "script.rb"))

	assert.Equal(t, 7, code)
	require.Len(t, services.executed, 1)
	exec := services.executed[0]
	assert.Equal(t, in.java, exec.command)
	assert.True(t, exec.fork)
	assert.Equal(t, []string{options.MainClass, "script.rb"}, exec.args[len(exec.args)-2:])
}

func TestRunReportsExecutionFailure(t *testing.T) {
	in := install(t)
	l, _, stderr := newLauncher(&fakeServices{err: errors.New("permission denied")})

	code := l.Run(snapshot(in))

	assert.Equal(t, ExitLaunchError, code)
	assert.Contains(t, stderr.String(), "error: "+lerrors.ErrExecutionFailed.Error())
	assert.Contains(t, stderr.String(), "caused by: permission denied")
}

func TestRunJavaNotFound(t *testing.T) {
	in := install(t)
	l, _, stderr := newLauncher(&fakeServices{})

	code := l.Run(env.New([]string{filepath.Join(in.home, "bin", "jruby")}, "", nil))

	assert.Equal(t, ExitLaunchError, code)
	assert.Contains(t, stderr.String(), lerrors.ErrJavaNotFound.Error())
	assert.Contains(t, stderr.String(), "caused by: "+lerrors.ErrJavaNotFound.Error())
}

func TestRunUnresolvableVersion(t *testing.T) {
	in := install(t)
	require.NoError(t, os.Remove(filepath.Join(in.jdk, "release")))
	l, _, stderr := newLauncher(&fakeServices{})

	code := l.Run(snapshot(in))

	assert.Equal(t, ExitLaunchError, code)
	assert.Contains(t, stderr.String(), lerrors.ErrRuntimeVersionUnresolvable.Error())
}

func TestRunMissingArgumentValue(t *testing.T) {
	l, _, stderr := newLauncher(&fakeServices{})

	code := l.Run(env.New([]string{"jruby", "-Xbootclass"}, "", nil))

	assert.Equal(t, ExitLaunchError, code)
	assert.Equal(t, "error: -Xbootclass: no extra argument\ncaused by: no extra argument\n", stderr.String())
}

func TestRunNailgunClient(t *testing.T) {
	in := install(t)
	l, stdout, _ := newLauncher(&fakeServices{})

	code := l.Run(snapshot(in, "--ng", "-Xcommand", "script.rb"))

	require.Equal(t, ExitOK, code)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(stdout.String()), "org/jruby/Main org.jruby.util.NailMain script.rb"))
}

func TestRunPrintsNotices(t *testing.T) {
	in := install(t)
	l, _, stderr := newLauncher(&fakeServices{})

	code := l.Run(snapshot(in, "-Jea", "-Xcommand"))

	require.Equal(t, ExitOK, code)
	assert.Contains(t, stderr.String(), "-ea option is specified")
}

func TestRunTracesToFile(t *testing.T) {
	in := install(t)
	trace := filepath.Join(t.TempDir(), "trace.log")
	l, _, _ := newLauncher(&fakeServices{})

	code := l.Run(snapshot(in, "-Xtrace", trace, "-Xcommand"))
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(trace)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Assembled java command")
}

func TestCauses(t *testing.T) {
	inner := errors.New("inner")
	err := wrap(wrap(inner, "middle"), "outer")

	chain := causes(err)
	require.Len(t, chain, 2)
	assert.Equal(t, "middle: inner", chain[0].Error())
	assert.Same(t, inner, chain[1])
	assert.Empty(t, causes(inner))
}

type wrapped struct {
	msg string
	err error
}

func (w wrapped) Error() string { return w.msg + ": " + w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }

func wrap(err error, msg string) error { return wrapped{msg: msg, err: err} }

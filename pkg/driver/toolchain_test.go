package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func count(items []string, value string) int {
	n := 0
	for _, item := range items {
		if item == value {
			n++
		}
	}
	return n
}

func TestCompileArgs(t *testing.T) {
	t.Parallel()
	tc := EngineToolchain()

	t.Run("release", func(t *testing.T) {
		t.Parallel()
		argv := tc.CompileArgs(DefaultBuildConfig(), []string{"source/camera.cpp", "source/dda.cpp"})
		assert.DeepEqual(t, argv, []string{
			"g++", "main.cpp", "source/camera.cpp", "source/dda.cpp",
			"-lpng", "-lSDL2", "-o", "./a.out",
		})
	})

	t.Run("debug", func(t *testing.T) {
		t.Parallel()
		cfg := BuildConfig{OutputPath: "foo.bin", Debug: true}
		argv := tc.CompileArgs(cfg, nil)
		assert.DeepEqual(t, argv, []string{"g++", "main.cpp", "-DDEBUG", "-lpng", "-lSDL2", "-o", "foo.bin"})
	})

	t.Run("output path and define", func(t *testing.T) {
		t.Parallel()
		for _, out := range []string{"./a.out", "build/engine", "with space", "-o"} {
			for _, debug := range []bool{false, true} {
				cfg := BuildConfig{OutputPath: out, Debug: debug}
				argv := tc.CompileArgs(cfg, []string{"source/engine.cpp"})

				if out != "-o" {
					assert.Equal(t, count(argv, out), 1, "output path %q in %v", out, argv)
				}
				assert.Equal(t, argv[len(argv)-1], out)
				assert.Equal(t, argv[len(argv)-2], "-o")

				defines := count(argv, "-DDEBUG")
				if debug {
					assert.Equal(t, defines, 1)
				} else {
					assert.Equal(t, defines, 0)
				}
			}
		}
	})
}

func TestResolveSources(t *testing.T) {
	t.Parallel()

	t.Run("matches", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		assert.NilError(t, os.Mkdir(filepath.Join(dir, "source"), 0o770))
		for _, name := range []string{"scene.cpp", "camera.cpp", "engine.cpp"} {
			assert.NilError(t, os.WriteFile(filepath.Join(dir, "source", name), []byte("// empty\n"), 0o660))
		}

		sources, err := EngineToolchain().ResolveSources(dir)
		assert.NilError(t, err)
		assert.DeepEqual(t, sources, []string{"source/camera.cpp", "source/engine.cpp", "source/scene.cpp"})
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		assert.NilError(t, os.Mkdir(filepath.Join(dir, "source"), 0o770))

		sources, err := EngineToolchain().ResolveSources(dir)
		assert.NilError(t, err)
		assert.Equal(t, len(sources), 0)
	})

	for _, name := range []string{"proj[1]", "proj*1", "proj?1"} {
		name := name
		t.Run("glob characters in "+name, func(t *testing.T) {
			t.Parallel()
			dir := filepath.Join(t.TempDir(), name)
			assert.NilError(t, os.MkdirAll(filepath.Join(dir, "source"), 0o770))
			for _, file := range []string{"a.cpp", "b*.cpp"} {
				assert.NilError(t, os.WriteFile(filepath.Join(dir, "source", file), []byte("// empty\n"), 0o660))
			}

			sources, err := EngineToolchain().ResolveSources(dir)
			assert.NilError(t, err)
			assert.DeepEqual(t, sources, []string{"source/a.cpp", "source/b*.cpp"})
		})
	}

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		sources, err := EngineToolchain().ResolveSources(t.TempDir())
		assert.NilError(t, err)
		assert.Equal(t, len(sources), 0)
	})
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		argv     []string
		expected string
	}{
		{"Plain", []string{"g++", "main.cpp", "-lpng", "-o", "./a.out"}, "g++ main.cpp -lpng -o ./a.out"},
		{"Space", []string{"g++", "-o", "my game"}, "g++ -o 'my game'"},
		{"Glob characters", []string{"./out*"}, "'./out*'"},
		{"Single quote", []string{"it's"}, `"it's"`},
		{"Empty", []string{"g++", "-o", ""}, "g++ -o ''"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rendered := RenderCommand(tt.argv)
			assert.Equal(t, rendered, tt.expected)
			assert.Assert(t, !strings.Contains(rendered, "\n"))
		})
	}
}

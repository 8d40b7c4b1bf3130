package driver

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Toolchain describes how the engine is compiled
type Toolchain struct {
	Compiler      string
	EntryFile     string
	SourcePattern string
	Libraries     []string
	DebugDefine   string
}

// EngineToolchain returns the toolchain used to build RPGE: g++ with libpng and SDL2
func EngineToolchain() Toolchain {
	return Toolchain{
		Compiler:      "g++",
		EntryFile:     "main.cpp",
		SourcePattern: "source/*",
		Libraries:     []string{"png", "SDL2"},
		DebugDefine:   "DEBUG",
	}
}

// rootedReadDir resolves relative directories against base so globbing never has to
// look at the base path itself
func rootedReadDir(base string) func(string) ([]os.FileInfo, error) {
	return func(path string) ([]os.FileInfo, error) {
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}

		infos, err := ioutil.ReadDir(path)
		if err != nil && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return infos, err
	}
}

// ResolveSources expands SourcePattern inside dir. The returned paths are relative to dir
// and sorted. A pattern without matches yields an empty list.
func (t Toolchain) ResolveSources(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	base, err := filepath.Abs(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to resolve %s", dir)
	}

	cfg := expand.Config{
		Env:      expand.ListEnviron(),
		ReadDir:  rootedReadDir(base),
		NullGlob: true,
	}

	word := &syntax.Word{Parts: []syntax.WordPart{&syntax.Lit{Value: filepath.ToSlash(t.SourcePattern)}}}
	matches, err := expand.Fields(&cfg, word)
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to resolve pattern %s", t.SourcePattern)
	}

	result := make([]string, 0, len(matches))
	for _, match := range matches {
		match = filepath.Clean(filepath.FromSlash(match))
		if filepath.IsAbs(match) {
			match, err = filepath.Rel(base, match)
			if err != nil {
				return nil, eris.Wrapf(err, "Failed to simplify %s", match)
			}
		}
		result = append(result, filepath.ToSlash(match))
	}

	sort.Strings(result)
	return result, nil
}

// CompileArgs builds the compiler's argument vector for the given config. argv[0] is the compiler.
func (t Toolchain) CompileArgs(cfg BuildConfig, sources []string) []string {
	argv := make([]string, 0, len(sources)+len(t.Libraries)+5)
	argv = append(argv, t.Compiler, t.EntryFile)
	argv = append(argv, sources...)

	if cfg.Debug {
		argv = append(argv, "-D"+t.DebugDefine)
	}

	for _, lib := range t.Libraries {
		argv = append(argv, "-l"+lib)
	}

	return append(argv, "-o", cfg.OutputPath)
}

// RenderCommand formats argv as a single shell-quoted line. It's only used for display.
func RenderCommand(argv []string) string {
	call := &syntax.CallExpr{
		Args: make([]*syntax.Word, len(argv)),
	}

	for idx, arg := range argv {
		var part syntax.WordPart
		switch {
		case arg == "":
			part = &syntax.SglQuoted{}
		case !strings.ContainsAny(arg, " \t\n$'\"\\`*?[]{}()<>|&;#~!"):
			part = &syntax.Lit{Value: arg}
		case !strings.Contains(arg, "'"):
			part = &syntax.SglQuoted{Value: arg}
		default:
			escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`").Replace(arg)
			part = &syntax.DblQuoted{Parts: []syntax.WordPart{&syntax.Lit{Value: escaped}}}
		}

		call.Args[idx] = &syntax.Word{Parts: []syntax.WordPart{part}}
	}

	var buffer strings.Builder
	printer := syntax.NewPrinter(syntax.Minify(true))
	if err := printer.Print(&buffer, &syntax.Stmt{Cmd: call}); err != nil {
		return strings.Join(argv, " ")
	}

	return strings.TrimSpace(buffer.String())
}

package driver

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/rpge/build-tools/pkg"
)

// Executor runs an external program inside dir and waits for it to exit. An empty dir means
// the current directory.
type Executor interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// ProcessExecutor spawns argv[0] directly and forwards the standard streams
type ProcessExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Executor = ProcessExecutor{}

func (p ProcessExecutor) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return eris.New("no command passed")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	// keep exit errors unwrapped so the status can be reported
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return eris.Wrapf(err, "Failed to start %s", argv[0])
}

// Driver compiles the engine and optionally runs the result
type Driver struct {
	Toolchain Toolchain
	Executor  Executor
	// Dir is the project directory. Sources, the output path and both processes are relative to it.
	Dir string
	Out io.Writer
}

// New returns a driver for the engine toolchain that works in the current directory
func New(executor Executor) *Driver {
	return &Driver{
		Toolchain: EngineToolchain(),
		Executor:  executor,
		Out:       os.Stdout,
	}
}

// Build runs the compiler once and returns its error, if any
func (d *Driver) Build(ctx context.Context, cfg BuildConfig) error {
	sources, err := d.Toolchain.ResolveSources(d.Dir)
	if err != nil {
		return err
	}

	argv := d.Toolchain.CompileArgs(cfg, sources)
	pkg.PrintTask(d.Out, "Building "+cfg.OutputPath)
	log(ctx).Info().
		Str("step", "build").
		Bool("debug", cfg.Debug).
		Int("sources", len(sources)).
		Msg(RenderCommand(argv))

	if err := d.Executor.Run(ctx, d.Dir, argv); err != nil {
		return &ProcessError{Step: "build", Err: err}
	}
	return nil
}

// Run executes the artifact at cfg.OutputPath without arguments
func (d *Driver) Run(ctx context.Context, cfg BuildConfig) error {
	path := artifactPath(cfg.OutputPath)
	pkg.PrintTask(d.Out, "Running "+path)
	log(ctx).Info().
		Str("step", "run").
		Msg(RenderCommand([]string{path}))

	if err := d.Executor.Run(ctx, d.Dir, []string{path}); err != nil {
		return &ProcessError{Step: "run", Err: err}
	}
	return nil
}

// Execute builds and, if requested, runs the artifact. Failures of the compiler or the artifact
// are logged but not returned; the run step happens even if the build failed.
func (d *Driver) Execute(ctx context.Context, cfg BuildConfig) error {
	if err := d.tolerate(ctx, d.Build(ctx, cfg)); err != nil {
		return err
	}

	if cfg.RunAfterBuild {
		if err := d.tolerate(ctx, d.Run(ctx, cfg)); err != nil {
			return err
		}
	}

	return ctx.Err()
}

// tolerate logs process failures and swallows them. Other errors and cancellation are returned.
func (d *Driver) tolerate(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var procErr *ProcessError
	if err == nil || !errors.As(err, &procErr) {
		return err
	}

	evt := log(ctx).Warn().Str("step", procErr.Step)
	var exitErr *exec.ExitError
	if errors.As(procErr.Err, &exitErr) {
		evt = evt.Int("status", exitErr.ExitCode())
	} else {
		evt = evt.Err(procErr.Err)
	}

	evt.Msgf("%s step failed, continuing", procErr.Step)
	return nil
}

// artifactPath makes sure that a bare file name is executed from the current directory
// instead of being looked up in PATH
func artifactPath(output string) string {
	if filepath.IsAbs(output) || strings.ContainsRune(output, '/') || strings.ContainsRune(output, filepath.Separator) {
		return output
	}

	return "." + string(filepath.Separator) + output
}

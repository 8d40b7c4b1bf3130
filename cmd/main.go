package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aidarkhanov/nanoid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rpge/build-tools/pkg/config"
	"github.com/rpge/build-tools/pkg/driver"
)

const usage = `Builds the engine with g++ and links it against libpng and SDL2.

Switches:
    --out <file>   set the output file path (default: ./a.out)
    --debug        build the project with debugging tools included
    --release      build the project only, without any additional tools
    --run          run the output executable just after building is finished

Logging can be tuned through rpge-build.toml or RPGE_BUILD_LOG_* environment variables.`

var rootCmd = newRootCmd(driver.ProcessExecutor{
	Stdin:  os.Stdin,
	Stdout: os.Stdout,
	Stderr: os.Stderr,
})

func newRootCmd(executor driver.Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "rpge-build [--out <file>] [--debug] [--release] [--run]",
		Short: "Build tool for the RPGE engine",
		Long:  usage,
		// the switch grammar is stricter than pflag's, so everything is passed through
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		// cobra injects hidden subcommands (i.e. __complete); their names are bare words
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd == cmd.Root() {
				return nil
			}

			err := driver.MalformedSwitch{Switch: cmd.Name()}
			reportSwitchError(cmd, fallbackLogger(cmd.ErrOrStderr()), err)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader := config.Loader()
			if err := loader.Load(); err != nil {
				err = eris.Wrap(err, "Failed to load config")
				logger := fallbackLogger(cmd.ErrOrStderr())
				logger.Error().Err(err).Msg("Failed to load config")
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg)
			if err := cfg.Validate(); err != nil {
				logger.Error().Err(err).Msg("Failed to parse config")
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = driver.WithLogger(ctx, &logger)

			buildCfg, err := driver.ParseSwitches(args)
			if err != nil {
				reportSwitchError(cmd, logger, err)
				return err
			}

			logger.Debug().
				Str("out", buildCfg.OutputPath).
				Bool("debug", buildCfg.Debug).
				Bool("run", buildCfg.RunAfterBuild).
				Msg("Parsed switches")

			d := driver.New(executor)
			d.Out = cmd.OutOrStdout()
			err = d.Execute(ctx, buildCfg)
			if err != nil {
				logger.Error().Err(err).Msg("Build aborted")
			}
			return err
		},
	}
}

func newLogger(out io.Writer, cfg *config.Config) zerolog.Logger {
	trace := cfg.Log.Trace
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return eris.ToString(err, trace)
	}

	var writer io.Writer = out
	if !cfg.Log.JSON {
		writer = NewConsoleWriter(out, trace)
	}

	return zerolog.New(writer).
		Level(cfg.LogLevel()).
		With().
		Timestamp().
		Str("build", nanoid.New()).
		Logger()
}

// fallbackLogger is used when the config couldn't be loaded (yet)
func fallbackLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(NewConsoleWriter(out, false)).Level(zerolog.InfoLevel)
}

func reportSwitchError(cmd *cobra.Command, logger zerolog.Logger, err error) {
	logger.Error().Msg(err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "\nUsage: %s\n\n%s\n", cmd.Root().Use, cmd.Root().Long)
}

// Execute runs the root command and exits with status 1 on any error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

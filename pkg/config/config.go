package config

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// FileName is the optional config file looked up in the working directory
const FileName = "rpge-build.toml"

// Config describes the settings which don't affect the build itself
type Config struct {
	Log struct {
		Level string `default:"info" usage:"Minimum level of printed messages (debug, info, warn or error)"`
		JSON  bool   `default:"false" usage:"Output JSONND instead of pretty console messages"`
		Trace bool   `default:"false" usage:"Include stack traces and all event fields"`
	}
}

var logLevels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

// Loader initializes an empty config object and returns a new Loader for this object.
// Flags are never read since the command line only contains build switches.
func Loader(files ...string) (*Config, *aconfig.Loader) {
	if len(files) == 0 {
		files = []string{FileName}
	}

	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "RPGE_BUILD",
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	_, ok := logLevels[cfg.Log.Level]
	if !ok {
		return eris.Errorf(`Invalid value for log.level: %s`, cfg.Log.Level)
	}

	return nil
}

// LogLevel converts the .Log.Level field to a zerolog.Level. Invalid values map to info.
func (cfg *Config) LogLevel() zerolog.Level {
	level, ok := logLevels[cfg.Log.Level]
	if !ok {
		return zerolog.InfoLevel
	}
	return level
}

package driver

import "strings"

const switchPrefix = "--"

// ParseSwitches processes the passed arguments (without the program name) from left to right
// and returns the resulting config. Later switches override earlier ones.
//
// Parsing stops at the first invalid token. The returned error is one of MalformedSwitch,
// MissingValue or UnknownSwitch.
func ParseSwitches(args []string) (BuildConfig, error) {
	cfg := DefaultBuildConfig()

	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		if !strings.HasPrefix(arg, switchPrefix) || len(arg) <= len(switchPrefix) {
			return BuildConfig{}, MalformedSwitch{Switch: arg}
		}

		name := arg[len(switchPrefix):]
		switch name {
		case "run":
			cfg.RunAfterBuild = true
		case "debug":
			cfg.Debug = true
		case "release":
			cfg.Debug = false
		case "out":
			// the value is taken verbatim, even if it looks like another switch
			if idx+1 >= len(args) || args[idx+1] == "" {
				return BuildConfig{}, MissingValue{Name: name}
			}

			idx++
			cfg.OutputPath = args[idx]
		default:
			return BuildConfig{}, UnknownSwitch{Switch: arg}
		}
	}

	return cfg, nil
}

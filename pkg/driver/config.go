package driver

// DefaultOutputPath is used when --out isn't passed
const DefaultOutputPath = "./a.out"

// BuildConfig holds the settings collected from the command line
type BuildConfig struct {
	OutputPath    string
	Debug         bool
	RunAfterBuild bool
}

// DefaultBuildConfig returns the settings used when no switches are passed
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		OutputPath: DefaultOutputPath,
	}
}

// Package driver implements the RPGE build driver. It turns a list of build switches into a
// BuildConfig, compiles the engine with a fixed g++ toolchain and optionally runs the result.
// Processes are spawned directly from argument vectors; no shell is involved.
package driver

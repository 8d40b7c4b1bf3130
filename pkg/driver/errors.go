package driver

import "fmt"

type MalformedSwitch struct {
	Switch string
}

var _ error = (*MalformedSwitch)(nil)

func (e MalformedSwitch) Error() string {
	return fmt.Sprintf("Invalid switch format '%s' (maybe prepend it with two dashes?)", e.Switch)
}

type MissingValue struct {
	Name string
}

var _ error = (*MissingValue)(nil)

func (e MissingValue) Error() string {
	return fmt.Sprintf("Switch '%s' requires a value", e.Name)
}

type UnknownSwitch struct {
	Switch string
}

var _ error = (*UnknownSwitch)(nil)

func (e UnknownSwitch) Error() string {
	return fmt.Sprintf("Unknown switch '%s'", e.Switch)
}

// ProcessError wraps the failure of a spawned program (compiler or artifact)
type ProcessError struct {
	Step string
	Err  error
}

var _ error = (*ProcessError)(nil)

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s step failed: %s", e.Step, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

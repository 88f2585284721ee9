package main

import (
	"fmt"
	"strings"
)

const (
	exitUsage     = 1
	exitExhausted = 2
)

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return 1
	}
	return e.code
}

func usageError(err error) error {
	return exitError{code: exitUsage, err: err}
}

func exhaustedError(services []string) error {
	return exitError{
		code: exitExhausted,
		err:  fmt.Errorf("error budget exhausted for: %s", strings.Join(services, ", ")),
	}
}

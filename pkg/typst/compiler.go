package typst

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultBinary is the compiler looked up on PATH when none is configured.
const DefaultBinary = "typst"

// CompileError is returned when the compiler cannot be started or exits
// with a non-zero status.
type CompileError struct {
	Binary string
	Stderr string // captured diagnostics, line endings normalised to \n
	Err    error
}

func (e *CompileError) Error() string {
	var sb strings.Builder
	sb.WriteString("An exception occurred during typst compilation: ")
	if e.Stderr != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Stderr)
	} else if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *CompileError) Unwrap() error { return e.Err }

// MissingOutputError is returned when the compiler exits successfully but
// the expected output file does not exist.
type MissingOutputError struct {
	Path string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("No svg has been produced by compilation: \nExpected file name was: %s.", e.Path)
}

// Compiler runs the external typst binary.
type Compiler struct {
	binary string
}

// NewCompiler returns a Compiler for the given binary name or path.
// An empty binary falls back to DefaultBinary.
func NewCompiler(binary string) *Compiler {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Compiler{binary: binary}
}

// Binary returns the name or path of the compiler executable.
func (c *Compiler) Binary() string {
	return c.binary
}

// Compile runs "<binary> compile <input> <output>" and blocks until the
// process exits. No timeout is applied besides the one carried by ctx.
// The returned error is a *CompileError or a *MissingOutputError.
func (c *Compiler) Compile(ctx context.Context, input, output string) error {
	cmd := exec.CommandContext(ctx, c.binary, "compile", input, output)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &CompileError{
			Binary: c.binary,
			Stderr: normalizeNewlines(stderr.String()),
			Err:    err,
		}
	}

	info, err := os.Stat(output)
	if err != nil || info.IsDir() {
		return &MissingOutputError{Path: output}
	}

	return nil
}

// Version returns the first line printed by "<binary> --version".
func (c *Compiler) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary, "--version")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", &CompileError{
			Binary: c.binary,
			Stderr: normalizeNewlines(stderr.String()),
			Err:    err,
		}
	}

	line, _, _ := strings.Cut(normalizeNewlines(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// IsAbort reports whether err is one of the compiler failures that abort
// the whole operation with a message for the user.
func IsAbort(err error) bool {
	var compileErr *CompileError
	var missingErr *MissingOutputError
	return errors.As(err, &compileErr) || errors.As(err, &missingErr)
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

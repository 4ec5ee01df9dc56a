package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrFormatter is returned when the formatter command fails or rejects the input.
var ErrFormatter = errors.New("formatter failed")

// Formatter rewrites source into canonical form. path is informational; the
// content is passed in src.
type Formatter interface {
	Format(ctx context.Context, path string, src []byte) ([]byte, error)
}

// Command runs an external formatter that reads source on stdin and writes
// the formatted result to stdout.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// DefaultCommand is rustfmt for the 2021 edition.
func DefaultCommand() *Command {
	return &Command{Name: "rustfmt", Args: []string{"--edition", "2021", "--emit", "stdout"}}
}

// Format implements Formatter.
func (c *Command) Format(ctx context.Context, path string, src []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrFormatter, path, msg)
	}
	return stdout.Bytes(), nil
}

// Argv returns the program name followed by its arguments.
func (c *Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c *Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Identity returns its input unchanged.
type Identity struct{}

// Format implements Formatter.
func (Identity) Format(_ context.Context, _ string, src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Output is what one compiler or build tool run produced.
type Output struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner starts one compilation. A failed compilation is reported through
// Output; a returned error means the command could not be run at all.
type Runner interface {
	Run(ctx context.Context) (Output, error)
}

// Command runs an external program.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string // appended to the current environment
}

// Run implements Runner.
func (c *Command) Run(ctx context.Context) (Output, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		out.Success = true
		return out, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	case ctx.Err() != nil:
		return out, ctx.Err()
	default:
		return out, fmt.Errorf("run %s: %w", c.Name, err)
	}
}

func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Expand returns a copy of args with every {key} replaced by vars[key].
func Expand(args []string, vars map[string]string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		for k, v := range vars {
			a = strings.ReplaceAll(a, "{"+k+"}", v)
		}
		out[i] = a
	}
	return out
}

// NewCommand builds a Command from a configured argv template.
func NewCommand(argv []string, vars map[string]string) (*Command, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	expanded := Expand(argv, vars)
	return &Command{Name: expanded[0], Args: expanded[1:]}, nil
}

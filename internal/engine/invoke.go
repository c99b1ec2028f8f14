package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// Outcome captures one engine run: the exit code plus everything the
// process wrote to its standard streams.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Invoker runs the engine binary on a staged dataset.
type Invoker struct {
	// Binary is the path to the engine executable.
	Binary string
}

// Invoke runs the engine with the dataset path and category as its two
// positional arguments. The arguments go straight into argv — no shell
// sits in between, so metacharacters in the path or category are inert.
//
// A non-zero exit is not an error here; it comes back in the Outcome for
// classification. Invoke errors only when the process cannot be started
// or the context ends first. Deadline expiry returns a Timeout *Error.
func (inv *Invoker) Invoke(ctx context.Context, datasetPath, category string) (Outcome, error) {
	cmd := exec.Command(inv.Binary, datasetPath, category)

	// Own process group so a timed-out engine and its children die together
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Outcome{}, fmt.Errorf("failed to start engine %s: %w", inv.Binary, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var err error
	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		}
		<-done

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Outcome{}, &Error{Kind: ErrTimeout, Stderr: stderr.String()}
		}

		return Outcome{}, fmt.Errorf("engine invocation cancelled: %w", ctx.Err())
	case err = <-done:
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Outcome{}, fmt.Errorf("engine execution failed: %w", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return Outcome{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

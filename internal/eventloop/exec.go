package eventloop

import (
	"os/exec"
	"syscall"

	"go.uber.org/zap"
)

// execer implements command.Exec: it forks a detached `sh -c` child and
// does not wait on it (spec §5's "exec is detached via double-fork or
// equivalent; the WM does not wait on them except to reap zombies in a
// SIGCHLD handler"). Setsid puts the child in its own session so it
// survives outliving the WM process the way a real double-fork would,
// without the complexity of doing a literal double-fork in Go.
type execer struct {
	log *zap.Logger
}

func newExecer(log *zap.Logger) *execer {
	if log == nil {
		log = zap.NewNop()
	}
	return &execer{log: log}
}

// Exec runs cmdline through the shell, detached. Per spec §7's
// "exec failures are reported only via log; the command still returns
// Success", the caller (command.cmdExec) ignores this error for result
// purposes and only logs it.
func (e *execer) Exec(cmdline string) error {
	cmd := exec.Command("/bin/sh", "-c", cmdline)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reaping happens in the SIGCHLD handler (sigchld.go), not here —
	// calling Wait would block this goroutine on a process we intend to
	// outlive.
	return nil
}

package eventloop

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// reapChildren listens for SIGCHLD and reaps every exited detached
// `exec` child with a non-blocking Wait4 loop, per spec §5: "the WM
// does not wait on them except to reap zombies in a SIGCHLD handler."
// It returns when ctx is canceled, the errgroup.Group's shutdown signal
// for every supervised goroutine in Loop.Run.
func reapChildren(ctx context.Context, log *zap.Logger) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGCHLD)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			for {
				var status unix.WaitStatus
				pid, err := unix.Wait4(-1, &status, unix.WNOHANG, nil)
				if pid <= 0 || err != nil {
					break
				}
				log.Debug("reaped exec child", zap.Int("pid", pid))
			}
		}
	}
}

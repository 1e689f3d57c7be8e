package system

import (
	"context"
)

// Runs operation in its own goroutine and waits for it to finish or for ctx
// to be cancelled.
//
// The operation receives an independent context that is cancelled when ctx
// is. On cancellation RunWithContext still waits for the operation to return,
// so callers never race with work that is still touching their buffers.
//
// Returns:
//   - nil if the operation completes successfully.
//   - the operation's error otherwise, which is usually ctx.Err() when it
//     noticed the cancellation.
func RunWithContext(ctx context.Context, operation func(context.Context) error) error {
	// Fail fast if the caller was already cancelled.
	if err := ctx.Err(); err != nil {
		return err
	}

	opCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Buffered so the goroutine can always exit.
	done := make(chan error, 1)

	go func() {
		done <- operation(opCtx)
		close(done)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		if err := <-done; err != nil {
			return err
		}
		return ctx.Err()
	}
}

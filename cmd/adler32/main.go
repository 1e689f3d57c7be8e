// Command adler32 computes and verifies Adler-32 checksums and packs files
// into checksummed frame containers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamNilotpal/adler32/pkg/errors"
	"github.com/iamNilotpal/adler32/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp()
	if err := app.command().ExecuteContext(ctx); err != nil {
		log := logger.OrNop(app.log)
		if ve := errors.GetValidationError(err); ve != nil {
			log.Errorw("invalid configuration", "field", ve.Field, "value", ve.Value, "error", ve.Err)
		} else {
			log.Errorw("command failed", "error", err)
		}
		_ = log.Sync()
		stop()
		os.Exit(1)
	}
	_ = app.sync()
}

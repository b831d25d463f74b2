package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/dataspec/internal/logging"
	"github.com/roach88/dataspec/internal/store"
)

// openStore opens the configured store. Failures are reported through the
// formatter as command errors (exit code 2).
func openStore(opts *RootOptions, formatter *OutputFormatter, cmd *cobra.Command) (*store.Store, error) {
	path := opts.storePath()
	st, err := store.Open(path)
	if err != nil {
		logging.From(cmd.Context()).Error("store open failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, formatter.Fail(ExitCommandError, ErrCodeStore, err.Error())
	}
	formatter.VerboseLog("Opened store %s", path)
	return st, nil
}

// storeFailure logs a store error and reports it as a command error.
func storeFailure(formatter *OutputFormatter, cmd *cobra.Command, op string, err error) error {
	logging.From(cmd.Context()).Error("store operation failed",
		zap.String("op", op),
		zap.Error(err),
	)
	return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error())
}

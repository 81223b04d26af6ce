package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/specialistvlad/hrggo/internal/app"
)

// EnvPrefix prefixes the environment variables that override global flags,
// e.g. HRG_LOG_LEVEL or HRG_ARCHIVE.
const EnvPrefix = "HRG"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// failed marks an error raised while running a command, as opposed to a
// usage error raised while parsing it.
func failed(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// Execute runs the hrg command tree against the OS filesystem.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	return ExecuteFs(ctx, args, outW, errW, afero.NewOsFs())
}

// ExecuteFs is Execute over fs. Usage errors exit with code 2 and command
// failures with code 1.
func ExecuteFs(ctx context.Context, args []string, outW, errW io.Writer, fs afero.Fs) error {
	root := NewRootCommand(outW, errW, fs)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 2, Message: fmt.Sprintf("%v\nRun 'hrg --help' for usage.", err)}
}

// NewRootCommand builds the hrg command tree. Global flags are bound through
// viper so each can also be set from the environment.
func NewRootCommand(outW, errW io.Writer, fs afero.Fs) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var a *app.App
	root := &cobra.Command{
		Use:           "hrg",
		Short:         "Inspect and convert heterogeneous relation graph documents.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			a = app.NewApp(outW, errW, cfg, fs)
			return nil
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)

	defaults := app.DefaultConfig()
	flags := root.PersistentFlags()
	flags.String("log-level", defaults.LogLevel, "Logging level: debug, info, warn or error.")
	flags.String("log-format", defaults.LogFormat, "Log output format: text or json.")
	flags.String("archive", defaults.ArchivePath, "Path to the archive database.")
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})

	appRef := func() *app.App { return a }
	root.AddCommand(
		newConvertCommand(appRef),
		newValidateCommand(appRef),
		newStatsCommand(appRef),
		newDigestCommand(appRef),
		newArchiveCommand(appRef),
	)
	return root
}

func loadConfig(v *viper.Viper) (*app.Config, error) {
	var cfg app.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return app.NewConfig(cfg)
}

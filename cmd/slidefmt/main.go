package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidefmt/internal/adapters/primary/cli"
	"github.com/fredcamaral/slidefmt/internal/adapters/secondary/config"
	"github.com/fredcamaral/slidefmt/internal/adapters/secondary/logging"
	"github.com/fredcamaral/slidefmt/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/slidefmt/internal/adapters/secondary/slides"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
	"github.com/fredcamaral/slidefmt/internal/domain/services"
)

var (
	// Version is set during build
	Version = "dev"

	// BuildDate is set during build
	BuildDate = "unknown"
)

// newRootCmd builds the root command. Running it starts the interactive session.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slidefmt",
		Short: "Create or restyle PowerPoint presentations",
		Long: `slidefmt creates a .pptx presentation from a set of title and content
records, or restyles an existing one so that every text run uses a single
font family, size and color.

It asks whether to create or modify a presentation and for its filename.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSession,
	}

	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringP("config", "c", "", "Config file (default: ./slidefmt.toml)")

	cmd.Flags().String("font", "", "Font family applied to every run (overrides config)")
	cmd.Flags().Float64("title-size", 0, "Title font size in points (overrides config)")
	cmd.Flags().Float64("content-size", 0, "Content font size in points (overrides config)")
	cmd.Flags().String("slides", "", "YAML file with the slides to create (overrides config)")

	cmd.AddCommand(newConfigCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSession(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	workingDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	configService := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())
	finalConfig, err := configService.LoadConfig(ctx, workingDir, flagValues(cmd))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, closer := logging.New(finalConfig.Logging, cmd.ErrOrStderr())
	defer func() { _ = closer.Close() }()

	fs := ports.NewRealFileSystem()
	service := services.NewPresentationService(
		pptx.NewRepository(fs, logger),
		slides.NewYAMLSource(fs, logger),
		services.PresentationOptionsFromConfig(finalConfig),
		logger,
	)

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	return cli.NewSession(prompter, service, finalConfig.Output, logger).Run(ctx)
}

// flagValues collects the flags the user set into the map the config merger reads
func flagValues(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	for _, name := range []string{"config", "font", "slides"} {
		if cmd.Flags().Changed(name) {
			value, _ := cmd.Flags().GetString(name)
			flags[name] = value
		}
	}
	for _, name := range []string{"title-size", "content-size"} {
		if cmd.Flags().Changed(name) {
			value, _ := cmd.Flags().GetFloat64(name)
			flags[name] = value
		}
	}
	if cmd.Flags().Changed("verbose") {
		verbose, _ := cmd.Flags().GetBool("verbose")
		flags["verbose"] = verbose
	}

	return flags
}

// execute runs the root command with the given arguments and streams, for tests
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(ctx)
}

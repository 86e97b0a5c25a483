package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidefmt/internal/adapters/secondary/config"
	"github.com/fredcamaral/slidefmt/internal/domain/services"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage slidefmt configuration",
		Long: `Inspect and create slidefmt configuration files.

Settings are read from ~/.config/slidefmt/config.toml, then ./slidefmt.toml,
then the file given with --config, then SLIDEFMT_* environment variables
and finally command line flags.`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("local", false, "Write ./slidefmt.toml instead of the global file")
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	cmd.AddCommand(
		initCmd,
		&cobra.Command{
			Use:   "path",
			Short: "Show where configuration files are read from",
			Args:  cobra.NoArgs,
			RunE:  runConfigPath,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as TOML",
			Args:  cobra.NoArgs,
			RunE:  runConfigShow,
		},
	)
	return cmd
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	loader := config.NewTOMLLoader()
	local, _ := cmd.Flags().GetBool("local")
	force, _ := cmd.Flags().GetBool("force")

	path := loader.GetGlobalPath()
	if local {
		workingDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		path = loader.GetLocalPath(workingDir)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if local {
		if err := loader.CreateDefaults(cmd.Context(), path); err != nil {
			return err
		}
	} else {
		if err := services.NewConfigService(loader, config.NewConfigMerger()).CreateGlobalConfig(cmd.Context()); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	loader := config.NewTOMLLoader()
	workingDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "global: %s\n", loader.GetGlobalPath())
	fmt.Fprintf(out, "local:  %s\n", loader.GetLocalPath(workingDir))
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	workingDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	configService := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())
	finalConfig, err := configService.LoadConfig(cmd.Context(), workingDir, flagValues(cmd))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	encoder := toml.NewEncoder(cmd.OutOrStdout())
	encoder.Indent = "  "
	return encoder.Encode(finalConfig)
}

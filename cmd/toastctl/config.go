package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toaststack/internal/config"
)

var configOpts struct {
	force  bool
	format string
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write the default configuration to the config file.

The file is written as YAML when its name ends in .yaml or .yml and as TOML
otherwise. An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a config file for errors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configValidateCmd, configPathCmd)

	for _, c := range []*cobra.Command{configInitCmd, configValidateCmd, configPathCmd} {
		c.Annotations = map[string]string{skipConfigAnnotation: "true"}
	}

	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file")
	configShowCmd.Flags().StringVarP(&configOpts.format, "format", "o", "toml",
		"Output format (toml, yaml)")
}

func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var asYAML bool
	switch configOpts.format {
	case "toml", "":
	case "yaml", "yml":
		asYAML = true
	default:
		return fmt.Errorf("unknown format %q", configOpts.format)
	}

	data, err := cfg.Marshal(asYAML)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := configPath()
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	if _, err := config.Load(path); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) && verr.Field != "" {
			return fmt.Errorf("invalid value for %s: %w", verr.Field, err)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path, "is valid")
	return nil
}

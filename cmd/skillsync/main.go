package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillsync/pkg/logger"
	"github.com/jingkaihe/skillsync/pkg/presenter"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLSYNC")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillsync")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillsync",
	Short: "Keep agent skills in sync across tools",
	Long: `skillsync keeps canonical skill definitions (SKILL.md files with YAML
frontmatter) synchronized between your source directories and the skill
directories of Claude Code, Codex, and Gemini.

Running skillsync without a subcommand lists skills and their sync status.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if level, err := cmd.Flags().GetString("log-level"); err == nil && level != "" {
			if err := logger.SetLogLevel(level); err != nil {
				presenter.Warning("Invalid log level, using default: " + err.Error())
			}
		}
		if mode, err := cmd.Flags().GetString("color"); err == nil {
			switch mode {
			case "always":
				presenter.SetColorMode(presenter.ColorAlways)
			case "never":
				presenter.SetColorMode(presenter.ColorNever)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior matches `skillsync list`.
		listCmd.Run(cmd, args)
	},
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("color", "auto", "Colored output (auto, always, never)")

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(unloadCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)

	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// Package main provides the CLI entrypoint for skilltrack.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/skilltrack/internal/calendar"
	"github.com/verte-zerg/skilltrack/internal/config"
	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/store"
	"github.com/verte-zerg/skilltrack/internal/tracker"
)

const (
	defaultDaysPerWeek   = 4
	defaultMinutesPerDay = 20
	defaultTargetDivisor = 4
	defaultCurveWindow   = 4
	defaultLogLevel      = "warn"
)

var defaultAllocation = model.SkillAllocation{20, 20, 15, 25, 10, 10}

var (
	rootDBPath   string
	rootLogLevel string
	rootConfig   string

	fileCfg config.FileConfig

	rootPractice practiceOptions
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "skilltrack",
		Short:             "Language study tracker",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		RunE:              rootPractice.run,
	}

	rootCmd.PersistentFlags().StringVar(&rootDBPath, "db", config.DefaultDBPath(), "database path")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootConfig, "config", config.DefaultConfigPath(), "config file path")
	addPracticeFlags(rootCmd, &rootPractice)

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGoalsCmd())
	rootCmd.AddCommand(newBudgetCmd())
	rootCmd.AddCommand(newAllocationCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newPracticeCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newReflectCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newMotivationCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

// setup loads the config file and configures logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(rootConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = cfg
	applyStringConfig(cmd, "db", &rootDBPath, fileCfg.DBPath)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.LogLevel)

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(rootLogLevel)))
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", rootLogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = false
	log.Logger = log.Output(
		zerolog.ConsoleWriter{
			Out:        cmd.ErrOrStderr(),
			TimeFormat: time.RFC3339,
		},
	)
	log.Debug().Str("config", rootConfig).Str("db", rootDBPath).Msg("configuration loaded")
	return nil
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(rootDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}
	return st, closeFn, nil
}

// openService opens the store and returns a tracker bound to the system clock.
func openService() (*tracker.Service, func(), error) {
	st, closeFn, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return tracker.New(st, calendar.SystemClock{}), closeFn, nil
}

// notOnboardedHint adds the next step to ErrNotOnboarded.
func notOnboardedHint(err error) error {
	if errors.Is(err, tracker.ErrNotOnboarded) {
		return fmt.Errorf("%w (run: skilltrack init)", err)
	}
	return err
}

func printf(cmd *cobra.Command, format string, args ...any) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := rootConfig
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the profile and all tracked data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset deletes every record; rerun with --yes to confirm")
			}
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			if err := svc.Reset(cmd.Context()); err != nil {
				return err
			}
			return printf(cmd, "All data deleted.\n")
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# skilltrack configuration
# Uncomment a value to enable it. CLI flags override config values.

# db-path = %q
# log-level = %q          # debug, info, warn, error

[onboarding]
# days = %d               # Study days per week (1-7)
# minutes = %d            # Minutes per study day (1-240)
# listening = %d          # Percentages must add up to 100
# reading = %d
# writing = %d
# speaking = %d
# fluency = %d
# pronunciation = %d

[practice]
# skill = "speaking"      # Default timer skill (default: weakest skill this week)
# target-divisor = %d      # Timer target = today's planned minutes / divisor

[stats]
# last = 0                # Only show the last N weeks (0 = all)
# curve-window = %d        # Moving average window for the trend line
`,
		config.DefaultDBPath(),
		defaultLogLevel,
		defaultDaysPerWeek,
		defaultMinutesPerDay,
		defaultAllocation[model.Listening],
		defaultAllocation[model.Reading],
		defaultAllocation[model.Writing],
		defaultAllocation[model.Speaking],
		defaultAllocation[model.Fluency],
		defaultAllocation[model.Pronunciation],
		defaultTargetDivisor,
		defaultCurveWindow,
	)
}

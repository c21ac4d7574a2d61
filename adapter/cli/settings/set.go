package settings

import (
	"fmt"
	"strconv"

	"github.com/activepause/activepause/adapter/cli"
	"github.com/activepause/activepause/internal/reminder"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const envFile = ".env"

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and persist it to .env.

Supported keys:
  work-interval   Minutes between break reminders (10-120)
  break-duration  Minutes a break lasts

Examples:
  activepause settings set work-interval 45
  activepause settings set break-duration 5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, raw := args[0], args[1]

		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid value %q: expected a number of minutes", raw)
		}

		switch key {
		case "work-interval":
			return setWorkInterval(value)
		case "break-duration":
			return setBreakDuration(value)
		default:
			return fmt.Errorf("unknown setting %q (supported: work-interval, break-duration)", key)
		}
	},
}

func setWorkInterval(minutes int) error {
	if minutes < reminder.MinIntervalMinutes || minutes > reminder.MaxIntervalMinutes {
		return fmt.Errorf("work-interval must be between %d and %d minutes",
			reminder.MinIntervalMinutes, reminder.MaxIntervalMinutes)
	}

	if err := writeEnv("ACTIVEPAUSE_WORK_INTERVAL", strconv.Itoa(minutes)); err != nil {
		return err
	}

	if app := cli.GetApp(); app != nil && app.Scheduler != nil {
		if err := app.Scheduler.Reconfigure(minutes); err != nil {
			return err
		}
	}

	fmt.Printf("work-interval set to %d minutes.\n", minutes)
	return nil
}

func setBreakDuration(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("break-duration must be positive")
	}

	if err := writeEnv("ACTIVEPAUSE_BREAK_DURATION", strconv.Itoa(minutes)); err != nil {
		return err
	}

	if app := cli.GetApp(); app != nil {
		app.BreakDurationMinutes = minutes
	}

	fmt.Printf("break-duration set to %d minutes.\n", minutes)
	return nil
}

func writeEnv(key, value string) error {
	env, err := godotenv.Read(envFile)
	if err != nil {
		env = map[string]string{}
	}
	env[key] = value

	if err := godotenv.Write(env, envFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", envFile, err)
	}
	return nil
}

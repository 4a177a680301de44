package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"stride/internal/activity"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errs []string

	if viper.IsSet("mode") {
		if _, err := activity.Lookup(viper.GetString("mode")); err != nil {
			errs = append(errs, fmt.Sprintf("mode must be one of walk, run, cycle, got: %q", viper.GetString("mode")))
		}
	}

	if viper.IsSet("goal") {
		if goal := viper.GetFloat64("goal"); goal < 0 {
			errs = append(errs, fmt.Sprintf("goal must not be negative, got: %v", goal))
		}
	}

	for _, key := range []string{"sensor.update_interval", "location.time_interval"} {
		if viper.IsSet(key) {
			if d := viper.GetDuration(key); d <= 0 {
				errs = append(errs, fmt.Sprintf("%s must be positive, got: %v", key, d))
			}
		}
	}

	if viper.IsSet("location.distance_interval") {
		if v := viper.GetFloat64("location.distance_interval"); v < 0 {
			errs = append(errs, fmt.Sprintf("location.distance_interval must not be negative, got: %v", v))
		}
	}

	if viper.IsSet("location.permission") {
		switch p := strings.ToLower(viper.GetString("location.permission")); p {
		case "granted", "denied":
		default:
			errs = append(errs, fmt.Sprintf("location.permission must be granted or denied, got: %q", p))
		}
	}

	if viper.IsSet("replay.speed") {
		if s := viper.GetFloat64("replay.speed"); s <= 0 {
			errs = append(errs, fmt.Sprintf("replay.speed must be positive, got: %v", s))
		}
	}

	if viper.IsSet("metrics_port") {
		port := viper.GetInt("metrics_port")
		if port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("metrics_port must be between 1 and 65535, got: %d", port))
		}
	}

	if viper.GetBool("notifications.slack.enabled") && viper.GetString("notifications.slack.token") == "" {
		errs = append(errs, "notifications.slack.token is required when slack is enabled")
	}
	if viper.GetBool("notifications.discord.enabled") && viper.GetString("notifications.discord.webhook_url") == "" {
		errs = append(errs, "notifications.discord.webhook_url is required when discord is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	return nil
}

// ValidateAndExit validates the configuration and exits with a non-zero code if validation fails.
func ValidateAndExit() {
	if err := ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

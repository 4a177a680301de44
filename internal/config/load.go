package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. STRIDE_MODE.
const EnvPrefix = "STRIDE"

// Settings is the typed view of the loaded configuration.
type Settings struct {
	Mode        string  `mapstructure:"mode"`
	Goal        float64 `mapstructure:"goal"`
	Verbose     bool    `mapstructure:"verbose"`
	LogFile     string  `mapstructure:"log_file"`
	MetricsPort int     `mapstructure:"metrics_port"`

	Sensor struct {
		UpdateInterval time.Duration `mapstructure:"update_interval"`
	} `mapstructure:"sensor"`

	Location struct {
		TimeInterval     time.Duration `mapstructure:"time_interval"`
		DistanceInterval float64       `mapstructure:"distance_interval"`
		HighAccuracy     bool          `mapstructure:"high_accuracy"`
		Permission       string        `mapstructure:"permission"`
	} `mapstructure:"location"`

	Detector struct {
		CrossAxisGate bool `mapstructure:"cross_axis_gate"`
	} `mapstructure:"detector"`

	Replay struct {
		Speed float64 `mapstructure:"speed"`
	} `mapstructure:"replay"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`

	Notifications Notifications `mapstructure:"notifications"`
}

// Notifications configures the outbound goal and permission messages.
type Notifications struct {
	Slack struct {
		Enabled bool   `mapstructure:"enabled"`
		Channel string `mapstructure:"channel"`
		Token   string `mapstructure:"token"`
	} `mapstructure:"slack"`
	Discord struct {
		Enabled    bool   `mapstructure:"enabled"`
		WebhookURL string `mapstructure:"webhook_url"`
	} `mapstructure:"discord"`
	Events struct {
		OnGoalReached      bool `mapstructure:"on_goal_reached"`
		OnPermissionDenied bool `mapstructure:"on_permission_denied"`
	} `mapstructure:"events"`
}

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; a malformed one is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// SetDefaults registers every key with its default so env overrides and Unmarshal see it.
func SetDefaults() {
	viper.SetDefault("mode", "walk")
	viper.SetDefault("goal", 0)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("metrics_port", 2112)
	viper.SetDefault("metrics.enabled", false)

	viper.SetDefault("sensor.update_interval", 100*time.Millisecond)
	viper.SetDefault("location.time_interval", time.Second)
	viper.SetDefault("location.distance_interval", 0)
	viper.SetDefault("location.high_accuracy", true)
	viper.SetDefault("location.permission", "granted")
	viper.SetDefault("detector.cross_axis_gate", false)
	viper.SetDefault("replay.speed", 1.0)

	// Notification Defaults
	slackEnabled := os.Getenv("SLACK_BOT_USER_TOKEN") != ""
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#general")
	viper.SetDefault("notifications.slack.token", os.Getenv("SLACK_BOT_USER_TOKEN"))
	viper.SetDefault("notifications.discord.enabled", false)
	viper.SetDefault("notifications.discord.webhook_url", "")
	viper.SetDefault("notifications.events.on_goal_reached", true)
	viper.SetDefault("notifications.events.on_permission_denied", true)
}

// Current decodes the loaded configuration into Settings.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

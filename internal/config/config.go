package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Normalize for fields the config file leaves out.
const (
	DefaultIcon     = "🎉"
	DefaultRadius   = 25
	DefaultPostDay  = "Monday"
	DefaultPostTime = "09:30"
	DefaultTimezone = "America/Denver"
)

// Location describes a named geographic search scope with its own
// search terms and radius.
type Location struct {
	// Name is a human-friendly label used in logs and the post header.
	Name string `yaml:"name"`
	// Icon is an emoji shown in the post header.
	Icon string `yaml:"icon"`
	// SearchTerms are the keywords searched within this location.
	SearchTerms []string `yaml:"search_terms"`
	// Location is the geographic search string, e.g. "Denver, CO".
	Location string `yaml:"location"`
	// Radius is the search radius in miles.
	Radius int `yaml:"radius"`
}

// Schedule holds the weekly posting schedule and the target channel.
type Schedule struct {
	// PostDay is the weekday to post on, e.g. "Monday".
	PostDay string `yaml:"post_day"`
	// PostTime is the time of day to post at, in 24h "HH:MM" form.
	PostTime string `yaml:"post_time"`
	// Timezone is the IANA timezone the schedule is evaluated in.
	Timezone string `yaml:"timezone"`
	// ChannelID is the Discord channel to post into.
	ChannelID string `yaml:"discord_channel_id"`
}

// Config is the top-level application configuration.
type Config struct {
	Schedule  Schedule   `yaml:"schedule"`
	Locations []Location `yaml:"locations"`

	// Token is the Discord bot token, taken from the environment rather
	// than the config file.
	Token string `yaml:"-"`
}

// Load reads and parses the YAML configuration at path and fills in
// defaults for missing values. It does not validate; call Validate once
// the token has been attached.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Normalize fills in missing values with defaults so that partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.Schedule.PostDay == "" {
		c.Schedule.PostDay = DefaultPostDay
	}
	if c.Schedule.PostTime == "" {
		c.Schedule.PostTime = DefaultPostTime
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = DefaultTimezone
	}
	for i := range c.Locations {
		if c.Locations[i].Icon == "" {
			c.Locations[i].Icon = DefaultIcon
		}
		if c.Locations[i].Radius <= 0 {
			c.Locations[i].Radius = DefaultRadius
		}
	}
}

// Validate checks the configuration for fatal startup errors: missing
// token or channel, no locations, or malformed schedule fields.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("discord token is required (set DISCORD_TOKEN)")
	}
	if c.Schedule.ChannelID == "" {
		return fmt.Errorf("schedule.discord_channel_id is required")
	}
	if _, err := time.Parse("15:04", c.Schedule.PostTime); err != nil {
		return fmt.Errorf("schedule.post_time %q: expected HH:MM", c.Schedule.PostTime)
	}
	if _, err := ParseWeekday(c.Schedule.PostDay); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone %q: %w", c.Schedule.Timezone, err)
	}
	if len(c.Locations) == 0 {
		return fmt.Errorf("at least one location is required")
	}
	for _, loc := range c.Locations {
		if loc.Name == "" {
			return fmt.Errorf("location without a name")
		}
		if loc.Location == "" {
			return fmt.Errorf("location %q: location string is required", loc.Name)
		}
		if len(loc.SearchTerms) == 0 {
			return fmt.Errorf("location %q: at least one search term is required", loc.Name)
		}
	}
	return nil
}

// ParseWeekday parses a full English weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("schedule.post_day %q: expected a weekday name", name)
}

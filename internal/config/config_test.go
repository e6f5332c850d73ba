package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load("testdata/config.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Schedule.PostDay != "Monday" {
		t.Errorf("expected post_day Monday, got %q", cfg.Schedule.PostDay)
	}
	if cfg.Schedule.PostTime != "09:30" {
		t.Errorf("expected post_time 09:30, got %q", cfg.Schedule.PostTime)
	}
	if cfg.Schedule.ChannelID != "123456789012345678" {
		t.Errorf("unexpected channel ID %q", cfg.Schedule.ChannelID)
	}

	if len(cfg.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(cfg.Locations))
	}

	denver := cfg.Locations[0]
	if denver.Name != "Denver Tech" || denver.Location != "Denver, CO" {
		t.Errorf("unexpected first location: %+v", denver)
	}
	if len(denver.SearchTerms) != 3 {
		t.Errorf("expected 3 search terms, got %d", len(denver.SearchTerms))
	}
	if denver.Radius != 50 {
		t.Errorf("expected radius 50, got %d", denver.Radius)
	}

	// Second location relies on defaults
	boulder := cfg.Locations[1]
	if boulder.Icon != DefaultIcon {
		t.Errorf("expected default icon, got %q", boulder.Icon)
	}
	if boulder.Radius != DefaultRadius {
		t.Errorf("expected default radius %d, got %d", DefaultRadius, boulder.Radius)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestNormalizeScheduleDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()

	if cfg.Schedule.PostDay != DefaultPostDay {
		t.Errorf("expected default post_day, got %q", cfg.Schedule.PostDay)
	}
	if cfg.Schedule.PostTime != DefaultPostTime {
		t.Errorf("expected default post_time, got %q", cfg.Schedule.PostTime)
	}
	if cfg.Schedule.Timezone != DefaultTimezone {
		t.Errorf("expected default timezone, got %q", cfg.Schedule.Timezone)
	}
}

func validConfig() *Config {
	return &Config{
		Schedule: Schedule{
			PostDay:   "Monday",
			PostTime:  "09:30",
			Timezone:  "America/Denver",
			ChannelID: "42",
		},
		Locations: []Location{
			{Name: "Denver", Location: "Denver, CO", SearchTerms: []string{"tech"}, Radius: 25},
		},
		Token: "secret",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing token", func(c *Config) { c.Token = "" }, true},
		{"missing channel", func(c *Config) { c.Schedule.ChannelID = "" }, true},
		{"bad post time", func(c *Config) { c.Schedule.PostTime = "9:30pm" }, true},
		{"bad post day", func(c *Config) { c.Schedule.PostDay = "Someday" }, true},
		{"bad timezone", func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }, true},
		{"no locations", func(c *Config) { c.Locations = nil }, true},
		{"location without terms", func(c *Config) { c.Locations[0].SearchTerms = nil }, true},
		{"location without name", func(c *Config) { c.Locations[0].Name = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"Monday", time.Monday, false},
		{"monday", time.Monday, false},
		{"  FRIDAY ", time.Friday, false},
		{"Sunday", time.Sunday, false},
		{"Mon", time.Sunday, true},
		{"", time.Sunday, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseWeekday(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeekday(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

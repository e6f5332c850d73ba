// Package config loads the YAML configuration file describing the posting
// schedule and the locations to scrape, and validates it at startup.
//
// The Discord bot token is deliberately not part of the file; it is taken
// from the DISCORD_TOKEN environment variable and attached by the caller
// before Validate runs.
package config

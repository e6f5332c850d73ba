// Package cli implements the command-line interface for meetup-alarm.
//
// The cli package provides the Cobra-based CLI and the run orchestration:
// either a single immediate run (--now) or the long-running weekly
// schedule loop. It coordinates the scraper, filter, formatter, poster,
// and scheduler packages.
package cli

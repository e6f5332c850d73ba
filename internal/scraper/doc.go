// Package scraper fetches and parses Meetup event search results.
//
// For each configured (location, search term) pair the scraper issues
// paginated requests against the public Meetup find page and extracts
// candidate events from the JSON-LD blocks embedded in each result page.
// Requests are paced with a randomized delay, carry rotating browser
// user-agent strings, and are retried a fixed number of times before the
// pair is abandoned for the current run.
package scraper

package scraper

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sugamax/meetup-alarm/internal/config"
	"github.com/sugamax/meetup-alarm/internal/event"
	"github.com/sugamax/meetup-alarm/internal/logger"
)

const (
	// SearchBaseURL is the Meetup event search endpoint
	SearchBaseURL = "https://www.meetup.com/find/"
	// Timeout bounds a single page fetch
	Timeout = 30 * time.Second
	// MaxPages bounds pagination per (location, term) pair
	MaxPages = 3
	// FetchRetries is the retry cap for a failing page fetch
	FetchRetries = 3

	minDelay = 1 * time.Second
	maxDelay = 5 * time.Second
)

// userAgents is a small pool of browser user-agent strings rotated across
// requests.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
}

// Scraper fetches paginated Meetup search results and parses them into
// candidate events.
type Scraper struct {
	client   *http.Client
	baseURL  string
	maxPages int

	// sleep is injectable so tests can skip the inter-request delay
	sleep func(ctx context.Context, d time.Duration)
}

// New creates a Scraper with production defaults
func New() *Scraper {
	return &Scraper{
		client:   &http.Client{Timeout: Timeout},
		baseURL:  SearchBaseURL,
		maxPages: MaxPages,
		sleep:    sleepCtx,
	}
}

// FetchEvents scrapes all search terms for one location and returns every
// candidate event found. Network and parse errors are logged and narrow the
// result rather than failing the run: a page that cannot be fetched after
// retries abandons its (location, term) pair, a page that cannot be parsed
// is skipped.
func (s *Scraper) FetchEvents(ctx context.Context, loc config.Location) []*event.Event {
	var all []*event.Event

	for i, term := range loc.SearchTerms {
		if ctx.Err() != nil {
			return all
		}
		if i > 0 {
			s.sleep(ctx, requestDelay())
		}

		events, err := s.fetchTerm(ctx, term, loc)
		all = append(all, events...)
		if err != nil {
			logger.Error("abandoning search term for this run", logger.Fields{
				"location": loc.Location,
				"term":     term,
			}, err)
			continue
		}
		logger.Info("scraped search term", logger.Fields{
			"location": loc.Location,
			"term":     term,
			"events":   len(events),
		})
	}

	return all
}

// fetchTerm pages through search results for one (location, term) pair.
// Pagination stops when a page contributes no new URLs or the page cap is
// reached. Events collected before a failure are still returned.
func (s *Scraper) fetchTerm(ctx context.Context, term string, loc config.Location) ([]*event.Event, error) {
	var events []*event.Event
	seen := make(map[string]struct{})

	for page := 1; page <= s.maxPages; page++ {
		if page > 1 {
			s.sleep(ctx, requestDelay())
			if ctx.Err() != nil {
				return events, ctx.Err()
			}
		}

		pageURL := s.searchURL(term, loc, page)
		body, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			return events, fmt.Errorf("fetching page %d: %w", page, err)
		}

		pageEvents, err := ParseSearchPage(strings.NewReader(body), term)
		if err != nil {
			logger.Warn("skipping unparseable page", logger.Fields{
				"location": loc.Location,
				"term":     term,
				"page":     page,
				"url":      pageURL,
			})
			continue
		}
		logger.IncrCounter("scrape.pages", 1)

		added := 0
		for _, evt := range pageEvents {
			if _, dup := seen[evt.URL]; dup {
				continue
			}
			seen[evt.URL] = struct{}{}
			events = append(events, evt)
			added++
		}
		logger.IncrCounter("scrape.events", int64(added))

		if added == 0 {
			break
		}
	}

	return events, nil
}

// fetchPage GETs one search page, retrying transient failures up to
// FetchRetries times with exponential backoff.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (string, error) {
	var body string

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			// Client errors other than 429 will not improve on retry
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		body = string(data)
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), FetchRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return "", err
	}
	return body, nil
}

// searchURL builds the Meetup find URL for one page of results
func (s *Scraper) searchURL(term string, loc config.Location, page int) string {
	q := url.Values{}
	q.Set("suggested", "true")
	q.Set("source", "EVENTS")
	q.Set("keywords", term)
	q.Set("location", locationSlug(loc.Location))
	q.Set("distance", distanceToken(loc.Radius))
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return s.baseURL + "?" + q.Encode()
}

// locationSlug converts "Denver, CO" into Meetup's "us--co--Denver" form.
// Unparseable locations fall back to the Denver slug, matching the
// upstream search default.
func locationSlug(location string) string {
	parts := strings.SplitN(location, ",", 2)
	if len(parts) != 2 {
		logger.Warn("could not parse location string", logger.Fields{"location": location})
		return "us--co--Denver"
	}
	city := strings.ReplaceAll(strings.TrimSpace(parts[0]), " ", "-")
	state := strings.ToLower(strings.TrimSpace(parts[1]))
	if city == "" || state == "" {
		logger.Warn("could not parse location string", logger.Fields{"location": location})
		return "us--co--Denver"
	}
	return fmt.Sprintf("us--%s--%s", state, city)
}

// distanceToken maps a mile radius onto Meetup's fixed distance buckets
func distanceToken(radius int) string {
	switch {
	case radius <= 10:
		return "tenMiles"
	case radius <= 25:
		return "twentyFiveMiles"
	case radius <= 50:
		return "fiftyMiles"
	default:
		return "hundredMiles"
	}
}

// requestDelay returns a randomized pause between successive requests
func requestDelay() time.Duration {
	return minDelay + time.Duration(rand.Int63n(int64(maxDelay-minDelay)))
}

// sleepCtx waits for d or until the context is canceled
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

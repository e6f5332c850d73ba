// Package poster delivers rendered messages to the configured channel.
//
// Sends are retried a fixed number of times with exponential backoff; rate
// limits reported by the channel are honored before retrying. A message
// that still fails after retries is logged and skipped, so one bad message
// never aborts the rest of the batch.
package poster

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sugamax/meetup-alarm/internal/discord"
	"github.com/sugamax/meetup-alarm/internal/logger"
)

const (
	// SendRetries is the retry cap for one message
	SendRetries = 3
	// messagePace spaces out successive message sends
	messagePace = 2 * time.Second
)

// Sender posts a single message to a channel. *discord.Client implements
// this; tests substitute fakes.
type Sender interface {
	SendMessage(ctx context.Context, msg discord.Message) error
}

// Poster sends batches of messages through a Sender
type Poster struct {
	sender Sender

	// sleep is injectable so tests can skip the inter-message pacing
	sleep func(ctx context.Context, d time.Duration)
}

// New creates a Poster around the given sender
func New(sender Sender) *Poster {
	return &Poster{
		sender: sender,
		sleep:  sleepCtx,
	}
}

// PostAll sends each message in order, pacing successive sends. It returns
// the number of messages posted and the number skipped after exhausting
// retries. Context cancellation stops the batch at the current message.
func (p *Poster) PostAll(ctx context.Context, msgs []discord.Message) (posted, failed int) {
	for i, msg := range msgs {
		if ctx.Err() != nil {
			return posted, failed
		}
		if i > 0 {
			p.sleep(ctx, messagePace)
		}

		if err := p.send(ctx, msg); err != nil {
			logger.Error("skipping message after retries", logger.Fields{
				"message": i + 1,
				"total":   len(msgs),
			}, err)
			logger.IncrCounter("post.failed", 1)
			failed++
			continue
		}
		logger.IncrCounter("post.sent", 1)
		posted++
	}
	return posted, failed
}

// send delivers one message, retrying transient failures with backoff and
// honoring rate-limit delays reported by the sender.
func (p *Poster) send(ctx context.Context, msg discord.Message) error {
	op := func() error {
		err := p.sender.SendMessage(ctx, msg)
		if err == nil {
			return nil
		}

		var rl *discord.RateLimitError
		if errors.As(err, &rl) {
			p.sleep(ctx, rl.RetryAfter)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), SendRetries), ctx)
	return backoff.Retry(op, b)
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

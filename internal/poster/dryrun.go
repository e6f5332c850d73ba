package poster

import (
	"context"
	"fmt"
	"io"

	"github.com/sugamax/meetup-alarm/internal/discord"
)

// DryRunSender writes messages to an io.Writer instead of posting them.
// Useful for inspecting a run's output without touching the channel.
type DryRunSender struct {
	out  io.Writer
	sent int
}

// NewDryRunSender creates a dry-run sender writing to out
func NewDryRunSender(out io.Writer) *DryRunSender {
	return &DryRunSender{out: out}
}

// SendMessage prints the message that would have been posted
func (d *DryRunSender) SendMessage(_ context.Context, msg discord.Message) error {
	d.sent++
	fmt.Fprintf(d.out, "--- Message %d ---\n%s\n", d.sent, msg.Content)
	if msg.FileName != "" {
		fmt.Fprintf(d.out, "(attachment: %s, %d bytes)\n", msg.FileName, len(msg.FileBody))
	}
	fmt.Fprintln(d.out)
	return nil
}

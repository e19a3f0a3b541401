package notify

import (
	"context"
	"fmt"
	"os"
)

// ConsoleSender writes alerts to stdout. Always enabled as the fallback
// channel so a misconfigured webhook never swallows an opportunity.
type ConsoleSender struct{}

func (ConsoleSender) Send(_ context.Context, title, message string) error {
	_, err := fmt.Fprintf(os.Stdout, "\n=== %s ===\n%s\n", title, message)
	return err
}

func (ConsoleSender) Name() string {
	return "console"
}

package tools

import (
	"context"
	"fmt"
	"io"
)

// ConsoleNotifier prints messages instead of sending them.
type ConsoleNotifier struct {
	w io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (c *ConsoleNotifier) Dispatch(ctx context.Context, text string) error {
	_, err := fmt.Fprintf(c.w, "%s\n\n", text)
	return err
}

func (c *ConsoleNotifier) DispatchWithImage(ctx context.Context, text, imageURL string) error {
	if imageURL != "" {
		if _, err := fmt.Fprintf(c.w, "[image: %s]\n", imageURL); err != nil {
			return err
		}
	}
	return c.Dispatch(ctx, text)
}

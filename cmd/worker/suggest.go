package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vslstudio/vsl-backend/internal/autocomplete/client"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/coordinator"
	"go.uber.org/zap"
)

// RunSuggest asks a running API for a continuation of text, with the caret
// at the end, and prints the text with the suggestion accepted.
func RunSuggest(ctx context.Context, logger *zap.Logger, args []string, out io.Writer) error {
	if len(args) < 2 {
		return errors.New("usage: worker suggest <baseURL> <text>")
	}
	baseURL := args[0]
	text := strings.Join(args[1:], " ")
	caret := utf8.RuneCountInString(text)

	c := coordinator.New(client.NewCompletionClient(baseURL, ""), coordinator.WithLogger(logger))
	defer c.Close()

	stop := context.AfterFunc(ctx, c.ClearSuggestion)
	defer stop()

	c.RequestSuggestion(text, caret)
	c.Wait()

	ghost := c.GhostText(text, caret)
	if ghost == "" {
		logger.Info("no suggestion", zap.String("base_url", baseURL))
		return nil
	}
	accepted, _ := c.AcceptSuggestion(text, caret)
	logger.Debug("suggestion accepted", zap.String("suggestion", ghost))
	_, err := fmt.Fprintln(out, accepted)
	return err
}

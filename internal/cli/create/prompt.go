package create

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nightconcept/tscli/internal/core/feature"
)

// selectFeatures shows the feature menu and reads the user's choice: numbers
// or names separated by commas or spaces. An empty line selects nothing.
// Invalid input asks again. The prompt gives up as soon as ctx is done.
func selectFeatures(ctx context.Context, reader *bufio.Reader, w io.Writer) ([]string, error) {
	_, _ = fmt.Fprintln(w, "Check the features needed for your project:")
	for i, f := range feature.Vocabulary {
		_, _ = fmt.Fprintf(w, "  %d) %-9s %s\n", i+1, f, f.Description())
	}

	for {
		_, _ = fmt.Fprint(w, "Features (e.g. 1,3; empty for none): ")
		input, err := readLine(ctx, reader)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_, _ = fmt.Fprintln(w)
			return nil, err
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read feature selection: %w", err)
		}

		ids, parseErr := parseChoices(input)
		if parseErr == nil {
			return ids, nil
		}
		if errors.Is(err, io.EOF) {
			return nil, parseErr
		}
		_, _ = fmt.Fprintf(w, "%v\n", parseErr)
	}
}

type line struct {
	text string
	err  error
}

// readLine reads one line without blocking past ctx. A read still pending
// on cancellation is abandoned.
func readLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := make(chan line, 1)
	go func() {
		text, err := reader.ReadString('\n')
		ch <- line{text, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-ch:
		return l.text, l.err
	}
}

// parseChoices turns "1, prettier 3" into feature identifiers.
func parseChoices(input string) ([]string, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	ids := make([]string, 0, len(fields))
	for _, field := range fields {
		f, err := parseChoice(field)
		if err != nil {
			return nil, err
		}
		ids = append(ids, string(f))
	}
	return ids, nil
}

func parseChoice(field string) (feature.Feature, error) {
	if n, err := strconv.Atoi(field); err == nil {
		if n < 1 || n > len(feature.Vocabulary) {
			return "", fmt.Errorf("invalid choice %d: pick a number between 1 and %d", n, len(feature.Vocabulary))
		}
		return feature.Vocabulary[n-1], nil
	}
	for _, f := range feature.Vocabulary {
		if strings.EqualFold(field, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid choice %q", field)
}

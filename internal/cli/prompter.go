package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/finance-pro/internal/service"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// ErrInputTerminated is returned when the input stream ends before an answer.
var ErrInputTerminated = errors.New("input terminated")

// DefaultConfirmTimeout bounds how long Confirm waits for an answer.
const DefaultConfirmTimeout = 5 * time.Minute

// Prompter is the terminal host. It asks yes/no questions on the writer,
// reads answers from the reader, and rings the bell for error haptics.
type Prompter struct {
	writer      io.Writer
	reader      *bufio.Reader
	timeout     time.Duration
	assumeYes   bool
	readingLock sync.Mutex
}

var (
	_ service.Confirmer = (*Prompter)(nil)
	_ service.Vibrator  = (*Prompter)(nil)
)

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader:  bufio.NewReader(reader),
		writer:  writer,
		timeout: DefaultConfirmTimeout,
	}
}

// AssumeYes makes every confirmation succeed without reading input.
func (p *Prompter) AssumeYes(yes bool) {
	p.assumeYes = yes
}

// Confirm implements service.Confirmer. Any read failure counts as "no".
func (p *Prompter) Confirm(message string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	ok, err := p.ConfirmContext(ctx, message)
	if err != nil {
		slog.Debug("Confirmation not answered", "error", err)
		return false
	}
	return ok
}

// ConfirmContext asks message until the user answers y/yes/д/да or
// n/no/н/нет. An empty answer means no.
func (p *Prompter) ConfirmContext(ctx context.Context, message string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}

	for {
		if _, err := fmt.Fprintf(p.writer, "%s", FormatPrompt(message+" [y/N]")); err != nil {
			return false, fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(input) {
		case "y", "yes", "д", "да":
			return true, nil
		case "", "n", "no", "н", "нет":
			return false, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Invalid choice. Please answer y or n.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

// Vibrate implements service.Vibrator. Terminals have no haptics, so
// error feedback rings the bell and everything else is ignored.
func (p *Prompter) Vibrate(intensity service.HapticIntensity) {
	if intensity != service.HapticError {
		return
	}
	if _, err := fmt.Fprint(p.writer, "\a"); err != nil {
		slog.Debug("Failed to ring bell", "error", err)
	}
}

// readLine reads one trimmed line, returning early when ctx is done.
// The reading goroutine keeps running until the line arrives.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		p.readingLock.Lock()
		defer p.readingLock.Unlock()

		value, err := p.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && strings.TrimSpace(res.value) != "" {
				return strings.TrimSpace(res.value), nil
			}
			if errors.Is(res.err, io.EOF) {
				return "", ErrInputTerminated
			}
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// NewProgressBar creates the progress bar shown while importing statements.
func NewProgressBar(writer io.Writer, total int, description string) *progressbar.ProgressBar {
	if writer == nil {
		writer = os.Stdout
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

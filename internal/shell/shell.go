package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Device is the slice of the instrument the shell drives. Calls are
// synchronous; the loop never issues a second request before the first
// returns.
type Device interface {
	Write(cmd string) error
	Query(cmd string) (string, error)
	QueryRaw(cmd string) ([]byte, error)
}

// Options adjusts shell behaviour.
type Options struct {
	// Prompt is printed before each read. Leave empty for piped input.
	Prompt string
}

// Run drives the read-eval loop until the operator quits, input ends, or the
// context is cancelled. It opens with a *IDN? connectivity check and prints
// the result. Transport failures terminate the loop and surface unchanged;
// cancellation and end-of-input are normal termination, not errors.
func Run(ctx context.Context, device Device, in io.Reader, out io.Writer, opts Options) error {
	idn, err := device.Query("*IDN?")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, idn)

	lines := readLines(in)
	for {
		if opts.Prompt != "" {
			fmt.Fprint(out, opts.Prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nInterrupted.")
			fmt.Fprintln(out, "Leaving interactive shell.")
			return nil
		case text, ok := <-lines:
			if !ok {
				fmt.Fprintln(out, "Leaving interactive shell.")
				return nil
			}
			line = text
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "quit" || trimmed == "exit":
			fmt.Fprintln(out, "Leaving interactive shell.")
			return nil
		case trimmed == "":
			continue
		case strings.Contains(trimmed, "?"):
			raw, err := device.QueryRaw(trimmed)
			if err != nil {
				return err
			}
			if utf8.Valid(raw) {
				fmt.Fprintln(out, strings.TrimSpace(string(raw)))
			} else {
				fmt.Fprintf(out, "response is not valid text (%d bytes): %q\n", len(raw), raw)
			}
		default:
			if err := device.Write(trimmed); err != nil {
				return err
			}
		}
	}
}

// readLines feeds input lines through a channel so the loop can also react
// to cancellation. The reader goroutine ends with its input; when the
// process is interrupted mid-read it is torn down with the process.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	scanner := bufio.NewScanner(in)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

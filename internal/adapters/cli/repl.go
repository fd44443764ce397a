// Package cli implements the interactive query shell.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/sofirank/internal/adapters/render"
	service "github.com/okian/sofirank/internal/app"
	"github.com/okian/sofirank/internal/domain/types"
	"github.com/okian/sofirank/pkg/logger"
)

// quitLine ends the session when entered on its own.
const quitLine = "n"

const maxLineBytes = 1 << 20

// Querier resolves the shell's verbs.
type Querier interface {
	Players(ctx context.Context, prefix string) ([]types.Entry, error)
	User(ctx context.Context, rawID string) ([]types.Entry, error)
	Tags(ctx context.Context, tags ...string) ([]types.Entry, error)
	Top(ctx context.Context, rawN, position string) ([]types.Entry, error)
}

// REPL reads commands line by line and prints their results.
type REPL struct {
	q      Querier
	in     io.Reader
	out    io.Writer
	prompt string
	logger logger.Logger
}

// Option applies a configuration option to the REPL.
type Option func(*REPL)

// WithPrompt sets the string printed before each command.
func WithPrompt(p string) Option {
	return func(r *REPL) { r.prompt = p }
}

// WithLogger sets a custom logger for the shell.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a shell reading from in and writing to out.
func New(q Querier, in io.Reader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{q: q, in: in, out: out, prompt: "> "}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Named("repl")
	}
	return r
}

// Run serves commands until the quit line, end of input or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	sc := bufio.NewScanner(r.in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(r.out, r.prompt); err != nil {
			return err
		}
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == quitLine {
			return nil
		}
		if err := r.Execute(ctx, line); err != nil {
			return err
		}
	}
}

// Execute runs one command line. Query failures are printed as messages;
// only output errors are returned.
func (r *REPL) Execute(ctx context.Context, line string) error {
	tokens := Tokenize(line)
	if len(tokens) < 2 {
		return r.say("Insufficient arguments")
	}

	verb := strings.ToLower(tokens[0])
	id := uuid.NewString()
	r.logger.Debug(ctx, "command",
		logger.String("command_id", id),
		logger.String("verb", verb),
		logger.Int("args", len(tokens)-1),
	)

	var err error
	switch {
	case verb == service.VerbPlayer:
		err = r.players(ctx, StripQuotes(strings.Join(tokens[1:], " ")))
	case verb == service.VerbUser:
		err = r.user(ctx, StripQuotes(tokens[1]))
	case verb == service.VerbTags:
		tags := make([]string, len(tokens)-1)
		for i, t := range tokens[1:] {
			tags[i] = StripQuotes(t)
		}
		err = r.tags(ctx, tags)
	case strings.HasPrefix(verb, service.VerbTop):
		err = r.top(ctx, tokens[0][len(service.VerbTop):], StripQuotes(tokens[1]))
	default:
		return r.say("Invalid")
	}

	if err != nil {
		r.logger.Debug(ctx, "command failed", logger.String("command_id", id), logger.Error(err))
		return r.say(message(err))
	}
	return nil
}

func (r *REPL) players(ctx context.Context, prefix string) error {
	entries, err := r.q.Players(ctx, prefix)
	if err != nil {
		return err
	}
	return render.Players(r.out, entries)
}

func (r *REPL) user(ctx context.Context, rawID string) error {
	entries, err := r.q.User(ctx, rawID)
	if err != nil {
		return err
	}
	return render.User(r.out, entries)
}

func (r *REPL) tags(ctx context.Context, tags []string) error {
	entries, err := r.q.Tags(ctx, tags...)
	if errors.Is(err, service.ErrNoMatch) {
		return &queryError{err: err, msg: "No match found for " + strings.Join(tags, " ")}
	}
	if err != nil {
		return err
	}
	return render.Tags(r.out, entries)
}

func (r *REPL) top(ctx context.Context, rawN, position string) error {
	entries, err := r.q.Top(ctx, rawN, position)
	if errors.Is(err, service.ErrNoPlayersInPosition) {
		return &queryError{err: err, msg: "No players in position " + position}
	}
	if err != nil {
		return err
	}
	return render.Top(r.out, entries)
}

func (r *REPL) say(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}

// queryError carries the message shown for a failed query.
type queryError struct {
	err error
	msg string
}

func (e *queryError) Error() string { return e.msg }
func (e *queryError) Unwrap() error { return e.err }

func message(err error) string {
	var qe *queryError
	switch {
	case errors.As(err, &qe):
		return qe.msg
	case errors.Is(err, service.ErrInvalidUserID):
		return "Invalid user id"
	case errors.Is(err, service.ErrUserNotFound):
		return "User does not exist"
	case errors.Is(err, service.ErrInvalidTopNumber):
		return "Invalid top number"
	default:
		return "Error: " + err.Error()
	}
}

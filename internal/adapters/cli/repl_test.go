package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/okian/sofirank/internal/adapters/cli"
	service "github.com/okian/sofirank/internal/app"
	"github.com/okian/sofirank/internal/domain/types"
	"github.com/okian/sofirank/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type call struct {
	verb string
	args []string
}

type fakeQuerier struct {
	calls []call
	err   error
	rows  []types.Entry
}

func (f *fakeQuerier) record(verb string, args ...string) ([]types.Entry, error) {
	f.calls = append(f.calls, call{verb: verb, args: args})
	return f.rows, f.err
}

func (f *fakeQuerier) Players(_ context.Context, prefix string) ([]types.Entry, error) {
	return f.record("player", prefix)
}

func (f *fakeQuerier) User(_ context.Context, rawID string) ([]types.Entry, error) {
	return f.record("user", rawID)
}

func (f *fakeQuerier) Tags(_ context.Context, tags ...string) ([]types.Entry, error) {
	return f.record("tags", tags...)
}

func (f *fakeQuerier) Top(_ context.Context, rawN, position string) ([]types.Entry, error) {
	return f.record("top", rawN, position)
}

func run(t *testing.T, q cli.Querier, input string) string {
	t.Helper()
	var out bytes.Buffer
	r := cli.New(q, strings.NewReader(input), &out, cli.WithPrompt(""))
	require.NoError(t, r.Run(context.Background()))
	return out.String()
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name string
		line string
		want call
	}{
		{"player joins the rest", `player "Lionel Messi"`, call{"player", []string{"Lionel Messi"}}},
		{"player with quoted span", "PLAYER 'Cristiano Ronaldo'", call{"player", []string{"Cristiano Ronaldo"}}},
		{"user strips quotes", `user "42"`, call{"user", []string{"42"}}},
		{"tags keeps each tag", "Tags 'Free Kick' \"Brazil\"", call{"tags", []string{"Free Kick", "Brazil"}}},
		{"top splits the number", "top10 'ST'", call{"top", []string{"10", "ST"}}},
		{"top verb is case-insensitive", "TOP3 cb", call{"top", []string{"3", "cb"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := &fakeQuerier{}
			run(t, q, tc.line+"\n")
			require.Len(t, q.calls, 1)
			assert.Equal(t, tc.want, q.calls[0])
		})
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name string
		line string
		err  error
		want string
	}{
		{"too few tokens", "player", nil, "Insufficient arguments"},
		{"blank line", "", nil, "Insufficient arguments"},
		{"unknown verb", "coach Guardiola", nil, "Invalid"},
		{"bad user id", "user abc", service.ErrInvalidUserID, "Invalid user id"},
		{"unknown user", "user 7", service.ErrUserNotFound, "User does not exist"},
		{"bad top number", "topx ST", service.ErrInvalidTopNumber, "Invalid top number"},
		{"unknown position", "top5 'GK'", service.ErrNoPlayersInPosition, "No players in position GK"},
		{"no tag match", "tags 'Free Kick' fast", service.ErrNoMatch, "No match found for Free Kick fast"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := run(t, &fakeQuerier{err: tc.err}, tc.line+"\n")
			assert.Equal(t, tc.want+"\n", out)
		})
	}
}

func TestRunRendersResults(t *testing.T) {
	q := &fakeQuerier{rows: []types.Entry{{SofifaID: 158023, ShortName: "L. Messi", Rating: 4.5, Count: 3}}}
	out := run(t, q, "player messi\n")
	assert.Contains(t, out, "player_positions")
	assert.Contains(t, out, "L. Messi")
	assert.Contains(t, out, "4.500000")
}

func TestRunStops(t *testing.T) {
	t.Run("on a lone n", func(t *testing.T) {
		q := &fakeQuerier{}
		run(t, q, "user 1\nn\nuser 2\n")
		assert.Len(t, q.calls, 1)
	})

	t.Run("not on n with arguments or padding", func(t *testing.T) {
		q := &fakeQuerier{}
		out := run(t, q, "n \nN\nuser 3\n")
		assert.Len(t, q.calls, 1)
		assert.Equal(t, 2, strings.Count(out, "Insufficient arguments"))
	})

	t.Run("on CRLF input", func(t *testing.T) {
		q := &fakeQuerier{}
		run(t, q, "user 1\r\nn\r\nuser 2\r\n")
		assert.Len(t, q.calls, 1)
	})

	t.Run("at end of input", func(t *testing.T) {
		q := &fakeQuerier{}
		run(t, q, "user 1\nuser 2")
		assert.Len(t, q.calls, 2)
	})

	t.Run("prints the prompt", func(t *testing.T) {
		var out bytes.Buffer
		r := cli.New(&fakeQuerier{}, strings.NewReader("n\n"), &out)
		require.NoError(t, r.Run(context.Background()))
		assert.Equal(t, "> ", out.String())
	})

	t.Run("when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := cli.New(&fakeQuerier{}, strings.NewReader("user 1\n"), &bytes.Buffer{})
		require.ErrorIs(t, r.Run(ctx), context.Canceled)
	})
}

// Package render prints query results as console tables.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/okian/sofirank/internal/domain/types"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Players prints the result of a name prefix query.
func Players(w io.Writer, entries []types.Entry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{id(e), e.ShortName, e.LongName, e.Positions, rating(e.Rating), count(e)}
	}
	return write(w, []string{"sofifa_id", "short_name", "long_name", "player_positions", "rating", "count"}, rows)
}

// User prints a personalized ranking: the global mean next to the user's
// own rating.
func User(w io.Writer, entries []types.Entry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{id(e), e.ShortName, e.LongName, rating(e.Rating), rating(e.Personal), count(e)}
	}
	return write(w, personalHeaders, rows)
}

// Tags prints a tag intersection. Without a user both rating columns show
// the global mean.
func Tags(w io.Writer, entries []types.Entry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{id(e), e.ShortName, e.LongName, rating(e.Rating), rating(e.Rating), count(e)}
	}
	return write(w, personalHeaders, rows)
}

// Top prints a top-N position query with club details.
func Top(w io.Writer, entries []types.Entry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			id(e), e.ShortName, e.LongName, e.Positions,
			e.Nationality, e.ClubName, e.LeagueName,
			rating(e.Rating), count(e),
		}
	}
	return write(w, []string{
		"sofifa_id", "short_name", "long_name", "player_positions",
		"nationality", "club_name", "league_name", "rating", "count",
	}, rows)
}

// Stats prints table and index shape.
func Stats(w io.Writer, s types.Stats) error {
	rows := make([][]string, 0, len(s.Tables)+len(s.Indexes))
	for _, t := range s.Tables {
		rows = append(rows, []string{
			"table", t.Name, strconv.Itoa(t.Records), strconv.Itoa(t.Buckets),
			strconv.Itoa(t.Occupancy), rating(t.AverageChainLength),
		})
	}
	for _, x := range s.Indexes {
		rows = append(rows, []string{"index", x.Name, strconv.Itoa(x.Words), "", "", ""})
	}
	return write(w, []string{"kind", "name", "records", "buckets", "occupancy", "avg_chain_length"}, rows)
}

var personalHeaders = []string{"sofifa_id", "short_name", "long_name", "global_rating", "rating", "count"}

func write(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func id(e types.Entry) string { return strconv.FormatUint(uint64(e.SofifaID), 10) }

func count(e types.Entry) string { return strconv.FormatUint(uint64(e.Count), 10) }

func rating(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

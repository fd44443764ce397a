package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/sofirank/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

type dataset struct {
	players, ratings, tags string
}

// writeDataset writes a four-player dataset:
//
//	id  long name    positions  global mean (count)
//	1   Ann Alpha    ST, LW     3 (2)
//	2   Anna Beta    ST         4 (3)
//	3   Carl Gamma   CB         4 (1)
//	4   Dan Delta    ST         3 (2)
func writeDataset(t *testing.T) dataset {
	t.Helper()
	dir := t.TempDir()
	write := func(name string, lines ...string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	return dataset{
		players: write("players.csv",
			"sofifa_id,short_name,long_name,player_positions,nationality,club_name,league_name",
			`1,A. Alpha,Ann Alpha,"ST, LW",Brazil,Santos,Serie A`,
			`2,B. Beta,Anna Beta,ST,Spain,Sevilla,La Liga`,
			`3,C. Gamma,Carl Gamma,CB,Italy,Torino,Serie A`,
			`4,D. Delta,Dan Delta,ST,France,Nantes,Ligue 1`,
		),
		ratings: write("rating.csv",
			"user_id,sofifa_id,rating",
			"10,1,5", "10,2,3", "10,3,4",
			"11,1,1", "11,2,5", "11,4,4",
			"12,4,2", "12,2,4",
			"13,99,5",
		),
		tags: write("tags.csv",
			"user_id,sofifa_id,tag",
			"10,1,fast", "10,2,Fast", "11,4,fast",
			"11,2,strong", "12,1,strong",
			"12,3,tall",
		),
	}
}

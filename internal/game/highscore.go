package game

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	configDirName   = "pacman"
	highScoreTxtFN  = "highscore.txt"  // legacy
	highScoreJSONFN = "highscore.json" // current
	leaderboardSize = 10
)

// HighScoreRecord stores a score and the name of the player who achieved it.
type HighScoreRecord struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Leaderboard persists best scores per player name under Dir.
type Leaderboard struct {
	Dir string
}

// NewLeaderboard stores scores in dir, or UserConfigDir()/pacman when
// dir is empty.
func NewLeaderboard(dir string) (*Leaderboard, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, configDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Leaderboard{Dir: dir}, nil
}

func (lb *Leaderboard) path() string {
	return filepath.Join(lb.Dir, highScoreJSONFN)
}

// Best returns the highest record, nil when the board is empty.
func (lb *Leaderboard) Best() *HighScoreRecord {
	list := lb.Top(1)
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}

// Top returns up to n records, best first.
func (lb *Leaderboard) Top(n int) []HighScoreRecord {
	list := lb.Load()
	sort.SliceStable(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// Save upserts rec by case-insensitive name, keeping the higher score,
// and writes the JSON array atomically.
func (lb *Leaderboard) Save(rec HighScoreRecord) error {
	if rec.Score < 0 {
		return errors.New("score must be non-negative")
	}
	rec.Name = strings.TrimSpace(rec.Name)
	board := lb.Load()
	updated := false
	for i := range board {
		if strings.EqualFold(strings.TrimSpace(board[i].Name), rec.Name) {
			if rec.Score > board[i].Score {
				board[i].Score = rec.Score
			}
			updated = true
			break
		}
	}
	if !updated {
		board = append(board, rec)
	}
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return err
	}
	tmp := lb.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, lb.path())
}

// Load reads every record. It accepts a JSON array, a single JSON object,
// or the legacy text file holding a bare score.
func (lb *Leaderboard) Load() []HighScoreRecord {
	if data, err := os.ReadFile(lb.path()); err == nil {
		var arr []HighScoreRecord
		if err := json.Unmarshal(data, &arr); err == nil {
			return arr
		}
		var obj HighScoreRecord
		if err := json.Unmarshal(data, &obj); err == nil && obj.Score >= 0 {
			return []HighScoreRecord{obj}
		}
	}
	f, err := os.Open(filepath.Join(lb.Dir, highScoreTxtFN))
	if err != nil {
		return nil
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err == nil && n >= 0 {
			return []HighScoreRecord{{Score: n}}
		}
	}
	return nil
}

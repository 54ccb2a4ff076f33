package protocol

import (
	"strconv"
	"strings"

	perrors "github.com/zhubert/parley/internal/errors"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank  int
	User  string
	Coins int
}

// ParseLeaderboard parses "name,coins name,coins ..." in server order.
// An empty string is an empty board.
func ParseLeaderboard(raw string) ([]Entry, error) {
	fields := strings.Fields(raw)
	entries := make([]Entry, 0, len(fields))
	for i, f := range fields {
		user, coins, ok := strings.Cut(f, ",")
		if !ok || user == "" {
			return nil, perrors.MalformedLeaderboard(f)
		}
		n, err := strconv.Atoi(coins)
		if err != nil {
			return nil, perrors.MalformedLeaderboard(f)
		}
		entries = append(entries, Entry{Rank: i + 1, User: user, Coins: n})
	}
	return entries, nil
}

package protocol

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Lobby is the title of the shared room every client starts in.
const Lobby = "Lobby"

// Outbound command lines.
const (
	Exit               = "/exit"
	RequestLeaderboard = "/requestLeaderboard"
)

// WhisperTo builds a private message to user.
func WhisperTo(user, body string) string {
	return "/w " + user + " " + body
}

// Login builds the login line sent right after connecting.
func Login(user, passwordHash string) string {
	return "/login " + user + " " + passwordHash
}

// Register builds the account creation line.
func Register(user, passwordHash string) string {
	return "/register " + user + " " + passwordHash
}

// DeleteAccount asks the server to delete the logged-in account.
func DeleteAccount(passwordHash string) string {
	return "/delacc " + passwordHash
}

// ChangePassword asks the server to replace oldHash with newHash.
func ChangePassword(oldHash, newHash string) string {
	return "/newpass " + oldHash + " " + newHash
}

// HashPassword derives the credential the server expects: the hex SHA-512
// of the password followed by the username.
func HashPassword(password, username string) string {
	sum := sha512.Sum512([]byte(password + username))
	return hex.EncodeToString(sum[:])
}

// IsCommand reports whether text is a slash command that must go out
// verbatim.
func IsCommand(text string) bool {
	return strings.HasPrefix(text, "/")
}

// Flatten folds multi-line text onto a single line. Each line is trimmed,
// blank lines are dropped and the rest are joined with one space.
func Flatten(text string) string {
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, " ")
}

// Outgoing turns composer text into the line to send while the conversation
// titled focused is in view. Commands and Lobby messages go out as typed;
// anything typed in a private conversation becomes a whisper to that peer.
// Text spanning several lines is flattened first, so it always leaves as
// exactly one protocol line.
func Outgoing(focused, text string) string {
	text = Flatten(text)
	if focused == Lobby || IsCommand(text) {
		return text
	}
	return WhisperTo(focused, text)
}

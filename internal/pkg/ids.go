package pkg

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	RoomCodeLength   = 4
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// GenerateGameID returns the opaque identifier of a game record.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateNewSessionID returns a fresh player identifier.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// GenerateRoomCode returns 4 random uppercase alphanumeric characters.
func GenerateRoomCode() (string, error) {
	var builder strings.Builder

	limit := big.NewInt(int64(len(roomCodeAlphabet)))
	for range RoomCodeLength {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}

		builder.WriteByte(roomCodeAlphabet[n.Int64()])
	}

	return builder.String(), nil
}

// NormalizeRoomCode trims and upper-cases code. ok is false when the result is not a valid room code.
func NormalizeRoomCode(code string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	return normalized, roomCodePattern.MatchString(normalized)
}

package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LoadOrCreateIdentity returns the player identifier stored at path, creating and saving a new one
// on first use. The identifier only tells host and joiner apart; it is not a credential.
func LoadOrCreateIdentity(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read identity: %w", err)
	}

	if id := strings.TrimSpace(string(content)); id != "" {
		return id, nil
	}

	id := uuid.NewString()

	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("failed to create identity directory: %w", err)
	}

	if err = os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to save identity: %w", err)
	}

	return id, nil
}

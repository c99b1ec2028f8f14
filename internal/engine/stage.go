package engine

import (
	"fmt"
	"io"
	"os"
	"path"
)

// Stager persists uploaded dataset bytes under Dir so the engine binary
// can read them by path. Every request gets its own file, so concurrent
// uploads never overwrite each other.
type Stager struct {
	Dir string
}

// Stage writes the dataset to a file keyed by the request id and returns
// its path. The staging directory is created if missing. The caller owns
// the file and removes it when the request finishes.
func (s *Stager) Stage(id string, dataset io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	filePath := path.Join(s.Dir, fmt.Sprintf("returns_%s.csv", id))

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("dataset file creation failed: %w", err)
	}
	defer dst.Close()

	_, err = io.Copy(dst, dataset)
	if err != nil {
		_ = os.Remove(filePath)
		return "", fmt.Errorf("dataset saving error: %w", err)
	}

	return filePath, nil
}

package discharge

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// FileFetcher reads the discharge rate from a plain-text file holding a single
// decimal number. The file is written by an external process.
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a fetcher for the side-channel file at path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) FetchDischarge(_ context.Context) (float64, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, fmt.Errorf("read discharge file: %w", err)
	}
	return parseRate(string(data))
}

func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse discharge %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("parse discharge %q: out of range", s)
	}
	return v, nil
}

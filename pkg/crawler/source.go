package crawler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"cme-be/pkg/ingest"
)

var ErrSessionNotFound = errors.New("crawled session not found")

var sessionIdPattern = regexp.MustCompile(`^\d{4,6}$`)

// Source provides crawled sessions and MDB master data.
type Source interface {
	Session(ctx context.Context, sessionId string) (*ingest.OpenDataSession, error)
	Mdbs(ctx context.Context) ([]ingest.OpenDataSpeaker, error)
}

// FileSource reads the crawler output directory: one <session id>.json per
// session plus mdbs.json with the master data.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Session(ctx context.Context, sessionId string) (*ingest.OpenDataSession, error) {
	if !sessionIdPattern.MatchString(sessionId) {
		return nil, fmt.Errorf("%w: invalid id %q", ErrSessionNotFound, sessionId)
	}

	var doc ingest.OpenDataSession
	if err := readJSON(filepath.Join(s.dir, sessionId+".json"), &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionId)
		}
		return nil, err
	}
	return &doc, nil
}

func (s *FileSource) Mdbs(ctx context.Context) ([]ingest.OpenDataSpeaker, error) {
	return ReadMdbFile(filepath.Join(s.dir, "mdbs.json"))
}

// ReadMdbFile reads a JSON array of master data entries.
func ReadMdbFile(path string) ([]ingest.OpenDataSpeaker, error) {
	var speakers []ingest.OpenDataSpeaker
	if err := readJSON(path, &speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

func readJSON(path string, target interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cme-be/internal/pkg/logger"
)

// Reader picks the format reader by file extension.
type Reader struct {
	json *JSONReader
	xml  *XMLReader
}

func NewReader(resolver Resolver, mdbs MdbLookup, logger logger.ILogger) *Reader {
	return &Reader{
		json: NewJSONReader(resolver, mdbs, logger),
		xml:  NewXMLReader(resolver, logger),
	}
}

func (r *Reader) JSON() *JSONReader {
	return r.json
}

func (r *Reader) ReadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xml":
		return r.xml.Read(ctx, f)
	case ".json":
		return r.json.Read(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported transcript format %q", ext)
	}
}

package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/nestdict/internal/schema"
)

// CompileFile compiles the schema file at path. Files ending in .cue are
// compiled with CUE; YAML and JSON files are decoded as schema documents.
// Read failures wrap the underlying os error.
func CompileFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return CompileCUESource(data, path)
	}
	return CompileYAML(data)
}

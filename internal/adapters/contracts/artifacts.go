package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// bytecodeObject is the bytecode section of a Foundry artifact
type bytecodeObject struct {
	Object         string         `json:"object"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// foundryArtifact is the subset of a Foundry compilation artifact we read
type foundryArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode bytecodeObject  `json:"bytecode"`
}

// ArtifactLoaderAdapter loads Foundry artifacts from <artifacts_dir>/<Name>.sol/<Name>.json
type ArtifactLoaderAdapter struct {
	dir string

	mu    sync.Mutex
	cache map[string]*models.Artifact
}

// NewArtifactLoaderAdapter creates a new artifact loader
func NewArtifactLoaderAdapter(cfg *config.RuntimeConfig) *ArtifactLoaderAdapter {
	dir := cfg.OmamoriConfig.Contracts.ArtifactsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &ArtifactLoaderAdapter{
		dir:   dir,
		cache: make(map[string]*models.Artifact),
	}
}

// Load returns the parsed artifact of a contract
func (l *ArtifactLoaderAdapter) Load(ctx context.Context, name string) (*models.Artifact, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if artifact, ok := l.cache[name]; ok {
		return artifact, nil
	}

	path := filepath.Join(l.dir, name+".sol", name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("artifact for %s not found at %s (run forge build): %w", name, path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	artifact, err := parseArtifact(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	artifact.Path = path

	l.cache[name] = artifact
	return artifact, nil
}

func parseArtifact(name string, data []byte) (*models.Artifact, error) {
	var raw foundryArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("missing abi")
	}
	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid abi: %w", err)
	}

	if len(raw.Bytecode.LinkReferences) > 0 {
		return nil, fmt.Errorf("%s needs linked libraries, which are not supported", name)
	}

	object := raw.Bytecode.Object
	if !strings.HasPrefix(object, "0x") {
		object = "0x" + object
	}
	bytecode, err := hexutil.Decode(object)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%s has no creation bytecode (abstract contract or interface?)", name)
	}

	return &models.Artifact{
		Name:     name,
		ABI:      parsed,
		Bytecode: bytecode,
	}, nil
}

var _ usecase.ArtifactLoader = (*ArtifactLoaderAdapter)(nil)

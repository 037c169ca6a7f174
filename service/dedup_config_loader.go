package service

import (
	"github.com/textdup/textdup/domain"
	"github.com/textdup/textdup/internal/config"
)

// DedupConfigLoader merges file configuration into dedup requests.
type DedupConfigLoader struct{}

// NewDedupConfigLoader creates a new config loader service
func NewDedupConfigLoader() *DedupConfigLoader {
	return &DedupConfigLoader{}
}

// LoadAndMerge loads the configuration file named by the request (or
// discovers one) and fills every request field the caller left unset.
// Explicit request values always win over file configuration.
func (l *DedupConfigLoader) LoadAndMerge(req *domain.DedupRequest) error {
	cfg, err := config.LoadConfig(req.ConfigPath)
	if err != nil {
		return err
	}
	l.apply(req, cfg)
	return nil
}

func (l *DedupConfigLoader) apply(req *domain.DedupRequest, cfg *config.TextdupConfig) {
	if req.SignatureSize == 0 {
		req.SignatureSize = cfg.Dedup.SignatureSize
	}
	if req.NumBands == 0 {
		req.NumBands = cfg.Dedup.NumBands
	}
	if req.ShingleSize == 0 {
		req.ShingleSize = cfg.Dedup.ShingleSize
	}
	if req.MinWords == 0 {
		req.MinWords = cfg.Dedup.MinWords
	}
	if req.DefaultWeight == 0 {
		req.DefaultWeight = cfg.Dedup.DefaultWeight
	}
	if req.Seed == nil {
		req.Seed = cfg.Dedup.Seed
	}
	if req.ExpectedDocs == 0 {
		req.ExpectedDocs = cfg.Dedup.ExpectedDocs
	}
	if req.Threshold == 0 {
		req.Threshold = cfg.Dedup.Threshold
	}
	if len(req.IncludePatterns) == 0 {
		req.IncludePatterns = cfg.Input.IncludePatterns
	}
	if len(req.ExcludePatterns) == 0 {
		req.ExcludePatterns = cfg.Input.ExcludePatterns
	}
	if cfg.Input.Recursive != nil && !req.Recursive {
		req.Recursive = *cfg.Input.Recursive
	}
	if req.OutputFormat == "" && cfg.Output.Format != "" {
		req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	}
	if cfg.Output.ShowDetails != nil && !req.ShowDetails {
		req.ShowDetails = *cfg.Output.ShowDetails
	}
}

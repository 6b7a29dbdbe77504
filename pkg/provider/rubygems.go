package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildhub-lab/buildhub/pkg/logutils"
)

const rubyGemsDownloadURL = "https://rubygems.org/downloads"

// rubyGemsProvider builds a gem2rpm recipe for a gem. When a version
// is pinned the gem archive is fetched up front so the recipe works
// offline inside the builder chroot.
type rubyGemsProvider struct {
	GemName string `json:"gem_name"`
	Version string `json:"gem_version,omitempty"`
}

func newRubyGemsProvider(params []byte) (Provider, error) {
	p := &rubyGemsProvider{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, p); err != nil {
			return nil, fmt.Errorf("malformed rubygems source params: %w", err)
		}
	}
	return p, nil
}

func (p *rubyGemsProvider) Name() string { return "RubyGemsProvider" }

func (p *rubyGemsProvider) Validate() error {
	if p.GemName == "" {
		return errors.New("gem_name is required")
	}
	return nil
}

func (p *rubyGemsProvider) Produce(ctx context.Context, workdir string) error {
	if err := p.Validate(); err != nil {
		return err
	}

	gem := p.GemName
	if p.Version != "" {
		archive := fmt.Sprintf("%s-%s.gem", p.GemName, p.Version)
		gemURL := fmt.Sprintf("%s/%s", rubyGemsDownloadURL, archive)
		target := filepath.Join(workdir, archive)

		resp, err := httpClient.R().SetContext(ctx).SetOutputFile(target).Get(gemURL)
		if err != nil {
			return fmt.Errorf("fetch gem %s: %w", archive, err)
		}
		if !resp.IsSuccessState() {
			return fmt.Errorf("fetch gem %s: unexpected status %s", archive, resp.Status)
		}
		gem = "./" + archive
	}

	recipe := fmt.Sprintf("#!/bin/sh\nset -e\ngem2rpm --fetch --srpm %s\n", gem)
	if err := os.WriteFile(filepath.Join(workdir, "make_srpm.sh"), []byte(recipe), 0o755); err != nil {
		return err
	}

	logutils.Log.WithFields(logutils.Fields{"gem": p.GemName}).Info("rubygems recipe written")
	return nil
}

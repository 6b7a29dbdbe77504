package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildhub-lab/buildhub/pkg/logutils"
)

const pypiAPIURL = "https://pypi.org/pypi"

// pyPIProvider renders a pyp2rpm recipe for a PyPI package. A missing
// version is resolved against the PyPI JSON API first, so the stored
// build always records the exact version it was submitted for.
type pyPIProvider struct {
	PackageName    string   `json:"pypi_package_name"`
	PackageVersion string   `json:"pypi_package_version,omitempty"`
	PythonVersions []string `json:"python_versions,omitempty"`
}

type pypiRelease struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

func newPyPIProvider(params []byte) (Provider, error) {
	p := &pyPIProvider{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, p); err != nil {
			return nil, fmt.Errorf("malformed pypi source params: %w", err)
		}
	}
	return p, nil
}

func (p *pyPIProvider) Name() string { return "PyPIProvider" }

func (p *pyPIProvider) Validate() error {
	if p.PackageName == "" {
		return errors.New("pypi_package_name is required")
	}
	return nil
}

func (p *pyPIProvider) Produce(ctx context.Context, workdir string) error {
	if err := p.Validate(); err != nil {
		return err
	}

	version := p.PackageVersion
	if version == "" {
		var release pypiRelease
		resp, err := httpClient.R().
			SetContext(ctx).
			SetSuccessResult(&release).
			Get(fmt.Sprintf("%s/%s/json", pypiAPIURL, p.PackageName))
		if err != nil {
			return fmt.Errorf("resolve pypi package %s: %w", p.PackageName, err)
		}
		if !resp.IsSuccessState() {
			return fmt.Errorf("resolve pypi package %s: unexpected status %s", p.PackageName, resp.Status)
		}
		version = release.Info.Version
	}

	args := []string{"pyp2rpm", p.PackageName, "--srpm", "-v", version}
	for _, pv := range p.PythonVersions {
		args = append(args, "-b", pv)
	}
	recipe := fmt.Sprintf("#!/bin/sh\nset -e\n%s\n", strings.Join(args, " "))
	if err := os.WriteFile(filepath.Join(workdir, "make_srpm.sh"), []byte(recipe), 0o755); err != nil {
		return err
	}

	logutils.Log.WithFields(logutils.Fields{"package": p.PackageName, "version": version}).Info("pypi recipe written")
	return nil
}

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

// customProvider stages a user-supplied srpm-producing script together
// with a runner that installs the declared build dependencies first.
// The script itself executes inside the builder sandbox, never here.
type customProvider struct {
	Script    string `json:"script"`
	Chroot    string `json:"chroot,omitempty"`
	BuildDeps string `json:"builddeps,omitempty"`
	ResultDir string `json:"resultdir,omitempty"`
}

func newCustomProvider(params []byte) (Provider, error) {
	p := &customProvider{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, p); err != nil {
			return nil, fmt.Errorf("malformed custom source params: %w", err)
		}
	}
	return p, nil
}

func (p *customProvider) Name() string { return "CustomProvider" }

func (p *customProvider) Validate() error {
	if strings.TrimSpace(p.Script) == "" {
		return errors.New("script is required")
	}
	return nil
}

func (p *customProvider) resultDir() string {
	if p.ResultDir == "" {
		return "."
	}
	return p.ResultDir
}

func (p *customProvider) Produce(_ context.Context, workdir string) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(workdir, "script"), []byte(p.Script), 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\nset -e\n")
	if p.BuildDeps != "" {
		b.WriteString(fmt.Sprintf("dnf install -y %s\n", p.BuildDeps))
	}
	b.WriteString("./script\n")
	b.WriteString(fmt.Sprintf("cp %s/*.src.rpm . 2>/dev/null || true\n", p.resultDir()))

	if err := os.WriteFile(filepath.Join(workdir, "make_srpm.sh"), []byte(b.String()), 0o755); err != nil {
		return err
	}

	logutils.Log.WithFields(logutils.Fields{"chroot": p.Chroot}).Info("custom recipe written")
	return nil
}

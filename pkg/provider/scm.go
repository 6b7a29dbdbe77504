package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildhub-lab/buildhub/pkg/logutils"
)

// scmProvider renders a checkout-and-build recipe for a version
// control repository. The srpm build method decides which tool runs
// inside the checkout (rpkg, tito, or a plain rpmbuild on the spec).
type scmProvider struct {
	CloneURL        string `json:"clone_url"`
	Committish      string `json:"committish,omitempty"`
	Subdirectory    string `json:"subdirectory,omitempty"`
	Spec            string `json:"spec,omitempty"`
	Type            string `json:"type,omitempty"`              // git or svn, git when empty
	SrpmBuildMethod string `json:"srpm_build_method,omitempty"` // rpkg when empty
}

func newSCMProvider(params []byte) (Provider, error) {
	p := &scmProvider{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, p); err != nil {
			return nil, fmt.Errorf("malformed scm source params: %w", err)
		}
	}
	return p, nil
}

func (p *scmProvider) Name() string { return "ScmProvider" }

func (p *scmProvider) scmType() string {
	if p.Type == "" {
		return "git"
	}
	return p.Type
}

func (p *scmProvider) buildMethod() string {
	if p.SrpmBuildMethod == "" {
		return "rpkg"
	}
	return p.SrpmBuildMethod
}

func (p *scmProvider) Validate() error {
	if p.CloneURL == "" {
		return errors.New("clone_url is required")
	}
	if _, err := url.Parse(p.CloneURL); err != nil {
		return fmt.Errorf("invalid clone_url: %w", err)
	}
	switch p.scmType() {
	case "git", "svn":
	default:
		return fmt.Errorf("unsupported scm type %q", p.Type)
	}
	switch p.buildMethod() {
	case "rpkg", "tito", "tito_test", "make_srpm":
	default:
		return fmt.Errorf("unsupported srpm build method %q", p.SrpmBuildMethod)
	}
	return nil
}

func (p *scmProvider) Produce(_ context.Context, workdir string) error {
	if err := p.Validate(); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\nset -e\n")
	if p.scmType() == "svn" {
		b.WriteString(fmt.Sprintf("svn checkout %s checkout\n", p.CloneURL))
	} else {
		b.WriteString(fmt.Sprintf("git clone %s checkout\n", p.CloneURL))
	}
	dir := "checkout"
	if p.Subdirectory != "" {
		dir = filepath.Join(dir, p.Subdirectory)
	}
	b.WriteString(fmt.Sprintf("cd %s\n", dir))
	if p.Committish != "" && p.scmType() == "git" {
		b.WriteString(fmt.Sprintf("git checkout %s\n", p.Committish))
	}

	switch p.buildMethod() {
	case "tito":
		b.WriteString("tito build --srpm\n")
	case "tito_test":
		b.WriteString("tito build --test --srpm\n")
	case "make_srpm":
		b.WriteString("make srpm\n")
	default:
		spec := p.Spec
		if spec == "" {
			b.WriteString("rpkg srpm\n")
		} else {
			b.WriteString(fmt.Sprintf("rpkg srpm --spec %s\n", spec))
		}
	}

	if err := os.WriteFile(filepath.Join(workdir, "make_srpm.sh"), []byte(b.String()), 0o755); err != nil {
		return err
	}

	logutils.Log.WithFields(logutils.Fields{"clone_url": p.CloneURL, "method": p.buildMethod()}).Info("scm recipe written")
	return nil
}

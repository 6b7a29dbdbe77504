package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/buildhub-lab/buildhub/pkg/logutils"
)

// specURLProvider fetches a spec file or srpm from a URL. It backs
// both the link source type (user-hosted URL) and the upload source
// type (backend-hosted URL assigned at upload time).
type specURLProvider struct {
	URL string `json:"url"`
}

func newSpecURLProvider(params []byte) (Provider, error) {
	p := &specURLProvider{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, p); err != nil {
			return nil, fmt.Errorf("malformed specurl source params: %w", err)
		}
	}
	return p, nil
}

func (p *specURLProvider) Name() string { return "SpecUrlProvider" }

func (p *specURLProvider) Validate() error {
	if p.URL == "" {
		return errors.New("source url is required")
	}
	u, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("invalid source url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported source url scheme %q", u.Scheme)
	}
	if path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return errors.New("source url does not name a file")
	}
	return nil
}

func (p *specURLProvider) Produce(ctx context.Context, workdir string) error {
	if err := p.Validate(); err != nil {
		return err
	}

	u, _ := url.Parse(p.URL)
	target := filepath.Join(workdir, path.Base(u.Path))

	resp, err := httpClient.R().
		SetContext(ctx).
		SetOutputFile(target).
		Get(p.URL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", p.URL, err)
	}
	if !resp.IsSuccessState() {
		return fmt.Errorf("fetch %s: unexpected status %s", p.URL, resp.Status)
	}

	logutils.Log.WithFields(logutils.Fields{"url": p.URL, "target": target}).Info("spec source fetched")
	return nil
}

// Package provider maps a build's source type to the strategy that
// acquires its source material. The mapping is total over the closed
// SourceType enum; an unmapped member is a deployment defect, not a
// user error.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/imroc/req/v3"

	"github.com/buildhub-lab/buildhub/dao/model"
)

// Provider produces and validates build source material for one
// source type. Validate checks the type-specific parameters; Produce
// materializes a source recipe into workdir for the dispatcher to pick
// up.
type Provider interface {
	Name() string
	Validate() error
	Produce(ctx context.Context, workdir string) error
}

// ConfigurationError signals that a SourceType has no provider. It
// means a new enum member was added without a mapping entry here;
// callers must propagate it, never default around it.
type ConfigurationError struct {
	SourceType model.SourceType
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no provider associated with source type %d", uint8(e.SourceType))
}

// ForSourceType selects the provider for a source type. Link and
// upload share the SpecURL provider: both hand over a URL to a spec
// file or srpm, they only differ in who hosts it.
func ForSourceType(sourceType model.SourceType, params []byte) (Provider, error) {
	switch sourceType {
	case model.SourceTypeLink, model.SourceTypeUpload:
		return newSpecURLProvider(params)
	case model.SourceTypeRubyGems:
		return newRubyGemsProvider(params)
	case model.SourceTypePyPI:
		return newPyPIProvider(params)
	case model.SourceTypeSCM:
		return newSCMProvider(params)
	case model.SourceTypeCustom:
		return newCustomProvider(params)
	default:
		return nil, &ConfigurationError{SourceType: sourceType}
	}
}

var httpClient = req.C().
	SetTimeout(5 * time.Minute).
	SetUserAgent("buildhub-srpm-fetcher")

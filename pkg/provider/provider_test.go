package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildhub-lab/buildhub/dao/model"
)

func TestForSourceTypeIsTotalOverTheEnum(t *testing.T) {
	sourceTypes := []model.SourceType{
		model.SourceTypeLink,
		model.SourceTypeUpload,
		model.SourceTypeRubyGems,
		model.SourceTypePyPI,
		model.SourceTypeSCM,
		model.SourceTypeCustom,
	}

	for _, st := range sourceTypes {
		p, err := ForSourceType(st, nil)
		require.NoError(t, err, "source type %s", st)
		require.NotNil(t, p, "source type %s", st)
	}
}

func TestLinkAndUploadShareTheSpecURLProvider(t *testing.T) {
	link, err := ForSourceType(model.SourceTypeLink, nil)
	require.NoError(t, err)
	upload, err := ForSourceType(model.SourceTypeUpload, nil)
	require.NoError(t, err)

	assert.IsType(t, &specURLProvider{}, link)
	assert.IsType(t, link, upload)
}

func TestUnknownSourceTypeIsAConfigurationError(t *testing.T) {
	for _, st := range []model.SourceType{0, 42} {
		_, err := ForSourceType(st, nil)

		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr, "source type %d", st)
		assert.Equal(t, st, confErr.SourceType)
	}
}

func TestMalformedParamsFailConstruction(t *testing.T) {
	_, err := ForSourceType(model.SourceTypeCustom, []byte("{not json"))
	require.Error(t, err)
}

func TestSpecURLValidate(t *testing.T) {
	cases := []struct {
		name    string
		params  string
		wantErr bool
	}{
		{"valid", `{"url": "https://example.org/pkg.spec"}`, false},
		{"missing url", `{}`, true},
		{"bad scheme", `{"url": "ftp://example.org/pkg.spec"}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ForSourceType(model.SourceTypeLink, []byte(tc.params))
			require.NoError(t, err)
			if tc.wantErr {
				assert.Error(t, p.Validate())
			} else {
				assert.NoError(t, p.Validate())
			}
		})
	}
}

func TestRubyGemsValidateRequiresGemName(t *testing.T) {
	p, err := ForSourceType(model.SourceTypeRubyGems, []byte(`{}`))
	require.NoError(t, err)
	assert.Error(t, p.Validate())

	p, err = ForSourceType(model.SourceTypeRubyGems, []byte(`{"gem_name": "rake"}`))
	require.NoError(t, err)
	assert.NoError(t, p.Validate())
}

func TestPyPIValidateRequiresPackageName(t *testing.T) {
	p, err := ForSourceType(model.SourceTypePyPI, []byte(`{}`))
	require.NoError(t, err)
	assert.Error(t, p.Validate())
}

func TestSCMValidate(t *testing.T) {
	p, err := ForSourceType(model.SourceTypeSCM, []byte(`{"clone_url": "https://github.com/example/pkg.git"}`))
	require.NoError(t, err)
	assert.NoError(t, p.Validate())

	p, err = ForSourceType(model.SourceTypeSCM, []byte(`{"clone_url": "https://x/y.git", "srpm_build_method": "cmake"}`))
	require.NoError(t, err)
	assert.Error(t, p.Validate())
}

func TestSCMProduceWritesRecipe(t *testing.T) {
	workdir := t.TempDir()
	params := `{"clone_url": "https://github.com/example/pkg.git", "committish": "v1.2", "srpm_build_method": "tito"}`

	p, err := ForSourceType(model.SourceTypeSCM, []byte(params))
	require.NoError(t, err)
	require.NoError(t, p.Produce(context.Background(), workdir))

	recipe, err := os.ReadFile(filepath.Join(workdir, "make_srpm.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(recipe), "git clone https://github.com/example/pkg.git")
	assert.Contains(t, string(recipe), "git checkout v1.2")
	assert.Contains(t, string(recipe), "tito build --srpm")
}

func TestCustomProduceStagesScriptAndRunner(t *testing.T) {
	workdir := t.TempDir()
	params := `{"script": "#!/bin/sh\nmake srpm\n", "builddeps": "make gcc"}`

	p, err := ForSourceType(model.SourceTypeCustom, []byte(params))
	require.NoError(t, err)
	require.NoError(t, p.Produce(context.Background(), workdir))

	script, err := os.ReadFile(filepath.Join(workdir, "script"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "make srpm")

	runner, err := os.ReadFile(filepath.Join(workdir, "make_srpm.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(runner), "dnf install -y make gcc")

	info, err := os.Stat(filepath.Join(workdir, "script"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCustomValidateRequiresScript(t *testing.T) {
	p, err := ForSourceType(model.SourceTypeCustom, []byte(`{"script": "  "}`))
	require.NoError(t, err)
	assert.Error(t, p.Validate())
}

// Constants mapped to database columns.
// Gin rejects zero values on fields tagged with required, so enum
// constants start from iota + 1 to keep the zero value invalid.
package model

// User role on the platform
type Role uint8

const (
	RoleGuest Role = iota + 1
	RoleUser
	RoleAdmin
)

// Build lifecycle status
type BuildStatus uint8

const (
	BuildWaiting   BuildStatus = iota + 1 // queued, not yet claimed by a worker
	BuildImporting                        // source import in progress on the dist-git side
	BuildRunning                          // claimed and running on a builder
	BuildSucceeded
	BuildFailed
	BuildCanceled
)

var buildStatusNames = map[BuildStatus]string{
	BuildWaiting:   "waiting",
	BuildImporting: "importing",
	BuildRunning:   "running",
	BuildSucceeded: "succeeded",
	BuildFailed:    "failed",
	BuildCanceled:  "canceled",
}

func (s BuildStatus) String() string {
	if name, ok := buildStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Finished reports whether no further action can happen on the build.
// Only finished builds may be deleted.
func (s BuildStatus) Finished() bool {
	switch s {
	case BuildSucceeded, BuildFailed, BuildCanceled:
		return true
	default:
		return false
	}
}

// SourceType is the method by which build input material is obtained.
// The set is closed: every member must have a provider in pkg/provider.
type SourceType uint8

const (
	SourceTypeLink SourceType = iota + 1
	SourceTypeUpload
	SourceTypeRubyGems
	SourceTypePyPI
	SourceTypeSCM
	SourceTypeCustom
)

var sourceTypeNames = map[SourceType]string{
	SourceTypeLink:     "link",
	SourceTypeUpload:   "upload",
	SourceTypeRubyGems: "rubygems",
	SourceTypePyPI:     "pypi",
	SourceTypeSCM:      "scm",
	SourceTypeCustom:   "custom",
}

func (t SourceType) String() string {
	if name, ok := sourceTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

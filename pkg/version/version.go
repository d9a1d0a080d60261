package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Info describes the build of an executable
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Compiler  string `json:"compiler"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Source    string `json:"source,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags "-X github.com/mutablelogic/go-meteo/pkg/version.GitTag=..."
var (
	GitTag    string
	GitBranch string
)

const shortHash = 12

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, the branch, or the short commit hash, in that
// order of preference
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := setting("vcs.revision"); len(hash) >= shortHash {
		return hash[:shortHash]
	}
	return "dev"
}

// Get returns build information for the named executable
func Get(execName string) Info {
	info := Info{
		Name:     execName,
		Version:  Version(),
		Compiler: runtime.Version(),
		Tag:      GitTag,
		Branch:   GitBranch,
	}
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Source = build.Main.Path

	var goos, goarch string
	for _, s := range build.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Hash = s.Value
		case "vcs.time":
			info.BuildTime = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		case "GOOS":
			goos = s.Value
		case "GOARCH":
			goarch = s.Value
		}
	}
	if goos != "" && goarch != "" {
		info.Platform = goos + "/" + goarch
	}
	return info
}

// JSON returns the build information as indented JSON
func JSON(execName string) []byte {
	data, err := json.MarshalIndent(Get(execName), "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setting(key string) string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == key {
				return s.Value
			}
		}
	}
	return ""
}

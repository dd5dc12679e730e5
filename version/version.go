package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	// These will be set via -ldflags during build
	Version   string
	GitCommit string
	BuildTime string
)

// Info describes the running doco binary.
type Info struct {
	Version   string `json:"version,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// Get returns the version information. Values missing from -ldflags are
// filled in from the module and vcs stamps the go tool embeds, if any.
func Get() Info {
	ret := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		ret = fromBuildInfo(ret, buildInfo)
	}
	return ret
}

func fromBuildInfo(ret Info, buildInfo *debug.BuildInfo) Info {
	ret.GoVersion = buildInfo.GoVersion
	if ret.Version == "" && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		ret.Version = buildInfo.Main.Version
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if ret.GitCommit == "" {
				ret.GitCommit = setting.Value
			}
		case "vcs.time":
			if ret.BuildTime == "" {
				ret.BuildTime = setting.Value
			}
		case "vcs.modified":
			ret.Modified = setting.Value == "true"
		}
	}
	return ret
}

// String renders a one-line summary, e.g. "doco v1.2.0 (abc1234, 2026-01-02T15:04:05Z)".
func (v Info) String() string {
	version := v.Version
	if version == "" {
		version = "dev"
	}
	var details []string
	if v.GitCommit != "" {
		commit := v.GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		if v.Modified {
			commit += "-dirty"
		}
		details = append(details, commit)
	}
	if v.BuildTime != "" {
		details = append(details, v.BuildTime)
	}
	if len(details) == 0 {
		return "doco " + version
	}
	return fmt.Sprintf("doco %s (%s)", version, strings.Join(details, ", "))
}

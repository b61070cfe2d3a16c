package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

const develVersion = "(devel)"

// Set at link time with -ldflags "-X github.com/NeuralTrust/AuthShield/pkg/version.Version=...".
// Left empty, the module version recorded by the Go toolchain is used.
var (
	Version   = ""
	AppName   = "AuthShield"
	BuildDate = "unknown"
)

const fallbackVersion = "0.3.0"

// Info describes the running binary.
type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	Module    string `json:"module,omitempty"`
	Revision  string `json:"revision,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var (
	buildOnce sync.Once
	build     Info
)

func GetInfo() Info {
	buildOnce.Do(func() {
		bi, _ := debug.ReadBuildInfo()
		build = fromBuildInfo(bi)
	})
	info := build
	info.AppName = AppName
	if BuildDate != "unknown" || info.BuildDate == "" {
		info.BuildDate = BuildDate
	}
	if Version != "" {
		info.Version = Version
	}
	return info
}

func fromBuildInfo(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   fallbackVersion,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi == nil {
		return info
	}
	info.Module = bi.Main.Path
	if v := bi.Main.Version; v != "" && v != develVersion {
		info.Version = v
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		case "vcs.time":
			info.BuildDate = s.Value
		}
	}
	return info
}

package version

import "runtime/debug"

var (
	// Version is set at build time using -ldflags and falls back to the
	// module version embedded by go install.
	Version = "dev"
	// Commit is the VCS revision recorded in the build info, if any.
	Commit = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && Commit == "" {
			Commit = s.Value
		}
	}
}

// String returns the version with a short commit suffix when known.
func String() string {
	if len(Commit) >= 7 {
		return Version + "+" + Commit[:7]
	}
	return Version
}

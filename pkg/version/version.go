package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

const devVersion = "0.0.0-dev"

// Sobrescritos via -ldflags "-X github.com/diillson/aws-cost-report-go/pkg/version.Version=1.2.3".
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

func init() {
	if Version != "" && Version != devVersion {
		return
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}
	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	applyBuildInfo(bi.Main.Version, settings)
}

// applyBuildInfo preenche os campos vazios a partir do build info do Go.
// mainVersion é "(devel)" em builds locais e a tag do módulo em "go install ...@vX.Y.Z".
func applyBuildInfo(mainVersion string, settings map[string]string) {
	if mainVersion != "" && mainVersion != "(devel)" {
		Version = strings.TrimPrefix(mainVersion, "v")
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}

	if t := settings["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	if strings.EqualFold(settings["vcs.modified"], "true") && !strings.HasSuffix(Version, "-dirty") {
		Version += "-dirty"
	}
}

// FormatVersion retorna a versão com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
}

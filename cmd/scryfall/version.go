package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	scryfall "github.com/cschneid/scryfall-api"
)

// Set with -ldflags "-X main.version=... -X main.buildTimeStr=...".
// Without them, the module version and VCS stamp embedded by the Go
// toolchain are used.
var (
	version      string
	buildTimeStr string
)

const buildTimeLayout = "2006-01-02T15:04:05"

type buildInfo struct {
	version   string
	revision  string
	modified  bool
	builtAt   time.Time
	goVersion string
}

func readBuildInfo() buildInfo {
	info := buildInfo{
		version:   version,
		goVersion: strings.TrimPrefix(runtime.Version(), "go"),
	}
	if len(buildTimeStr) > 0 {
		if t, err := time.Parse(buildTimeLayout, buildTimeStr); err == nil {
			info.builtAt = t
		}
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.merge(bi)

	return info
}

// merge fills what the linker flags left empty.
func (b *buildInfo) merge(bi *debug.BuildInfo) {
	if len(b.version) == 0 && bi.Main.Version != "(devel)" {
		b.version = bi.Main.Version
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			b.revision = setting.Value
		case "vcs.modified":
			b.modified = setting.Value == "true"
		case "vcs.time":
			if b.builtAt.IsZero() {
				b.builtAt, _ = time.Parse(time.RFC3339, setting.Value)
			}
		}
	}
}

func isCommitHash(str string) bool {
	return len(str) == 40 && strings.Trim(str, "0123456789abcdef") == ""
}

func shortHash(str string) string {
	if isCommitHash(str) {
		return str[:7]
	}
	return str
}

func (b buildInfo) write(w io.Writer) {
	v := shortHash(b.version)
	if len(v) == 0 {
		v = "devel"
	}
	fmt.Fprintf(w, "scryfall version %s (library %s)\n", v, scryfall.Version)

	if len(b.revision) > 0 && b.revision != b.version {
		if b.modified {
			fmt.Fprintf(w, "Revision %s (modified)\n", shortHash(b.revision))
		} else {
			fmt.Fprintf(w, "Revision %s\n", shortHash(b.revision))
		}
	}

	if b.builtAt.IsZero() {
		fmt.Fprintf(w, "Built with Go version %s\n", b.goVersion)
	} else {
		fmt.Fprintf(w, "Built with Go version %s on %s\n", b.goVersion, b.builtAt.Format(time.RFC3339))
	}
}

func displayBuildInformation() {
	readBuildInfo().write(os.Stdout)
}

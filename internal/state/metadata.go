package state

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// versionLinePattern matches the Version key inside application.ini, e.g.
// "Version=128.0b9". Anchored so MinVersion/MaxVersion never match.
var versionLinePattern = regexp.MustCompile(`^Version\s*=\s*([0-9][0-9A-Za-z.]*)\s*$`)

// readMetadataVersion extracts the Version field from the [App] section of
// an application.ini file. A missing, unreadable, or corrupt file reports
// ok=false so the caller can fall back to the binary resource.
func readMetadataVersion(path string) (version string, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	inApp := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inApp = strings.EqualFold(line, "[App]")
			continue
		}
		if !inApp {
			continue
		}
		if m := versionLinePattern.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}

	return "", false
}

package install

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamancini/foxport/internal/types"
)

func TestLayoutPaths(t *testing.T) {
	base := t.TempDir()
	l := Layout{BaseDir: base}

	if got := l.ChannelDir(types.ChannelStable); got != filepath.Join(base, "Stable") {
		t.Errorf("ChannelDir() = %q", got)
	}
	if got := l.CoreDir(types.ChannelBeta); got != filepath.Join(base, "Beta", "core") {
		t.Errorf("CoreDir() = %q", got)
	}
	if got := l.ProfileDir(types.ChannelNightly); got != filepath.Join(base, "Nightly", "profile") {
		t.Errorf("ProfileDir() = %q", got)
	}
	if got := l.ExecutablePath(types.ChannelStable); filepath.Dir(got) != l.CoreDir(types.ChannelStable) {
		t.Errorf("ExecutablePath() = %q, want inside core dir", got)
	}
}

func TestLayoutAbsolute(t *testing.T) {
	l := Layout{BaseDir: "relative/dir"}

	if !filepath.IsAbs(l.ChannelDir(types.ChannelStable)) {
		t.Error("ChannelDir() not absolute for relative base dir")
	}
}

func TestShortcutPathPerChannel(t *testing.T) {
	l := Layout{BaseDir: t.TempDir()}

	seen := map[string]bool{}
	for _, ch := range types.AllChannels() {
		p := l.ShortcutPath(ch)
		if seen[p] {
			t.Errorf("ShortcutPath(%s) collides: %q", ch, p)
		}
		seen[p] = true
		if !strings.Contains(filepath.Base(p), ch.DisplayName()) {
			t.Errorf("ShortcutPath(%s) = %q, want channel name in filename", ch, p)
		}
	}
}

package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func setBrowserEnv(t *testing.T, inContainer bool, ci, noSandbox, browserBin string) {
	t.Helper()

	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inContainer }

	t.Setenv("CI", ci)
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")
	t.Setenv("ROD_NO_SANDBOX", noSandbox)
	t.Setenv("ROD_BROWSER_BIN", browserBin)
}

func TestForBrowserConnect_InCI(t *testing.T) {
	setBrowserEnv(t, false, "true", "", "")

	hint := ForBrowserConnect()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint = %q, want hint prefix", hint)
	}
	if !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Error("expected ROD_NO_SANDBOX suggestion in CI")
	}
	if !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Error("expected ROD_BROWSER_BIN suggestion")
	}
	if !strings.Contains(hint, ".html") {
		t.Error("expected html destination suggestion")
	}
}

func TestForBrowserConnect_InDocker(t *testing.T) {
	setBrowserEnv(t, true, "", "", "")

	if hint := ForBrowserConnect(); !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Error("expected ROD_NO_SANDBOX suggestion in Docker")
	}
}

func TestForBrowserConnect_AllConfigured(t *testing.T) {
	setBrowserEnv(t, true, "true", "1", "/usr/bin/chrome")

	hint := ForBrowserConnect()

	if strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Error("should not suggest ROD_NO_SANDBOX when already set")
	}
	if strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Error("should not suggest ROD_BROWSER_BIN when already set")
	}
	if !strings.Contains(hint, ".html") {
		t.Errorf("hint = %q, want html destination suggestion", hint)
	}
}

func TestForThemeNotFound(t *testing.T) {
	t.Parallel()

	hint := ForThemeNotFound([]string{"default", "void"})
	if !strings.Contains(hint, "available: default, void") {
		t.Errorf("ForThemeNotFound() = %q, want theme list", hint)
	}

	if hint := ForThemeNotFound(nil); !strings.Contains(hint, "theme directory") {
		t.Errorf("ForThemeNotFound(nil) = %q, want directory suggestion", hint)
	}
}

func TestForDecode(t *testing.T) {
	t.Parallel()

	if hint := ForDecode(""); !strings.Contains(hint, "read as utf8") {
		t.Errorf("ForDecode(\"\") = %q, want utf8 default", hint)
	}
	if hint := ForDecode("latin1"); !strings.Contains(hint, "read as latin1") {
		t.Errorf("ForDecode(latin1) = %q, want configured encoding", hint)
	}
}

func TestForUnsupportedFormat(t *testing.T) {
	t.Parallel()

	if hint := ForUnsupportedFormat(nil); hint != "" {
		t.Errorf("ForUnsupportedFormat(nil) = %q, want empty", hint)
	}
	if hint := ForUnsupportedFormat([]string{".md", ".html"}); !strings.Contains(hint, ".md, .html") {
		t.Errorf("ForUnsupportedFormat() = %q, want extension list", hint)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"config": ForConfigNotFound(),
		"source": ForSourceNotFound(),
		"output": ForOutputDirectory(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s hint = %q, want hint prefix", name, hint)
		}
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}

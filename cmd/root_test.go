package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/joegoldin/voxtral-voice/internal/skill"
)

func TestCommandTextJoinsArgs(t *testing.T) {
	got, err := commandText([]string{"record", "my", "message"}, strings.NewReader("ignored"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "record my message" {
		t.Errorf("expected joined args, got %q", got)
	}
}

func TestSplitConfigFlag(t *testing.T) {
	tests := []struct {
		args     []string
		wantPath string
		wantRest []string
	}{
		{[]string{"--config", "/etc/voxtral.toml", "record"}, "/etc/voxtral.toml", []string{"record"}},
		{[]string{"--config=/etc/voxtral.yaml", "quick", "record"}, "/etc/voxtral.yaml", []string{"quick", "record"}},
		{[]string{"record", "--config", "/etc/voxtral.toml"}, "", []string{"record", "--config", "/etc/voxtral.toml"}},
		{[]string{"-v", "record"}, "", []string{"-v", "record"}},
		{nil, "", nil},
	}
	for _, tt := range tests {
		path, rest, err := splitConfigFlag(tt.args)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tt.args, err)
		}
		if path != tt.wantPath {
			t.Errorf("%v: expected path %q, got %q", tt.args, tt.wantPath, path)
		}
		if strings.Join(rest, " ") != strings.Join(tt.wantRest, " ") {
			t.Errorf("%v: expected rest %v, got %v", tt.args, tt.wantRest, rest)
		}
	}
}

func TestSplitConfigFlagMissingValue(t *testing.T) {
	for _, args := range [][]string{{"--config"}, {"--config="}} {
		if _, _, err := splitConfigFlag(args); err == nil {
			t.Errorf("%v: expected an error for a missing path", args)
		}
	}
}

func TestCommandTextReadsStdin(t *testing.T) {
	got, err := commandText(nil, strings.NewReader("  quick record\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "quick record" {
		t.Errorf("expected trimmed stdin, got %q", got)
	}
}

// env points every path the command touches into a temp dir and returns it.
func env(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("VOXTRAL_BIN", filepath.Join(dir, "voxtral"))
	t.Setenv("VOXTRAL_MODEL", filepath.Join(dir, "voxtral-model"))
	t.Setenv("VOXTRAL_RECORDINGS_DIR", filepath.Join(dir, "recordings"))
	t.Setenv("VOXTRAL_RECORDER", "rec")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootMissingBinary(t *testing.T) {
	dir := env(t)

	stdout, _, err := execute(t, "", "record", "my", "message")
	if err != nil {
		t.Fatalf("command-level failures must not be process errors: %v", err)
	}
	want := "❌ Voxtral binary not found at " + filepath.Join(dir, "voxtral")
	if strings.TrimSpace(stdout) != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
	if info, err := os.Stat(filepath.Join(dir, "recordings")); err != nil || !info.IsDir() {
		t.Error("recordings directory should be created on startup")
	}
}

func TestRootHelpFlagRunsDependencyCheck(t *testing.T) {
	env(t)

	stdout, _, err := execute(t, "", "--help")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "❌ Voxtral binary not found") {
		t.Errorf("expected dependency error before help, got %q", stdout)
	}
}

func TestRootEmptyInputPrintsHelp(t *testing.T) {
	env(t)

	stdout, _, err := execute(t, "   \n", []string{}...)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != skill.Help()+"\n" {
		t.Errorf("expected help text for empty input, got %q", stdout)
	}
}

func TestRootInvalidConfig(t *testing.T) {
	dir := env(t)
	path := filepath.Join(dir, "bad.toml")
	os.WriteFile(path, []byte("[record\n"), 0644)

	_, _, err := execute(t, "", "--config", path, "help")
	if err == nil || !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("expected config load error, got %v", err)
	}
}

// installStubs writes shell scripts standing in for rec and voxtral.
func installStubs(t *testing.T, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	bin := filepath.Join(dir, "bin")
	os.MkdirAll(bin, 0755)
	// rec: the output path is the 10th argument.
	rec := "#!/bin/sh\nhead -c 2048 /dev/zero > \"${10}\"\n"
	if err := os.WriteFile(filepath.Join(bin, "rec"), []byte(rec), 0755); err != nil {
		t.Fatal(err)
	}
	voxtral := "#!/bin/sh\necho '  hello world  '\n"
	if err := os.WriteFile(filepath.Join(dir, "voxtral"), []byte(voxtral), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "voxtral-model"), []byte("model"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRootRecordAndTranscribeWithStubs(t *testing.T) {
	dir := env(t)
	installStubs(t, dir)

	stdout, stderr, err := execute(t, "", "quick", "record")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "🎙️ Transcribed:\n\nhello world\n" {
		t.Errorf("unexpected response %q (stderr: %s)", stdout, stderr)
	}
	if !strings.Contains(stderr, "Recording audio") {
		t.Errorf("expected progress on stderr, got %q", stderr)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "recordings"))
	if len(entries) != 1 {
		t.Errorf("expected one recording on disk, got %d", len(entries))
	}
}

func TestRootDashWordsArePartOfTheCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"trailing help flag", []string{"record", "--help"}},
		{"leading short flag", []string{"-v", "record", "my", "message"}},
		{"leading long flag", []string{"--quick", "record"}},
		{"flag between words", []string{"voice:", "-l", "record"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := env(t)
			installStubs(t, dir)

			stdout, _, err := execute(t, "", tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if stdout != "🎙️ Transcribed:\n\nhello world\n" {
				t.Errorf("expected the record branch for %v, got %q", tt.args, stdout)
			}
		})
	}
}

func TestRootQuickFlagWordSelectsQuickDuration(t *testing.T) {
	dir := env(t)
	installStubs(t, dir)
	// rec logs its final argument, the duration cap.
	rec := "#!/bin/sh\nfor a; do last=$a; done\necho \"$last\" > \"$(dirname \"${10}\")/../cap\"\nhead -c 2048 /dev/zero > \"${10}\"\n"
	if err := os.WriteFile(filepath.Join(dir, "bin", "rec"), []byte(rec), 0755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "", "--quick", "record"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "cap"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "5" {
		t.Errorf("expected a 5 second cap, got %q", got)
	}
}

func TestRootConfigEqualsForm(t *testing.T) {
	dir := env(t)
	path := filepath.Join(dir, "bad.toml")
	os.WriteFile(path, []byte("[transcribe]\ntimeout = 0\n"), 0644)

	_, _, err := execute(t, "", "--config="+path, "record")
	if err == nil || !strings.Contains(err.Error(), "transcribe.timeout") {
		t.Errorf("expected validation error for the given config, got %v", err)
	}
}

func TestRootReadsCommandFromStdin(t *testing.T) {
	dir := env(t)
	installStubs(t, dir)

	stdout, _, err := execute(t, "transcribe\n", []string{}...)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != "Use 'voice: record my message' to record and transcribe." {
		t.Errorf("unexpected response %q", stdout)
	}
}

package organizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"filesort/internal/category"
	"filesort/internal/fileutil"
	"filesort/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be gone, stat err=%v", path, err)
	}
}

func newTestEngine(opts ...Option) *Engine {
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	base := []Option{WithLogger(logging.NewNop()), WithClock(func() time.Time { return fixed })}
	return New(category.Default(""), append(base, opts...)...)
}

func movedTo(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.MovedTo)
	}
	return out
}

func TestOrganizeFlatMovesIntoCategories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "photo.JPG"), "jpg")
	writeFile(t, filepath.Join(root, "notes.txt"), "txt")
	writeFile(t, filepath.Join(root, "README"), "readme")
	writeFile(t, filepath.Join(root, "nested", "deep.mp3"), "mp3")

	res, err := newTestEngine().Organize(context.Background(), Request{Root: root})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	want := []string{"Others/README", "Documents/notes.txt", "Images/photo.JPG"}
	got := movedTo(res.Records)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("records = %v, want %v", got, want)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Diagnostics)
	}
	if res.Scanned != 3 {
		t.Fatalf("scanned = %d, want 3", res.Scanned)
	}
	if got := readFile(t, filepath.Join(root, "Images", "photo.JPG")); got != "jpg" {
		t.Fatalf("moved content = %q", got)
	}
	assertMissing(t, filepath.Join(root, "photo.JPG"))
	// Flat mode leaves subdirectories alone.
	if got := readFile(t, filepath.Join(root, "nested", "deep.mp3")); got != "mp3" {
		t.Fatalf("nested file content = %q", got)
	}
	if res.Records[0].OriginalName != "README" || res.Records[0].Category != "Others" {
		t.Fatalf("unexpected first record: %+v", res.Records[0])
	}
	if res.RunID == "" {
		t.Fatal("expected run id")
	}
}

func TestOrganizeCollisionScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), "new-a")
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "Images", "a.jpg"), "old-a")

	res, err := newTestEngine().Organize(context.Background(), Request{Root: root})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	want := []string{"Images/a(1).jpg", "Documents/b.txt"}
	if got := movedTo(res.Records); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("records = %v, want %v", got, want)
	}
	if got := readFile(t, filepath.Join(root, "Images", "a.jpg")); got != "old-a" {
		t.Fatalf("existing file overwritten: %q", got)
	}
	if got := readFile(t, filepath.Join(root, "Images", "a(1).jpg")); got != "new-a" {
		t.Fatalf("renamed file content = %q", got)
	}
	if res.Records[0].OriginalName != "a.jpg" {
		t.Fatalf("original name = %q", res.Records[0].OriginalName)
	}
}

func TestOrganizeIsIdempotentInFlatMode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"), "a")
	writeFile(t, filepath.Join(root, "b.zip"), "b")

	engine := newTestEngine()
	if _, err := engine.Organize(context.Background(), Request{Root: root}); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	res, err := engine.Organize(context.Background(), Request{Root: root})
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(res.Records) != 0 || len(res.Diagnostics) != 0 {
		t.Fatalf("second pass should be a no-op, got records=%v diagnostics=%v", res.Records, res.Diagnostics)
	}
}

func TestOrganizeExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), "a")
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "c.TXT"), "c")

	res, err := newTestEngine().Organize(context.Background(), Request{Root: root, Extensions: []string{"TXT"}})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	want := []string{"Documents/b.txt", "Documents/c.TXT"}
	if got := movedTo(res.Records); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("records = %v, want %v", got, want)
	}
	if res.Filtered != 1 {
		t.Fatalf("filtered = %d, want 1", res.Filtered)
	}
	if got := readFile(t, filepath.Join(root, "a.jpg")); got != "a" {
		t.Fatalf("filtered file touched: %q", got)
	}
	if len(res.Extensions) != 1 || res.Extensions[0] != ".txt" {
		t.Fatalf("normalized extensions = %v", res.Extensions)
	}
}

func TestOrganizeIsolatesPerFileFailures(t *testing.T) {
	root := t.TempDir()
	// A regular file occupies the Images folder name, so Images cannot be created.
	writeFile(t, filepath.Join(root, "Images"), "blocker")
	writeFile(t, filepath.Join(root, "a.jpg"), "a")
	writeFile(t, filepath.Join(root, "b.txt"), "b")

	var streamed []Diagnostic
	engine := newTestEngine(WithDiagnosticHook(func(d Diagnostic) { streamed = append(streamed, d) }))
	res, err := engine.Organize(context.Background(), Request{Root: root, Extensions: []string{".jpg", ".txt"}})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if got := movedTo(res.Records); len(got) != 1 || got[0] != "Documents/b.txt" {
		t.Fatalf("records = %v", got)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", res.Diagnostics)
	}
	diag := res.Diagnostics[0]
	if diag.Kind != KindDirectoryCreate || diag.Severity != SeverityError || diag.Category != "Images" {
		t.Fatalf("unexpected diagnostic: %+v", diag)
	}
	if !errors.Is(diag.Err, ErrDirectoryCreate) {
		t.Fatalf("diagnostic error %v is not ErrDirectoryCreate", diag.Err)
	}
	if len(streamed) != 1 {
		t.Fatalf("hook saw %d diagnostics, want 1", len(streamed))
	}
	if got := readFile(t, filepath.Join(root, "a.jpg")); got != "a" {
		t.Fatalf("failed file should stay in place, got %q", got)
	}
	if res.Failed() != 1 {
		t.Fatalf("Failed() = %d, want 1", res.Failed())
	}
}

func TestOrganizeFatalScan(t *testing.T) {
	base := t.TempDir()
	notDir := filepath.Join(base, "file.txt")
	writeFile(t, notDir, "x")

	tests := []struct {
		name string
		root string
	}{
		{name: "missing", root: filepath.Join(base, "missing")},
		{name: "not a directory", root: notDir},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, recursive := range []bool{false, true} {
				res, err := newTestEngine().Organize(context.Background(), Request{Root: tc.root, Recursive: recursive})
				if !errors.Is(err, ErrFatalScan) {
					t.Fatalf("recursive=%v: err = %v, want ErrFatalScan", recursive, err)
				}
				if len(res.Records) != 0 {
					t.Fatalf("records = %v, want none", res.Records)
				}
				if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != KindFatalScan {
					t.Fatalf("diagnostics = %+v", res.Diagnostics)
				}
			}
		})
	}
	if got := readFile(t, notDir); got != "x" {
		t.Fatalf("root file touched: %q", got)
	}
}

func TestOrganizeRecursiveSkipsFilesAlreadyInPlace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Images", "kept.jpg"), "kept")
	writeFile(t, filepath.Join(root, "Images", "stray.txt"), "stray")
	writeFile(t, filepath.Join(root, "trip", "day1", "beach.png"), "beach")
	writeFile(t, filepath.Join(root, "song.mp3"), "song")

	res, err := newTestEngine().Organize(context.Background(), Request{Root: root, Recursive: true})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	want := []string{"Documents/stray.txt", "Music/song.mp3", "Images/beach.png"}
	if got := movedTo(res.Records); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("records = %v, want %v", got, want)
	}
	if res.AlreadySorted != 1 {
		t.Fatalf("already sorted = %d, want 1", res.AlreadySorted)
	}
	if got := readFile(t, filepath.Join(root, "Images", "kept.jpg")); got != "kept" {
		t.Fatalf("kept file content = %q", got)
	}
	assertMissing(t, filepath.Join(root, "trip", "day1", "beach.png"))

	again, err := newTestEngine().Organize(context.Background(), Request{Root: root, Recursive: true})
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(again.Records) != 0 {
		t.Fatalf("second recursive pass moved %v", movedTo(again.Records))
	}
}

func TestOrganizeRecursiveRenamesDuplicateNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "report.pdf"), "first")
	writeFile(t, filepath.Join(root, "b", "report.pdf"), "second")
	writeFile(t, filepath.Join(root, "c", "report.pdf"), "third")

	res, err := newTestEngine().Organize(context.Background(), Request{Root: root, Recursive: true})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	want := []string{"Documents/report.pdf", "Documents/report(1).pdf", "Documents/report(2).pdf"}
	if got := movedTo(res.Records); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("records = %v, want %v", got, want)
	}
	if got := readFile(t, filepath.Join(root, "Documents", "report(2).pdf")); got != "third" {
		t.Fatalf("third copy content = %q", got)
	}
}

func TestOrganizeCrossDeviceMove(t *testing.T) {
	restore := fileutil.SetRenameForTests(func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: unix.EXDEV}
	})
	t.Cleanup(restore)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "clip.mkv"), "frames")

	res, err := newTestEngine().Organize(context.Background(), Request{Root: root})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if got := movedTo(res.Records); len(got) != 1 || got[0] != "Videos/clip.mkv" {
		t.Fatalf("records = %v", got)
	}
	if got := readFile(t, filepath.Join(root, "Videos", "clip.mkv")); got != "frames" {
		t.Fatalf("copied content = %q", got)
	}
	assertMissing(t, filepath.Join(root, "clip.mkv"))
}

func TestOrganizeMoveFailureBecomesDiagnostic(t *testing.T) {
	restore := fileutil.SetRenameForTests(func(string, string) error {
		return os.ErrPermission
	})
	t.Cleanup(restore)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.gif"), "a")
	writeFile(t, filepath.Join(root, "b.gif"), "b")

	res, err := newTestEngine().Organize(context.Background(), Request{Root: root})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if len(res.Records) != 0 {
		t.Fatalf("records = %v, want none", res.Records)
	}
	if len(res.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %+v, want 2", res.Diagnostics)
	}
	for _, d := range res.Diagnostics {
		if d.Kind != KindMove || !errors.Is(d.Err, ErrMove) || !errors.Is(d.Err, os.ErrPermission) {
			t.Fatalf("unexpected diagnostic %+v", d)
		}
	}
}

func TestOrganizeStopsOnCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "c.txt"), "c")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine := newTestEngine(WithRecordHook(func(Record) { cancel() }))

	res, err := engine.Organize(ctx, Request{Root: root})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := movedTo(res.Records); len(got) != 1 || got[0] != "Documents/a.txt" {
		t.Fatalf("records = %v", got)
	}
	if got := readFile(t, filepath.Join(root, "b.txt")); got != "b" {
		t.Fatalf("b.txt content = %q", got)
	}
}

func TestOrganizeUsesRunIDFromContext(t *testing.T) {
	root := t.TempDir()
	ctx := logging.WithRunID(context.Background(), "run-fixed")
	res, err := newTestEngine().Organize(ctx, Request{Root: root})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if res.RunID != "run-fixed" {
		t.Fatalf("run id = %q", res.RunID)
	}
	if len(res.Records) != 0 || len(res.Diagnostics) != 0 {
		t.Fatalf("empty root should produce nothing: %+v", res)
	}
}

func TestOrganizeIgnoresSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "target.txt")
	writeFile(t, target, "t")
	if err := os.Symlink(target, filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res, err := newTestEngine().Organize(context.Background(), Request{Root: root})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if res.Scanned != 0 || len(res.Records) != 0 {
		t.Fatalf("symlink should be ignored: %+v", res)
	}
}

func TestOrganizeRecursiveFollowsSymlinkedRoot(t *testing.T) {
	real := t.TempDir()
	writeFile(t, filepath.Join(real, "a.jpg"), "a")
	writeFile(t, filepath.Join(real, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(real, "Images", "c.png"), "c")
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res, err := newTestEngine().Organize(context.Background(), Request{Root: link, Recursive: true})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if res.Scanned != 3 || len(res.Records) != 2 || res.AlreadySorted != 1 || len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected result: scanned=%d moved=%v already=%d diags=%+v",
			res.Scanned, movedTo(res.Records), res.AlreadySorted, res.Diagnostics)
	}
	if got := readFile(t, filepath.Join(real, "Images", "a.jpg")); got != "a" {
		t.Fatalf("a.jpg content = %q", got)
	}
	if got := readFile(t, filepath.Join(real, "Documents", "b.txt")); got != "b" {
		t.Fatalf("b.txt content = %q", got)
	}
	assertMissing(t, filepath.Join(real, "sub", "b.txt"))
}

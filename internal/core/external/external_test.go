package external

import (
	"context"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireTool(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not installed", name)
	}
	return path
}

func TestRunCommand_CapturesExitCode(t *testing.T) {
	sh := requireTool(t, "sh")

	res, err := runCommand(context.Background(), nil, sh, "-c", "echo out; echo err >&2; exit 3")
	if err != nil {
		t.Fatalf("runCommand: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if strings.TrimSpace(string(res.Stdout)) != "out" || strings.TrimSpace(string(res.Stderr)) != "err" {
		t.Errorf("stdout %q stderr %q", res.Stdout, res.Stderr)
	}
}

func TestRunCommand_Stdin(t *testing.T) {
	cat := requireTool(t, "cat")

	res, err := runCommand(context.Background(), []byte("piped"), cat)
	if err != nil {
		t.Fatalf("runCommand: %v", err)
	}
	if string(res.Stdout) != "piped" || res.ExitCode != 0 {
		t.Errorf("got %q exit %d", res.Stdout, res.ExitCode)
	}
}

func TestRunCommand_MissingBinary(t *testing.T) {
	if _, err := runCommand(context.Background(), nil, "/nonexistent/tool-xyz"); err == nil {
		t.Fatal("expected error for a binary that cannot start")
	}
}

func TestRunCommand_Cancelled(t *testing.T) {
	sh := requireTool(t, "sh")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runCommand(ctx, nil, sh, "-c", "sleep 5"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestCatpptDecoder_RejectsNonCompoundFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.ppt")
	if err := os.WriteFile(path, []byte("this is not an OLE file at all, just text padding it out"), 0o600); err != nil {
		t.Fatal(err)
	}

	d := NewCatpptDecoder("/nonexistent/catppt")
	_, err := d.Decode(context.Background(), path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "OLE compound document") {
		t.Errorf("err = %v", err)
	}
}

func TestNewPdftoppmRasterizer_MissingBinary(t *testing.T) {
	if _, err := NewPdftoppmRasterizer("/nonexistent/pdftoppm", 2); err == nil {
		t.Fatal("expected error")
	}
}

func TestPdftoppmRasterizer_RejectsInvalidPDF(t *testing.T) {
	bin := requireTool(t, "pdftoppm")
	r, err := NewPdftoppmRasterizer(bin, 2)
	if err != nil {
		t.Fatalf("NewPdftoppmRasterizer: %v", err)
	}
	if _, err := r.Rasterize(context.Background(), []byte("not a pdf"), 72); err == nil {
		t.Fatal("expected error for invalid PDF")
	}
}

func TestTesseractEngine_BlankImage(t *testing.T) {
	bin := requireTool(t, "tesseract")
	e, err := NewTesseractEngine(context.Background(), bin, "")
	if err != nil {
		t.Fatalf("NewTesseractEngine: %v", err)
	}
	lines, err := e.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 64, 64)))
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			t.Errorf("blank line leaked: %q", lines)
		}
	}
}

func TestNewTesseractEngine_MissingBinary(t *testing.T) {
	if _, err := NewTesseractEngine(context.Background(), "/nonexistent/tesseract", "eng"); err == nil {
		t.Fatal("expected startup error")
	}
}

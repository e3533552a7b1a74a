package images

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestWriteImageContentAddressed(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}

	url1, err := d.WriteImage(context.Background(), "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	if !strings.HasPrefix(url1, URLPrefix) || !strings.HasSuffix(url1, ".png") {
		t.Errorf("url = %q", url1)
	}

	// Same bytes dedupe to the same file.
	url2, err := d.WriteImage(context.Background(), "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if url2 != url1 {
		t.Errorf("duplicate write produced %q, want %q", url2, url1)
	}

	abs, err := d.Path(strings.TrimPrefix(url1, URLPrefix))
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored bytes = %q", data)
	}
}

func TestWriteImageRejectsEmpty(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.WriteImage(context.Background(), "image/png", nil); err == nil {
		t.Error("empty image accepted")
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "../etc/passwd", "a/b.png"} {
		if _, err := d.Path(name); err == nil {
			t.Errorf("Path(%q) accepted an unsafe name", name)
		}
	}
}

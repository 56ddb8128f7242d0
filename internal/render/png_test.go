package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/chesstrend/chesstrend/internal/history"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")
	entries := []history.Entry{e("2026-03-13", 1000), e("2026-03-14", 1050), e("2026-03-15", 1100)}

	if err := WritePNG(path, "t", entries); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("file is not a PNG")
	}
}

func TestWritePNG_SinglePoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")
	if err := WritePNG(path, "t", []history.Entry{e("2026-03-15", 1200)}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
}

func TestWritePNG_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")
	if err := WritePNG(path, "t", nil); err == nil {
		t.Fatal("WritePNG: expected error for empty history")
	}
}

func TestWritePNG_BadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")
	entries := []history.Entry{{Date: "15/03/2026", Rating: 1200}}
	if err := WritePNG(path, "t", entries); err == nil {
		t.Fatal("WritePNG: expected error for malformed date")
	}
}

package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	rom := bytes.Repeat([]byte{0x00, 0xC3, 0x50, 0x01}, 0x2000)

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(rom)
	w.Close()

	var zipped bytes.Buffer
	zw := zip.NewWriter(&zipped)
	f, _ := zw.Create("game.gb")
	f.Write(rom)
	zw.Close()

	var empty bytes.Buffer
	zip.NewWriter(&empty).Close()

	files := map[string][]byte{
		"game.gb":     rom,
		"game.gbc":    rom,
		"game.gb.gz":  gz.Bytes(),
		"game.zip":    zipped.Bytes(),
		"GAME.ZIP":    zipped.Bytes(),
		"empty.zip":   empty.Bytes(),
		"corrupt.zip": []byte("not a zip"),
	}
	for name, b := range files {
		if err := os.WriteFile(filepath.Join(dir, name), b, 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		err  bool
	}{
		{"game.gb", false},
		{"game.gbc", false},
		{"game.gb.gz", false},
		{"game.zip", false},
		{"GAME.ZIP", false},
		{"empty.zip", true},
		{"corrupt.zip", true},
		{"missing.gb", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := LoadFile(filepath.Join(dir, tt.name))
			if tt.err {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(b, rom) {
				t.Errorf("expected %d byte ROM, got %d bytes", len(rom), len(b))
			}
		})
	}

	t.Run("empty archive error", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(dir, "empty.zip")); !errors.Is(err, ErrEmptyArchive) {
			t.Errorf("expected ErrEmptyArchive, got %v", err)
		}
	})
}

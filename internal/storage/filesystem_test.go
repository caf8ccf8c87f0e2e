package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreWriteAndSanitize(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	key, err := store.Write(context.Background(), "audio/clip.mp3", []byte("mp3-bytes"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "audio/clip.mp3" {
		t.Fatalf("key = %q, want audio/clip.mp3", key)
	}
	data, err := os.ReadFile(filepath.Join(store.BasePath(), "audio", "clip.mp3"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Fatalf("data = %q", data)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := store.Write(context.Background(), "../escape.mp3", nil); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
}

func TestFileStoreDirStats(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	count, total, err := store.DirStats(ctx, "uploads/videos")
	if err != nil {
		t.Fatalf("DirStats on missing prefix: %v", err)
	}
	if count != 0 || total != 0 {
		t.Fatalf("missing prefix = (%d, %d), want (0, 0)", count, total)
	}

	if _, err := store.Write(ctx, "uploads/videos/a.mp4", []byte("aaaa")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := store.Write(ctx, "uploads/videos/b.mp4", []byte("bb")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := store.Write(ctx, "uploads/thumbnails/t.jpg", []byte("t")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	count, total, err = store.DirStats(ctx, "uploads/videos")
	if err != nil {
		t.Fatalf("DirStats: %v", err)
	}
	if count != 2 || total != 6 {
		t.Fatalf("DirStats = (%d, %d), want (2, 6)", count, total)
	}
}

func TestScratchKey(t *testing.T) {
	if got := ScratchKey("placeholder_audio_abc.mp3"); got != "temp/placeholder_audio_abc.mp3" {
		t.Fatalf("ScratchKey = %q", got)
	}
}

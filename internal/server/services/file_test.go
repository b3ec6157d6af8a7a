package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/filevault/internal/common"
	"github.com/dmitrijs2005/filevault/internal/logging"
	"github.com/dmitrijs2005/filevault/internal/server/blob"
)

func newFileService(t *testing.T, rm *fakeRepoManager, maxSize int64) *FileService {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := blob.NewDiskStore(context.Background(), t.TempDir(), maxSize, logger)
	return NewFileService(nil, rm, store, logger)
}

func TestUpload_CreatesRecordAndBlob(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newFileService(t, rm, 1024)
	ctx := context.Background()

	file, err := svc.Upload(ctx, 7, "א.txt", "text/plain", strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if file.ID == 0 || file.OriginalName != "א.txt" || file.Size != 3 || file.UserID != 7 {
		t.Fatalf("unexpected file: %+v", file)
	}
	if file.Filename == file.OriginalName {
		t.Fatalf("storage name must differ from the original")
	}

	_, rc, err := svc.Download(ctx, 7, file.ID)
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "abc" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestUpload_TooLargeRejectedBeforePersisting(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newFileService(t, rm, 10)

	_, err := svc.Upload(context.Background(), 7, "big.bin", "application/octet-stream", strings.NewReader(strings.Repeat("x", 11)))
	if !errors.Is(err, common.ErrPayloadTooLarge) {
		t.Fatalf("want common.ErrPayloadTooLarge, got %v", err)
	}
	if len(rm.files.files) != 0 {
		t.Fatalf("record created for rejected payload")
	}
}

func TestUpload_InsertFailureRemovesBlob(t *testing.T) {
	rm := newFakeRepoManager()
	rm.files.createErr = errors.New("db down")
	svc := newFileService(t, rm, 1024)

	_, err := svc.Upload(context.Background(), 7, "a.txt", "text/plain", strings.NewReader("a"))
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newFileService(t, rm, 1024)
	ctx := context.Background()

	first, err := svc.Upload(ctx, 7, "one.txt", "text/plain", strings.NewReader("1"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	rm.files.files[first.ID].UploadedAt = time.Now().Add(-time.Hour)

	second, err := svc.Upload(ctx, 7, "two.txt", "text/plain", strings.NewReader("2"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	rm.files.files[second.ID].UploadedAt = time.Now()

	list, err := svc.List(ctx, 7)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestDownload_ForeignFileForbidden(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newFileService(t, rm, 1024)
	ctx := context.Background()

	file, err := svc.Upload(ctx, 7, "a.txt", "text/plain", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	_, _, err = svc.Download(ctx, 8, file.ID)
	if !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("want common.ErrorForbidden, got %v", err)
	}
}

func TestDownload_UnknownRecord(t *testing.T) {
	svc := newFileService(t, newFakeRepoManager(), 1024)

	_, _, err := svc.Download(context.Background(), 7, 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDownload_BytesMissingOnDisk(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newFileService(t, rm, 1024)
	ctx := context.Background()

	file, err := svc.Upload(ctx, 7, "a.txt", "text/plain", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if err := svc.store.Remove(ctx, file.Path); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	_, _, err = svc.Download(ctx, 7, file.ID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound for missing bytes, got %v", err)
	}
}

func TestDelete_RemovesRecordAndBytes(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newFileService(t, rm, 1024)
	ctx := context.Background()

	file, err := svc.Upload(ctx, 7, "a.txt", "text/plain", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if err := svc.Delete(ctx, 7, file.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	list, err := svc.List(ctx, 7)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("record still listed after delete")
	}

	_, _, err = svc.Download(ctx, 7, file.ID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("bytes still reachable after delete: %v", err)
	}
}

func TestDelete_ForeignFileForbidden(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newFileService(t, rm, 1024)
	ctx := context.Background()

	file, err := svc.Upload(ctx, 7, "a.txt", "text/plain", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if err := svc.Delete(ctx, 8, file.ID); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("want common.ErrorForbidden, got %v", err)
	}
	if len(rm.files.files) != 1 {
		t.Fatalf("foreign delete removed the record")
	}
}

func TestDelete_MissingBytesStillSucceeds(t *testing.T) {
	rm := newFakeRepoManager()
	svc := newFileService(t, rm, 1024)
	ctx := context.Background()

	file, err := svc.Upload(ctx, 7, "a.txt", "text/plain", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if err := svc.store.Remove(ctx, file.Path); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	if err := svc.Delete(ctx, 7, file.ID); err != nil {
		t.Fatalf("Delete with missing bytes error: %v", err)
	}
}

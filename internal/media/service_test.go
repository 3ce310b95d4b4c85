package media_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/media"
)

func newService() (*media.Service, *media.MemoryStore) {
	store := media.NewMemoryStore()
	svc := media.NewService(
		crud.NewMemoryRepository("media file", media.Handlers()),
		store, "/uploads", logging.NoOp())
	return svc, store
}

func TestUploadStoresFileAndRecord(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	file, err := svc.Upload(ctx, media.UploadInput{
		OriginalName: "flyer.PDF",
		MimeType:     "application/pdf",
		Reader:       strings.NewReader("%PDF-1.4 content"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if file.ID == 0 {
		t.Fatal("no id assigned")
	}
	if file.MimeType != "application/pdf" {
		t.Fatalf("mime = %q", file.MimeType)
	}
	if !strings.HasSuffix(file.StoredName, ".pdf") {
		t.Fatalf("stored name %q lost extension", file.StoredName)
	}
	if file.URL != "/uploads/"+file.StoredName {
		t.Fatalf("url = %q", file.URL)
	}
	if file.SizeBytes != int64(len("%PDF-1.4 content")) {
		t.Fatalf("size = %d", file.SizeBytes)
	}
	if !store.Has(file.StoredName) {
		t.Fatal("contents not stored")
	}
}

func TestUploadRejectsDisallowedMime(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Upload(context.Background(), media.UploadInput{
		OriginalName: "script.sh",
		MimeType:     "application/x-sh",
		Reader:       strings.NewReader("#!/bin/sh"),
	})
	if !crud.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newService()
	big := bytes.NewReader(make([]byte, media.MaxUploadBytes+1))

	_, err := svc.Upload(context.Background(), media.UploadInput{
		OriginalName: "huge.png",
		MimeType:     "image/png",
		Reader:       big,
	})
	if !crud.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}

	files, err := svc.Files.List(context.Background(), crud.ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("oversized upload left %d records", len(files))
	}
}

func TestDeleteRemovesRecordAndContents(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	file, err := svc.Upload(ctx, media.UploadInput{
		OriginalName: "photo.jpg",
		MimeType:     "image/jpeg",
		Reader:       strings.NewReader("jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(ctx, file.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Files.Get(ctx, file.ID); !crud.IsNotFound(err) {
		t.Fatalf("record still present: %v", err)
	}
	if store.Has(file.StoredName) {
		t.Fatal("contents still present")
	}
}

func TestDeleteSurvivesMissingContents(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	file, err := svc.Upload(ctx, media.UploadInput{
		OriginalName: "photo.jpg",
		MimeType:     "image/jpeg",
		Reader:       strings.NewReader("jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := store.Remove(file.StoredName); err != nil {
		t.Fatalf("remove contents: %v", err)
	}

	// file already gone on disk; the delete still succeeds
	if err := svc.Delete(ctx, file.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

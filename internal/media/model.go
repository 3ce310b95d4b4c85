// Package media manages uploaded files and their library records.
package media

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

type MediaFile struct {
	bun.BaseModel `bun:"table:media_files,alias:mf"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	OriginalName string    `bun:"original_name,notnull" json:"originalName"`
	StoredName   string    `bun:"stored_name,notnull,unique" json:"storedName"`
	MimeType     string    `bun:"mime_type,notnull" json:"mimeType"`
	SizeBytes    int64     `bun:"size_bytes,notnull" json:"sizeBytes"`
	URL          string    `bun:"url,notnull" json:"url"`
	UploadedBy   *int64    `bun:"uploaded_by" json:"uploadedBy,omitempty"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*MediaFile)(nil)}
}

func Handlers() crud.ModelHandlers[*MediaFile] {
	return crud.ModelHandlers[*MediaFile]{
		NewRecord:          func() *MediaFile { return &MediaFile{} },
		GetID:              func(f *MediaFile) int64 { return f.ID },
		SetID:              func(f *MediaFile, id int64) { f.ID = id },
		GetIdentifier:      func() string { return "stored_name" },
		GetIdentifierValue: func(f *MediaFile) string { return f.StoredName },
		SetIdentifierValue: func(f *MediaFile, name string) { f.StoredName = name },
		Stamp: func(f *MediaFile, now time.Time, created bool) {
			if created {
				f.CreatedAt = now
			}
			f.UpdatedAt = now
		},
		Clone: func(f *MediaFile) *MediaFile {
			out := *f
			if f.UploadedBy != nil {
				v := *f.UploadedBy
				out.UploadedBy = &v
			}
			return &out
		},
	}
}

package scholarships

import (
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

// Service is the generic entity service specialized to scholarships.
type Service = crud.Service[*Scholarship]

func NewService(repo crud.Repository[*Scholarship], log logging.Logger) *Service {
	return crud.NewService(repo, "scholarship", Handlers(),
		crud.WithLogger[*Scholarship](log),
		crud.WithValidator(validate),
	)
}

func NewBunService(db *bun.DB, log logging.Logger) *Service {
	return NewService(crud.NewBunRepository(db, "scholarship", Handlers()), log)
}

package catalog

import (
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

// Services bundles the three taxonomy services behind one constructor so
// wiring stays in one place.
type Services struct {
	Categories *crud.Service[*Category]
	Levels     *crud.Service[*Level]
	Countries  *crud.Service[*Country]
}

func NewServices(db *bun.DB, log logging.Logger) *Services {
	return &Services{
		Categories: NewCategoryService(crud.NewBunRepository(db, "category", CategoryHandlers()), log),
		Levels:     NewLevelService(crud.NewBunRepository(db, "level", LevelHandlers()), log),
		Countries:  NewCountryService(crud.NewBunRepository(db, "country", CountryHandlers()), log),
	}
}

func NewCategoryService(repo crud.Repository[*Category], log logging.Logger) *crud.Service[*Category] {
	return crud.NewService(repo, "category", CategoryHandlers(),
		crud.WithLogger[*Category](log),
		crud.WithValidator(validateCategory),
	)
}

func NewLevelService(repo crud.Repository[*Level], log logging.Logger) *crud.Service[*Level] {
	return crud.NewService(repo, "level", LevelHandlers(),
		crud.WithLogger[*Level](log),
		crud.WithValidator(validateLevel),
	)
}

func NewCountryService(repo crud.Repository[*Country], log logging.Logger) *crud.Service[*Country] {
	return crud.NewService(repo, "country", CountryHandlers(),
		crud.WithLogger[*Country](log),
		crud.WithValidator(validateCountry),
	)
}

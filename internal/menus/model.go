// Package menus manages navigation menus and resolves their item trees.
package menus

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

// Menu locations recognized by the site shell.
const (
	LocationHeader  = "header"
	LocationFooter  = "footer"
	LocationSidebar = "sidebar"
	LocationMobile  = "mobile"
)

// Menu item types. The type tag selects which target field is meaningful;
// the others are ignored even when populated.
const (
	ItemTypePage        = "page"
	ItemTypeCategory    = "category"
	ItemTypeLevel       = "level"
	ItemTypeCountry     = "country"
	ItemTypeScholarship = "scholarship"
	ItemTypePost        = "post"
	ItemTypeURL         = "url"
)

type Menu struct {
	bun.BaseModel `bun:"table:menus,alias:m"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Location  string    `bun:"location,notnull,unique" json:"location"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items,alias:mi"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	MenuID        int64     `bun:"menu_id,notnull" json:"menuId"`
	ParentID      *int64    `bun:"parent_id" json:"parentId,omitempty"`
	Title         string    `bun:"title,notnull" json:"title"`
	DisplayOrder  int       `bun:"display_order,notnull,default:0" json:"order"`
	Type          string    `bun:"type,notnull" json:"type"`
	PageID        *int64    `bun:"page_id" json:"pageId,omitempty"`
	CategoryID    *int64    `bun:"category_id" json:"categoryId,omitempty"`
	LevelID       *int64    `bun:"level_id" json:"levelId,omitempty"`
	CountryID     *int64    `bun:"country_id" json:"countryId,omitempty"`
	ScholarshipID *int64    `bun:"scholarship_id" json:"scholarshipId,omitempty"`
	PostID        *int64    `bun:"post_id" json:"postId,omitempty"`
	URL           *string   `bun:"url" json:"url,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*Menu)(nil), (*MenuItem)(nil)}
}

func MenuHandlers() crud.ModelHandlers[*Menu] {
	return crud.ModelHandlers[*Menu]{
		NewRecord:          func() *Menu { return &Menu{} },
		GetID:              func(m *Menu) int64 { return m.ID },
		SetID:              func(m *Menu, id int64) { m.ID = id },
		GetIdentifier:      func() string { return "location" },
		GetIdentifierValue: func(m *Menu) string { return m.Location },
		SetIdentifierValue: func(m *Menu, loc string) { m.Location = loc },
		Stamp: func(m *Menu, now time.Time, created bool) {
			if created {
				m.CreatedAt = now
			}
			m.UpdatedAt = now
		},
		Clone: func(m *Menu) *Menu {
			out := *m
			return &out
		},
	}
}

func ItemHandlers() crud.ModelHandlers[*MenuItem] {
	return crud.ModelHandlers[*MenuItem]{
		NewRecord: func() *MenuItem { return &MenuItem{} },
		GetID:     func(i *MenuItem) int64 { return i.ID },
		SetID:     func(i *MenuItem, id int64) { i.ID = id },
		Stamp: func(i *MenuItem, now time.Time, created bool) {
			if created {
				i.CreatedAt = now
			}
			i.UpdatedAt = now
		},
		Clone: func(i *MenuItem) *MenuItem {
			out := *i
			out.ParentID = cloneInt64(i.ParentID)
			out.PageID = cloneInt64(i.PageID)
			out.CategoryID = cloneInt64(i.CategoryID)
			out.LevelID = cloneInt64(i.LevelID)
			out.CountryID = cloneInt64(i.CountryID)
			out.ScholarshipID = cloneInt64(i.ScholarshipID)
			out.PostID = cloneInt64(i.PostID)
			if i.URL != nil {
				v := *i.URL
				out.URL = &v
			}
			return &out
		},
	}
}

func validateMenu(m *Menu) error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&m.Location, validation.Required,
			validation.In(LocationHeader, LocationFooter, LocationSidebar, LocationMobile)),
	)
}

func validateItem(i *MenuItem) error {
	return validation.ValidateStruct(i,
		validation.Field(&i.MenuID, validation.Required),
		validation.Field(&i.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.Type, validation.Required,
			validation.In(ItemTypePage, ItemTypeCategory, ItemTypeLevel, ItemTypeCountry,
				ItemTypeScholarship, ItemTypePost, ItemTypeURL)),
		validation.Field(&i.URL, validation.Required.When(i.Type == ItemTypeURL)),
		validation.Field(&i.DisplayOrder, validation.Min(0)),
	)
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

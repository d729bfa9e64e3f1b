package repositories

import "gorm.io/gorm"

// Page selects a window of a list query. Page is 1-based.
type Page struct {
	Page     int
	PageSize int
}

// Offset of the first row of the page
func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func paginate(db *gorm.DB, page Page) *gorm.DB {
	if page.PageSize <= 0 {
		return db
	}
	return db.Limit(page.PageSize).Offset(page.Offset())
}

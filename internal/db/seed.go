package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Soulinho/pandawok-project/internal/models"
)

var defaultSalons = []models.Salon{
	{ID: "salon1A", Name: "Salón 1 (A)", Position: 1},
	{ID: "salon1B", Name: "Salón 1 (B)", Position: 2},
	{ID: "salon1C", Name: "Salón 1 (C)", Position: 3},
	{ID: "salon2A", Name: "Salón 2 (A)", Position: 4},
	{ID: "salon2B", Name: "Salón 2 (B)", Position: 5},
	{ID: "salon2C", Name: "Salón 2 (C)", Position: 6},
	{ID: "salonMesas", Name: "Salón Mesas Condición Especial", Position: 7},
}

type seedTable struct {
	id    uint
	shape string
	size  string
}

// floor of Salón 1 (A) as the restaurant laid it out
var defaultTables = []seedTable{
	{1, "round", "small"}, {2, "round", "small"}, {3, "round", "small"},
	{4, "round", "small"}, {5, "round", "small"}, {6, "square", "medium"},
	{7, "square", "medium"}, {8, "square", "medium"}, {9, "square", "medium"},
	{10, "square", "large"}, {11, "rectangular", "large"}, {12, "round", "small"},
	{13, "round", "small"}, {14, "round", "small"}, {15, "round", "small"},
	{16, "round", "small"}, {17, "round", "small"}, {18, "round", "small"},
	{19, "round", "small"}, {20, "round", "small"},
	{160, "round", "large"}, {161, "round", "large"},
}

// SeedFloorPlan creates the default salons and tables on an empty database.
func SeedFloorPlan(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Salon{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		salons := make([]models.Salon, len(defaultSalons))
		copy(salons, defaultSalons)
		if err := tx.Create(&salons).Error; err != nil {
			return fmt.Errorf("seed salons: %w", err)
		}

		for _, st := range defaultTables {
			t := models.Table{
				ID:      st.id,
				SalonID: "salon1A",
				Shape:   st.shape,
				Size:    st.size,
				Status:  "free",
			}
			if err := tx.Create(&t).Error; err != nil {
				return fmt.Errorf("seed table %d: %w", st.id, err)
			}
		}
		return nil
	})
}

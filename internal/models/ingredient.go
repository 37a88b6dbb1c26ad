package models

type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:30;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/platefeed/backend/config"
	"github.com/platefeed/backend/internal/database"
	"github.com/platefeed/backend/internal/models"
)

// Loads the ingredient catalog from a CSV file of "name,measurement_unit"
// rows. Rows already present are skipped.
func main() {
	path := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	var created, skipped int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read CSV: %v", err)
		}

		ingredient := models.Ingredient{Name: record[0], MeasurementUnit: record[1]}
		result := db.Where(models.Ingredient{Name: record[0], MeasurementUnit: record[1]}).
			FirstOrCreate(&ingredient)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			log.Fatalf("Failed to insert ingredient %q: %v", record[0], result.Error)
		}
		if result.RowsAffected > 0 {
			created++
		} else {
			skipped++
		}
	}

	log.Printf("Seeded ingredients: %d created, %d already present", created, skipped)
}

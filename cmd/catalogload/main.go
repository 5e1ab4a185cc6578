// catalogload reads a catalog spreadsheet and upserts its rows into the
// Postgres catalog table. One row per magnet: prefix, suffix, frame,
// width, watts, surface_gauss, force_factor. The first row is a header.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"Ferrex/internal/auth"
	"Ferrex/internal/repo"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: catalogload <catalog.xlsx>")
	}
	_ = godotenv.Load()

	db := auth.InitDB()
	defer db.Close()
	pgRepo := repo.NewPostgresDB(db)

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatalf("Cannot open %s: %v", os.Args[1], err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		log.Fatalf("Cannot read sheet: %v", err)
	}
	if len(rows) < 2 {
		log.Fatal("Catalog sheet is empty")
	}

	loaded, skipped := 0, 0
	for i := 1; i < len(rows); i++ {
		row, err := parseCatalogRow(rows[i])
		if err != nil {
			log.Printf("Row %d skipped: %v", i+1, err)
			skipped++
			continue
		}
		if err := pgRepo.UpsertCatalogRow(context.Background(), row); err != nil {
			log.Printf("Row %d upsert failed: %v", i+1, err)
			skipped++
			continue
		}
		loaded++
	}
	log.Printf("Catalog load complete: %d rows loaded, %d skipped", loaded, skipped)
}

func parseCatalogRow(row []string) (repo.CatalogRow, error) {
	if len(row) < 7 {
		return repo.CatalogRow{}, fmt.Errorf("row has fewer than 7 columns")
	}
	prefix, err := strconv.Atoi(row[0])
	if err != nil {
		return repo.CatalogRow{}, err
	}
	suffix, err := strconv.Atoi(row[1])
	if err != nil {
		return repo.CatalogRow{}, err
	}
	width, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return repo.CatalogRow{}, err
	}
	watts, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return repo.CatalogRow{}, err
	}
	gauss, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return repo.CatalogRow{}, err
	}
	ff, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return repo.CatalogRow{}, err
	}
	return repo.CatalogRow{
		Prefix:       prefix,
		Suffix:       suffix,
		Frame:        row[2],
		WidthMM:      width,
		Watts:        watts,
		SurfaceGauss: gauss,
		ForceFactorN: ff,
	}, nil
}

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matmarket/matmarket-backend/config"
	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/app/repository"
	"github.com/matmarket/matmarket-backend/internal/db"
)

// Seeds the database. With no arguments it loads the built-in demo
// fixtures; with an XLSX path it bulk-imports products from the file.
//
//	go run cmd/seed/main.go
//	go run cmd/seed/main.go products.xlsx
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("No import file given, loading demo fixtures...")
		if err := db.Seed(); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
		fmt.Println("Demo fixtures loaded successfully!")
		return
	}

	filePath := os.Args[1]

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	catalogRepo := repository.NewCatalogRepository(db.GetDB())
	if err := catalogRepo.CreateProducts(products); err != nil {
		log.Fatal("Failed to create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

// Expected columns: ID, Name, Category, Subcategory, Vendor ID, Price,
// Stock, Rating, Location. The first row is the header.
func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 9 {
			skippedCount++
			continue
		}

		id := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		category := strings.TrimSpace(row[2])
		subcategory := strings.TrimSpace(row[3])
		vendorID := strings.TrimSpace(row[4])
		priceStr := strings.TrimSpace(row[5])
		stockStr := strings.TrimSpace(row[6])
		ratingStr := strings.TrimSpace(row[7])
		location := strings.TrimSpace(row[8])

		if id == "" || name == "" || category == "" || vendorID == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skippedCount++
			continue
		}

		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			stock = 0
		}

		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil || rating < 0 || rating > 5 {
			rating = 0
		}

		if seen[id] {
			skippedCount++
			continue
		}
		seen[id] = true

		products = append(products, model.Product{
			ID:            id,
			Name:          name,
			Category:      category,
			Subcategory:   subcategory,
			VendorID:      vendorID,
			Price:         price,
			StockQuantity: stock,
			Rating:        rating,
			Location:      location,
		})

		if len(products)%1000 == 0 {
			fmt.Printf("Processed %d products...\n", len(products))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}

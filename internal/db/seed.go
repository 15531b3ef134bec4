package db

import (
	"time"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/logger"
	"github.com/matmarket/matmarket-backend/pkg/util"
)

// Seed loads the demo catalog and a first admin confirmation code.
// Tables that already hold data are left alone, so repeated runs are safe.
func Seed() error {
	logger.Info("Seeding initial data...")

	if err := seedCategories(); err != nil {
		return err
	}
	if err := seedVendors(); err != nil {
		return err
	}
	if err := seedProducts(); err != nil {
		return err
	}
	if err := seedAdminCode(); err != nil {
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := []model.Category{
		{ID: "cement-concrete", Name: "Cement & Concrete", Icon: "🧱",
			Subcategories: []string{"Cement", "Ready-Mix Concrete", "Mortar", "Additives"}},
		{ID: "tiles-flooring", Name: "Tiles & Flooring", Icon: "🏠",
			Subcategories: []string{"Floor Tiles", "Wall Tiles", "Laminate", "Vinyl"}},
		{ID: "paints-coatings", Name: "Paints & Coatings", Icon: "🎨",
			Subcategories: []string{"Interior Paint", "Exterior Paint", "Primers", "Varnishes"}},
		{ID: "drywall-insulation", Name: "Drywall & Insulation", Icon: "📐",
			Subcategories: []string{"Plasterboard", "Insulation", "Profiles", "Joint Compound"}},
		{ID: "timber-lumber", Name: "Timber & Lumber", Icon: "🪵",
			Subcategories: []string{"Construction Timber", "Plywood", "OSB", "Beams"}},
		{ID: "tools-hardware", Name: "Tools & Hardware", Icon: "🔧",
			Subcategories: []string{"Power Tools", "Hand Tools", "Fasteners", "Safety Gear"}},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": category.Name,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total": len(categories),
	})
	return nil
}

func seedVendors() error {
	var count int64
	if err := DB.Model(&model.Vendor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Vendors already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	hours := model.BusinessHours{
		Monday:    "08:00-18:00",
		Tuesday:   "08:00-18:00",
		Wednesday: "08:00-18:00",
		Thursday:  "08:00-18:00",
		Friday:    "08:00-18:00",
		Saturday:  "09:00-14:00",
		Sunday:    "Closed",
	}
	policies := model.VendorPolicies{
		Returns:  "Returns accepted within 14 days for unopened goods",
		Shipping: "Delivery within 3 business days in the region",
		Warranty: "Manufacturer warranty applies",
	}

	vendors := []model.Vendor{
		{
			ID: "vendor-buildpro", Name: "BuildPro Materials",
			Description: "Full-range supplier of cement, concrete and masonry materials.",
			Rating:      4.6, TotalReviews: 342, Location: "Sofia",
			Address: "14 Industrialna St, Sofia", Phone: "+359 2 555 0101",
			Email:      "sales@buildpro.example",
			Categories: []string{"Cement & Concrete", "Tools & Hardware"},
			Verified:   true, BusinessHours: hours, Policies: policies,
		},
		{
			ID: "vendor-tilemaster", Name: "TileMaster Ltd",
			Description: "Specialist in ceramic, porcelain and natural stone tiles.",
			Rating:      4.8, TotalReviews: 521, Location: "Plovdiv",
			Address: "3 Keramika Blvd, Plovdiv", Phone: "+359 32 555 0202",
			Email:      "office@tilemaster.example",
			Categories: []string{"Tiles & Flooring"},
			Verified:   true, BusinessHours: hours, Policies: policies,
		},
		{
			ID: "vendor-colorhouse", Name: "ColorHouse Paints",
			Description: "Interior and exterior paints, primers and coatings.",
			Rating:      4.4, TotalReviews: 198, Location: "Sofia",
			Address: "27 Boyadzhiyska St, Sofia", Phone: "+359 2 555 0303",
			Email:      "info@colorhouse.example",
			Categories: []string{"Paints & Coatings"},
			Verified:   true, BusinessHours: hours, Policies: policies,
		},
		{
			ID: "vendor-drywalldepot", Name: "DryWall Depot",
			Description: "Drywall systems, insulation and suspended ceilings.",
			Rating:      4.2, TotalReviews: 156, Location: "Varna",
			Address: "8 Stroitelna St, Varna", Phone: "+359 52 555 0404",
			Email:      "contact@drywalldepot.example",
			Categories: []string{"Drywall & Insulation"},
			Verified:   false, BusinessHours: hours, Policies: policies,
		},
		{
			ID: "vendor-timberland", Name: "Timberland Supplies",
			Description: "Construction timber, plywood and engineered wood.",
			Rating:      4.7, TotalReviews: 287, Location: "Burgas",
			Address: "51 Darvodelska St, Burgas", Phone: "+359 56 555 0505",
			Email:      "orders@timberland.example",
			Categories: []string{"Timber & Lumber"},
			Verified:   true, BusinessHours: hours, Policies: policies,
		},
	}

	for _, vendor := range vendors {
		if err := DB.Create(&vendor).Error; err != nil {
			logger.Error("Failed to create vendor", err, map[string]interface{}{
				"vendor": vendor.Name,
			})
			return err
		}
	}

	logger.Info("Vendors seeded successfully", map[string]interface{}{
		"total": len(vendors),
	})
	return nil
}

func seedProducts() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	compare := func(v float64) *float64 { return &v }

	products := []model.Product{
		{
			ID: "prod-cement-25", Name: "Portland Cement CEM II 25kg",
			Description: "General purpose cement for concrete, mortar and screed work.",
			Price:       12.50, ComparePrice: compare(14.90),
			Category: "Cement & Concrete", Subcategory: "Cement",
			VendorID: "vendor-buildpro", Rating: 4.5, ReviewCount: 89,
			Location: "Sofia", StockQuantity: 420, Featured: true,
			Tags: []string{"cement", "concrete", "masonry"},
			Specifications: []model.Specification{
				{Key: "Weight", Value: "25 kg"},
				{Key: "Strength class", Value: "42.5 N"},
			},
		},
		{
			ID: "prod-mortar-dry", Name: "Dry Mortar Mix 30kg",
			Description: "Pre-blended masonry mortar, just add water.",
			Price:       8.90,
			Category:    "Cement & Concrete", Subcategory: "Mortar",
			VendorID: "vendor-buildpro", Rating: 4.3, ReviewCount: 41,
			Location: "Sofia", StockQuantity: 260,
			Tags: []string{"mortar", "masonry"},
		},
		{
			ID: "prod-tile-porcelain", Name: "Porcelain Floor Tile 60x60",
			Description: "Rectified glazed porcelain tile, frost resistant.",
			Price:       28.90, ComparePrice: compare(34.50),
			Category: "Tiles & Flooring", Subcategory: "Floor Tiles",
			VendorID: "vendor-tilemaster", Rating: 4.8, ReviewCount: 203,
			Location: "Plovdiv", StockQuantity: 0, Featured: true,
			Tags: []string{"tiles", "porcelain", "flooring"},
			Specifications: []model.Specification{
				{Key: "Size", Value: "60x60 cm"},
				{Key: "Finish", Value: "Matte"},
			},
		},
		{
			ID: "prod-tile-wall", Name: "Ceramic Wall Tile 25x40",
			Description: "Glossy ceramic wall tile for kitchens and bathrooms.",
			Price:       16.40,
			Category:    "Tiles & Flooring", Subcategory: "Wall Tiles",
			VendorID: "vendor-tilemaster", Rating: 4.6, ReviewCount: 117,
			Location: "Plovdiv", StockQuantity: 85,
			Tags: []string{"tiles", "ceramic", "bathroom"},
		},
		{
			ID: "prod-paint-interior", Name: "Interior Wall Paint 10L White",
			Description: "Washable matte emulsion paint for interior walls and ceilings.",
			Price:       45.00,
			Category:    "Paints & Coatings", Subcategory: "Interior Paint",
			VendorID: "vendor-colorhouse", Rating: 4.2, ReviewCount: 76,
			Location: "Sofia", StockQuantity: 54, Featured: true,
			Tags: []string{"paint", "interior", "white"},
		},
		{
			ID: "prod-paint-facade", Name: "Facade Paint 15L",
			Description: "Weather resistant acrylic paint for exterior facades.",
			Price:       89.90, ComparePrice: compare(99.00),
			Category: "Paints & Coatings", Subcategory: "Exterior Paint",
			VendorID: "vendor-colorhouse", Rating: 4.5, ReviewCount: 52,
			Location: "Sofia", StockQuantity: 23,
			Tags: []string{"paint", "exterior", "facade"},
		},
		{
			ID: "prod-plasterboard", Name: "Gypsum Plasterboard 12.5mm",
			Description: "Standard drywall sheet 1200x2000mm for walls and ceilings.",
			Price:       9.80,
			Category:    "Drywall & Insulation", Subcategory: "Plasterboard",
			VendorID: "vendor-drywalldepot", Rating: 3.9, ReviewCount: 64,
			Location: "Varna", StockQuantity: 380,
			Tags: []string{"drywall", "gypsum", "plasterboard"},
		},
		{
			ID: "prod-insulation-wool", Name: "Mineral Wool Roll 100mm",
			Description: "Thermal and acoustic insulation roll for roofs and partitions.",
			Price:       52.30,
			Category:    "Drywall & Insulation", Subcategory: "Insulation",
			VendorID: "vendor-drywalldepot", Rating: 4.6, ReviewCount: 93,
			Location: "Varna", StockQuantity: 47, Featured: true,
			Tags: []string{"insulation", "mineral wool", "roofing"},
		},
		{
			ID: "prod-plywood", Name: "Birch Plywood 18mm",
			Description: "Construction grade birch plywood sheet 1250x2500mm.",
			Price:       67.50,
			Category:    "Timber & Lumber", Subcategory: "Plywood",
			VendorID: "vendor-timberland", Rating: 4.7, ReviewCount: 138,
			Location: "Burgas", StockQuantity: 62,
			Tags: []string{"plywood", "timber", "sheet"},
		},
		{
			ID: "prod-timber-beam", Name: "Construction Timber 10x10cm 4m",
			Description: "Planed spruce beam, kiln dried, C24 graded.",
			Price:       21.70,
			Category:    "Timber & Lumber", Subcategory: "Beams",
			VendorID: "vendor-timberland", Rating: 4.4, ReviewCount: 71,
			Location: "Burgas", StockQuantity: 144,
			Tags: []string{"timber", "beam", "spruce"},
		},
		{
			ID: "prod-drill-hammer", Name: "SDS-Plus Hammer Drill 800W",
			Description: "Rotary hammer drill for concrete and masonry, case included.",
			Price:       129.00, ComparePrice: compare(159.00),
			Category: "Tools & Hardware", Subcategory: "Power Tools",
			VendorID: "vendor-buildpro", Rating: 4.9, ReviewCount: 244,
			Location: "Sofia", StockQuantity: 12, Featured: true,
			Tags: []string{"drill", "power tools", "concrete"},
		},
		{
			ID: "prod-screws-box", Name: "Drywall Screws 3.5x35 (1000 pcs)",
			Description: "Phosphated fine-thread screws for plasterboard on metal.",
			Price:       11.20,
			Category:    "Tools & Hardware", Subcategory: "Fasteners",
			VendorID: "vendor-drywalldepot", Rating: 4.1, ReviewCount: 33,
			Location: "Varna", StockQuantity: 510,
			Tags: []string{"screws", "fasteners", "drywall"},
		},
	}

	now := time.Now()
	for i := range products {
		// Stagger creation times so insertion order mirrors recency.
		products[i].CreatedAt = now.Add(time.Duration(i-len(products)) * time.Hour)
		if err := DB.Create(&products[i]).Error; err != nil {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"product": products[i].Name,
			})
			return err
		}
	}

	logger.Info("Products seeded successfully", map[string]interface{}{
		"total": len(products),
	})
	return nil
}

// seedAdminCode creates the first admin confirmation code when the
// table is empty and logs it once. There is no other way to obtain the
// bootstrap code.
func seedAdminCode() error {
	var count int64
	if err := DB.Model(&model.AdminConfirmationCode{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	code, err := util.GenerateRandomCode(16)
	if err != nil {
		return err
	}
	record := model.AdminConfirmationCode{Code: code}
	if err := DB.Create(&record).Error; err != nil {
		logger.Error("Failed to create admin confirmation code", err)
		return err
	}

	logger.Info("Bootstrap admin confirmation code created", map[string]interface{}{
		"code": code,
	})
	return nil
}

package catalog

import "github.com/nobih83-prog/Nashwa01/internal/domain"

const imgBase = "https://images.unsplash.com/"
const imgParams = "?auto=format&fit=crop&w=800&q=80"

func img(id string) string {
	return imgBase + id + imgParams
}

// defaultProducts returns a fresh copy of the storefront collection.
func defaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:       "1",
			Name:     "Silk Embroidered Saree",
			Price:    4500,
			Category: domain.CategoryClothing,
			Image:    img("photo-1610030469983-98e550d6193c"),
			Images: []string{
				img("photo-1610030469983-98e550d6193c"),
				img("photo-1583391733956-3750e0ff4e8b"),
				img("photo-1617627143750-d86bc21e42bb"),
				img("photo-1610030469668-93510ef676f3"),
			},
			Description: "Beautifully handcrafted silk saree with intricate embroidery work, featuring a luxurious finish perfect for weddings and formal events.",
			Variations: []domain.Variation{
				{Name: "Size", Type: domain.VariationText, Options: []domain.VariationOption{
					{Label: "Standard"},
					{Label: "Plus Size", PriceModifier: 500},
				}},
				{Name: "Color", Type: domain.VariationColor, Options: []domain.VariationOption{
					{Label: "#800000", Image: img("photo-1610030469983-98e550d6193c")},
					{Label: "#000080", Image: img("photo-1583391733956-3750e0ff4e8b")},
					{Label: "#006400", Image: img("photo-1617627143750-d86bc21e42bb")},
				}},
			},
		},
		{
			ID:       "2",
			Name:     "Gold Plated Jhumka",
			Price:    1200,
			Category: domain.CategoryJewelry,
			Image:    img("photo-1635767798638-3e25273a8236"),
			Images: []string{
				img("photo-1635767798638-3e25273a8236"),
				img("photo-1535632066927-ab7c9ab60908"),
				img("photo-1630019051930-47382db95a28"),
			},
			Description: "Traditional gold-plated jhumka earrings for elegant occasions, featuring delicate craftsmanship and timeless design.",
			Variations: []domain.Variation{
				{Name: "Material", Type: domain.VariationText, Options: []domain.VariationOption{
					{Label: "Gold Plated"},
					{Label: "Pure Silver", PriceModifier: 1800},
				}},
			},
		},
		{
			ID:       "3",
			Name:     "Luxury Designer Bag",
			Price:    5500,
			Category: domain.CategoryAccessories,
			Image:    img("photo-1594223274512-ad4803739b7c"),
			Images: []string{
				img("photo-1594223274512-ad4803739b7c"),
				img("photo-1584917865442-de89df76afd3"),
				img("photo-1548036328-c9fa89d128fa"),
			},
			Description: "A masterpiece of structural design and premium leather, this handbag is the ultimate statement accessory for the modern woman.",
			Variations: []domain.Variation{
				{Name: "Color", Type: domain.VariationColor, Options: []domain.VariationOption{
					{Label: "#000000", Image: img("photo-1594223274512-ad4803739b7c")},
					{Label: "#8B4513", Image: img("photo-1548036328-c9fa89d128fa")},
				}},
			},
		},
		{
			ID:       "4",
			Name:     "Chiffon Party Wear",
			Price:    3800,
			Category: domain.CategoryClothing,
			Image:    img("photo-1581044777550-4cfa60707c03"),
			Images: []string{
				img("photo-1581044777550-4cfa60707c03"),
				img("photo-1496747611176-843222e1e57c"),
				img("photo-1515372039744-b8f02a3ae446"),
			},
			Description: "Flowy chiffon dress perfect for evening gatherings, featuring a lightweight fabric and a modern silhouette.",
			Variations: []domain.Variation{
				{Name: "Size", Type: domain.VariationText, Options: []domain.VariationOption{
					{Label: "S"},
					{Label: "M"},
					{Label: "L"},
					{Label: "XL", PriceModifier: 200},
				}},
			},
		},
		{
			ID:          "5",
			Name:        "Pearl Necklace Set",
			Price:       1800,
			Category:    domain.CategoryJewelry,
			Image:       img("photo-1535632066927-ab7c9ab60908"),
			Description: "Elegant freshwater pearl necklace with matching earrings for a sophisticated look.",
		},
		{
			ID:          "6",
			Name:        "Stiletto Heels",
			Price:       3200,
			Category:    domain.CategoryShoes,
			Image:       img("photo-1543163521-1bf539c55dd2"),
			Description: "Sleek black stilettos with comfortable cushioning and a timeless point-toe design.",
			Variations: []domain.Variation{
				{Name: "EU Size", Type: domain.VariationText, Options: []domain.VariationOption{
					{Label: "36"}, {Label: "37"}, {Label: "38"}, {Label: "39"}, {Label: "40"},
				}},
			},
		},
		{
			ID:          "7",
			Name:        "Silk Evening Scarf",
			Price:       850,
			Category:    domain.CategoryAccessories,
			Image:       img("photo-1601924994987-69e26d50dc26"),
			Description: "Luxurious silk scarf with botanical prints, adding a touch of sophistication to any outfit.",
		},
		{
			ID:          "8",
			Name:        "Hand-woven Tote Bag",
			Price:       1800,
			Category:    domain.CategoryAccessories,
			Image:       img("photo-1591561954557-26941169b49e"),
			Description: "Eco-friendly and stylish, this hand-woven tote is perfect for daily essentials and weekend outings.",
		},
	}
}

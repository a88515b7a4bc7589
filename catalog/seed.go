package catalog

import (
	"github.com/shopspring/decimal"

	"go-storefront/models"
)

// SeedProducts returns the bundled demo products in catalog order
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "Naruto Uzumaki Figure",
			Description: "High-quality PVC figure of Naruto Uzumaki in Sage Mode. This collectible stands 25cm tall and features incredible detail.",
			Price:       decimal.RequireFromString("59.99"),
			Images:      []string{photo("5011647"), photo("5011647")},
			Category:    "figures",
			Tags:        []string{"naruto", "figure", "collectible"},
			Stock:       15,
			Rating:      4.8,
			Featured:    true,
		},
		{
			ID:          "2",
			Name:        "Attack on Titan Hoodie",
			Description: "Premium quality hoodie featuring the Scout Regiment emblem. Made from soft cotton blend material for comfort and durability.",
			Price:       decimal.RequireFromString("49.99"),
			Images:      []string{photo("7679720"), photo("7679720")},
			Category:    "clothing",
			Tags:        []string{"attack on titan", "hoodie", "apparel"},
			Stock:       25,
			Rating:      4.5,
		},
		{
			ID:          "3",
			Name:        "One Piece Manga Box Set",
			Description: "Complete collection of One Piece manga volumes 1-23. Follow Luffy and his crew on their adventure to find the One Piece treasure.",
			Price:       decimal.RequireFromString("185.99"),
			Images:      []string{photo("3747139"), photo("3747139")},
			Category:    "manga",
			Tags:        []string{"one piece", "manga", "box set"},
			Stock:       10,
			Rating:      4.9,
			Featured:    true,
		},
		{
			ID:          "4",
			Name:        "My Hero Academia T-Shirt",
			Description: "Cotton T-shirt featuring the U.A. High School logo. Available in multiple sizes and colors.",
			Price:       decimal.RequireFromString("24.99"),
			Images:      []string{photo("8532616"), photo("8532616")},
			Category:    "clothing",
			Tags:        []string{"my hero academia", "t-shirt", "apparel"},
			Stock:       30,
			Rating:      4.3,
		},
		{
			ID:          "5",
			Name:        "Demon Slayer Poster Set",
			Description: "Set of 5 high-quality posters featuring Tanjiro, Nezuko, Zenitsu, Inosuke, and Giyu. Perfect for decorating your room.",
			Price:       decimal.RequireFromString("29.99"),
			Images:      []string{photo("6802983"), photo("6802983")},
			Category:    "posters",
			Tags:        []string{"demon slayer", "poster", "decoration"},
			Stock:       20,
			Rating:      4.7,
		},
		{
			ID:          "6",
			Name:        "Dragon Ball Z Action Figure Set",
			Description: "Set of 6 action figures including Goku, Vegeta, Gohan, Piccolo, Frieza, and Cell. Each figure is approximately 15cm tall.",
			Price:       decimal.RequireFromString("79.99"),
			Images:      []string{photo("8566437"), photo("8566437")},
			Category:    "figures",
			Tags:        []string{"dragon ball", "figures", "collectible"},
			Stock:       12,
			Rating:      4.6,
			Featured:    true,
		},
		{
			ID:          "7",
			Name:        "Jujutsu Kaisen Hoodie",
			Description: "Black hoodie featuring Gojo Satoru design. Made from premium materials for comfort and style.",
			Price:       decimal.RequireFromString("54.99"),
			Images:      []string{photo("2205839"), photo("2205839")},
			Category:    "clothing",
			Tags:        []string{"jujutsu kaisen", "hoodie", "apparel"},
			Stock:       18,
			Rating:      4.5,
		},
		{
			ID:          "8",
			Name:        "Hunter x Hunter Complete DVD Set",
			Description: "Complete DVD collection of Hunter x Hunter (2011) series. All episodes with English and Japanese audio options.",
			Price:       decimal.RequireFromString("129.99"),
			Images:      []string{photo("2395249"), photo("2395249")},
			Category:    "dvd",
			Tags:        []string{"hunter x hunter", "dvd", "anime"},
			Stock:       8,
			Rating:      4.9,
		},
	}
}

// SeedCategories returns the bundled demo categories
func SeedCategories() []models.Category {
	return []models.Category{
		{
			ID:          "figures",
			Name:        "Figures & Collectibles",
			Description: "High-quality anime figures and collectibles",
			Image:       photo("5011647"),
		},
		{
			ID:          "clothing",
			Name:        "Clothing & Apparel",
			Description: "Anime-themed clothing and apparel",
			Image:       photo("2205839"),
		},
		{
			ID:          "manga",
			Name:        "Manga & Books",
			Description: "Manga volumes and light novels",
			Image:       photo("3747139"),
		},
		{
			ID:          "posters",
			Name:        "Posters & Artwork",
			Description: "Anime posters and artwork for decoration",
			Image:       photo("6802983"),
		},
		{
			ID:          "dvd",
			Name:        "DVDs & Blu-rays",
			Description: "Anime series and movies on DVD and Blu-ray",
			Image:       photo("2395249"),
		},
	}
}

func photo(id string) string {
	return "https://images.pexels.com/photos/" + id + "/pexels-photo-" + id + ".jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"
}

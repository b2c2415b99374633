package catalog

import "github.com/phenrril/munek/internal/domain"

const brand = "MUÑEK LABS"

func g(a, b string) domain.Gradient { return domain.Gradient{From: a, To: b} }

func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "p-crea-01",
			Name:        "Creatina Monohidratada Micronizada",
			Brand:       brand,
			Category:    domain.CategoryCreatina,
			Description: "Pura, sin rellenos. Fuerza, potencia y mejor rendimiento en series pesadas.",
			Tags:        []string{"monohidratada", "micronizada", "fuerza", "volumen"},
			Image:       g("#d10b1c", "#0b0b0c"),
			Variants: []domain.Variant{
				{ID: "v-crea-250", Label: "250 g • Sin sabor", Size: "250 g", Flavor: "Sin sabor", Price: 349, CompareAt: 399, InStock: true},
				{ID: "v-crea-500", Label: "500 g • Sin sabor", Size: "500 g", Flavor: "Sin sabor", Price: 549, CompareAt: 649, InStock: true},
				{ID: "v-crea-1k", Label: "1 kg • Sin sabor", Size: "1 kg", Flavor: "Sin sabor", Price: 899, CompareAt: 999, InStock: true},
			},
		},
		{
			ID:          "p-whey-01",
			Name:        "Whey Protein Isolate 90",
			Brand:       brand,
			Category:    domain.CategoryProteina,
			Description: "Alta proteína por porción, textura limpia y sabores discretos, sin empalagar.",
			Tags:        []string{"whey", "isolate", "proteína", "recuperación"},
			Image:       g("#0b0b0c", "#3a0b10"),
			Variants: []domain.Variant{
				{ID: "v-whey-1lb-van", Label: "1 lb • Vainilla", Size: "1 lb", Flavor: "Vainilla", Price: 699, InStock: true},
				{ID: "v-whey-2lb-choc", Label: "2 lb • Chocolate", Size: "2 lb", Flavor: "Chocolate", Price: 999, CompareAt: 1099, InStock: true},
				{ID: "v-whey-5lb-fresa", Label: "5 lb • Fresa", Size: "5 lb", Flavor: "Fresa", Price: 1999, CompareAt: 2199, InStock: true},
			},
		},
		{
			ID:          "p-pre-01",
			Name:        "Pre-Entreno Clean Focus",
			Brand:       brand,
			Category:    domain.CategoryPreEntreno,
			Description: "Energía y enfoque con sensación limpia. Ideal para sesiones intensas.",
			Tags:        []string{"preworkout", "energía", "pump", "focus"},
			Image:       g("#1b1b1d", "#d10b1c"),
			Variants: []domain.Variant{
				{ID: "v-pre-20-serv", Label: "20 servicios • Sandía", Size: "20 servicios", Flavor: "Sandía", Price: 499, InStock: true},
				{ID: "v-pre-30-serv", Label: "30 servicios • Mango", Size: "30 servicios", Flavor: "Mango", Price: 649, InStock: true},
				{ID: "v-pre-30-serv-u", Label: "30 servicios • Sin sabor", Size: "30 servicios", Flavor: "Sin sabor", Price: 629, InStock: false},
			},
		},
		{
			ID:          "p-bcaa-01",
			Name:        "BCAA 2:1:1 + Electrolitos",
			Brand:       brand,
			Category:    domain.CategoryAminoacidos,
			Description: "Hidratación y aminoácidos para sesiones largas. Sabor ligero, cero pesadez.",
			Tags:        []string{"bcaa", "electrolitos", "hidratación"},
			Image:       g("#c8c3bb", "#0b0b0c"),
			Variants: []domain.Variant{
				{ID: "v-bcaa-30", Label: "30 servicios • Limón", Size: "30 servicios", Flavor: "Limón", Price: 449, InStock: true},
				{ID: "v-bcaa-30-frutos", Label: "30 servicios • Frutos rojos", Size: "30 servicios", Flavor: "Frutos rojos", Price: 449, InStock: true},
			},
		},
		{
			ID:          "p-mass-01",
			Name:        "Mass Gainer Balance",
			Brand:       brand,
			Category:    domain.CategoryGanador,
			Description: "Calorías limpias para subir de peso con control. Ideal en volumen.",
			Tags:        []string{"gainer", "volumen", "calorías"},
			Image:       g("#0b0b0c", "#7a0b16"),
			Variants: []domain.Variant{
				{ID: "v-mass-3lb", Label: "3 lb • Vainilla", Size: "3 lb", Flavor: "Vainilla", Price: 899, InStock: true},
				{ID: "v-mass-6lb", Label: "6 lb • Chocolate", Size: "6 lb", Flavor: "Chocolate", Price: 1499, CompareAt: 1699, InStock: true},
			},
		},
	}
}

package domain

type Category string

const (
	CategoryCreatina    Category = "Creatina"
	CategoryProteina    Category = "Proteína"
	CategoryPreEntreno  Category = "Pre-entreno"
	CategoryAminoacidos Category = "Aminoácidos"
	CategoryGanador     Category = "Ganador"
	CategoryAccesorios  Category = "Accesorios"
)

var Categories = []Category{
	CategoryCreatina,
	CategoryProteina,
	CategoryPreEntreno,
	CategoryAminoacidos,
	CategoryGanador,
	CategoryAccesorios,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Gradient es la imagen placeholder de un producto (dos colores hex).
type Gradient struct {
	From string `json:"a"`
	To   string `json:"b"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags,omitempty"`
	Image       Gradient  `json:"image"`
	Variants    []Variant `json:"variants"`
}

// Variant es la unidad vendible. Los precios son pesos enteros; CompareAt 0 significa sin precio tachado.
type Variant struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Size      string `json:"size"`
	Flavor    string `json:"flavor,omitempty"`
	Price     int64  `json:"price"`
	CompareAt int64  `json:"compareAt,omitempty"`
	InStock   bool   `json:"inStock"`
}

// FromPrice devuelve el menor precio entre las variantes.
func (p Product) FromPrice() int64 {
	var min int64
	for i, v := range p.Variants {
		if i == 0 || v.Price < min {
			min = v.Price
		}
	}
	return min
}

func (p Product) Available() bool {
	for _, v := range p.Variants {
		if v.InStock {
			return true
		}
	}
	return false
}

func (v Variant) OnSale() bool { return v.CompareAt > v.Price }

// CatalogHit es el resultado de resolver un id de variante.
type CatalogHit struct {
	Product Product
	Variant Variant
}

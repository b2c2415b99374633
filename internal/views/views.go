package views

import (
	"embed"
	"html/template"

	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/money"
)

//go:embed *.html
var FS embed.FS

func Funcs() template.FuncMap {
	return template.FuncMap{
		"mxn":      money.Format,
		"shipping": money.FormatShipping,
		"statusLabel": func(s domain.OrderStatus) string {
			return s.Label()
		},
		"gradient": func(g domain.Gradient) template.CSS {
			return template.CSS("background: linear-gradient(135deg, " + g.From + ", " + g.To + ");")
		},
		"add": func(a, b int) int { return a + b },
	}
}

// Parse carga las plantillas embebidas.
func Parse() (*template.Template, error) {
	return template.New("layout").Funcs(Funcs()).ParseFS(FS, "*.html")
}

// ParseDir carga las plantillas desde disco; en desarrollo evita recompilar.
func ParseDir(dir string) (*template.Template, error) {
	return template.New("layout").Funcs(Funcs()).ParseGlob(dir + "/*.html")
}

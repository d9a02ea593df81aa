package render

import (
	"image/color"
	"strings"
)

// SchemeID identifies a background style and caption palette.
type SchemeID string

const (
	SchemeOcean   SchemeID = "ocean"
	SchemeSpace   SchemeID = "space"
	SchemeTech    SchemeID = "tech"
	SchemeAncient SchemeID = "ancient"
	SchemeFood    SchemeID = "food"
	SchemeSports  SchemeID = "sports"
	SchemeScience SchemeID = "science"
	SchemeGeneric SchemeID = "generic"
)

// ColorScheme describes the gradient stops and motion style for a topic.
type ColorScheme struct {
	ID     SchemeID
	Colors []color.RGBA
}

var schemes = map[SchemeID]ColorScheme{
	SchemeOcean: {ID: SchemeOcean, Colors: []color.RGBA{
		{R: 5, G: 25, B: 55, A: 255},
		{R: 10, G: 70, B: 120, A: 255},
		{R: 20, G: 130, B: 170, A: 255},
	}},
	SchemeSpace: {ID: SchemeSpace, Colors: []color.RGBA{
		{R: 5, G: 5, B: 20, A: 255},
		{R: 25, G: 15, B: 60, A: 255},
		{R: 60, G: 30, B: 100, A: 255},
	}},
	SchemeTech: {ID: SchemeTech, Colors: []color.RGBA{
		{R: 10, G: 15, B: 30, A: 255},
		{R: 20, G: 45, B: 75, A: 255},
		{R: 0, G: 90, B: 110, A: 255},
	}},
	SchemeAncient: {ID: SchemeAncient, Colors: []color.RGBA{
		{R: 45, G: 30, B: 15, A: 255},
		{R: 90, G: 60, B: 30, A: 255},
		{R: 140, G: 100, B: 50, A: 255},
	}},
	SchemeFood: {ID: SchemeFood, Colors: []color.RGBA{
		{R: 60, G: 15, B: 10, A: 255},
		{R: 130, G: 45, B: 20, A: 255},
		{R: 200, G: 90, B: 30, A: 255},
	}},
	SchemeSports: {ID: SchemeSports, Colors: []color.RGBA{
		{R: 10, G: 40, B: 15, A: 255},
		{R: 20, G: 85, B: 35, A: 255},
		{R: 40, G: 140, B: 55, A: 255},
	}},
	SchemeScience: {ID: SchemeScience, Colors: []color.RGBA{
		{R: 15, G: 10, B: 40, A: 255},
		{R: 40, G: 25, B: 90, A: 255},
		{R: 80, G: 50, B: 150, A: 255},
	}},
	SchemeGeneric: {ID: SchemeGeneric, Colors: []color.RGBA{
		{R: 20, G: 20, B: 35, A: 255},
		{R: 45, G: 45, B: 75, A: 255},
		{R: 80, G: 80, B: 120, A: 255},
	}},
}

// schemeKeywords maps topic substrings to schemes. Topics are generated in
// Spanish, so the tables carry Spanish vocabulary with a few English extras.
var schemeKeywords = []struct {
	id    SchemeID
	words []string
}{
	{SchemeOcean, []string{"océano", "oceano", "mar", "agua", "marino", "profundidad", "pez", "peces", "ballena", "ocean", "sea"}},
	{SchemeSpace, []string{"espacio", "universo", "galaxia", "planeta", "estrella", "cosmos", "agujero negro", "space", "nasa"}},
	{SchemeTech, []string{"tecnología", "tecnologia", "internet", "computadora", "robot", "inteligencia artificial", "digital", "tech"}},
	{SchemeAncient, []string{"antiguo", "antigua", "historia antigua", "egipto", "roma", "imperio", "civilización", "civilizacion", "pirámide", "piramide"}},
	{SchemeFood, []string{"comida", "cocina", "gastronomía", "gastronomia", "receta", "sabor", "chocolate", "café", "cafe"}},
	{SchemeSports, []string{"deporte", "fútbol", "futbol", "olímpico", "olimpico", "atleta", "juego", "sport"}},
	{SchemeScience, []string{"ciencia", "cerebro", "cuerpo", "célula", "celula", "química", "quimica", "física", "fisica", "adn", "biología", "biologia"}},
}

// SelectScheme picks a color scheme from keywords in the topic. The longest
// matching keyword wins, so a specific word like "fútbol" beats a broad one
// appearing earlier in the table. Unknown topics get the generic palette.
func SelectScheme(topic string) ColorScheme {
	lowered := strings.ToLower(topic)
	best := SchemeGeneric
	bestLen := 0
	for _, entry := range schemeKeywords {
		for _, kw := range entry.words {
			if len(kw) > bestLen && strings.Contains(lowered, kw) {
				best = entry.id
				bestLen = len(kw)
			}
		}
	}
	return schemes[best]
}

// SchemeByID returns the scheme for a known ID, falling back to generic.
func SchemeByID(id SchemeID) ColorScheme {
	if s, ok := schemes[id]; ok {
		return s
	}
	return schemes[SchemeGeneric]
}

package builder

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"

	"pizzeria-go/models"
)

const previewSize = 200

// Topping dot colors by category, layered over the crust, sauce and cheese
// base circles.
var categoryColors = map[models.IngredientCategory]color.RGBA{
	models.CategorySauce:     {0xc0, 0x39, 0x2b, 0xff},
	models.CategoryCheese:    {0xf9, 0xe7, 0x9f, 0xff},
	models.CategoryProtein:   {0xe7, 0x4c, 0x3c, 0xff},
	models.CategoryVegetable: {0x27, 0xae, 0x60, 0xff},
}

// Preview renders a placeholder image for a custom pizza: concentric crust,
// sauce and cheese circles with ingredient dots scattered by category.
// Purely cosmetic; the output is a PNG data URL and is not reproducible.
func Preview(ingredients []models.Ingredient) string {
	img := image.NewRGBA(image.Rect(0, 0, previewSize, previewSize))

	bg := color.RGBA{0x2a, 0x2a, 0x2a, 0xff}
	for y := 0; y < previewSize; y++ {
		for x := 0; x < previewSize; x++ {
			img.Set(x, y, bg)
		}
	}

	cx, cy := previewSize/2, previewSize/2
	fillCircle(img, cx, cy, 80, color.RGBA{0xe0, 0xb0, 0x80, 0xff}) // crust
	fillCircle(img, cx, cy, 70, color.RGBA{0xc0, 0x39, 0x2b, 0xff}) // sauce
	fillCircle(img, cx, cy, 65, color.RGBA{0xfa, 0xf0, 0xd7, 0xff}) // cheese

	for _, ing := range ingredients {
		col, ok := categoryColors[ing.Category]
		if !ok {
			col = categoryColors[models.CategoryVegetable]
		}
		for i := 0; i < 6; i++ {
			angle := rand.Float64() * 2 * math.Pi
			dist := 10 + rand.Float64()*48
			x := cx + int(math.Cos(angle)*dist)
			y := cy + int(math.Sin(angle)*dist)
			fillCircle(img, x, y, 4+rand.Intn(4), col)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func fillCircle(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, col)
			}
		}
	}
}

package models

// ItemKind discriminates catalog pizzas from user-built ones.
type ItemKind string

const (
	KindStandard ItemKind = "standard"
	KindCustom   ItemKind = "custom"
)

// IngredientCategory groups toppings for pricing display and preview rendering.
type IngredientCategory string

const (
	CategorySauce     IngredientCategory = "sauce"
	CategoryCheese    IngredientCategory = "cheese"
	CategoryProtein   IngredientCategory = "protein"
	CategoryVegetable IngredientCategory = "vegetable"
)

// Ingredient is a single selectable topping.
type Ingredient struct {
	ID          string             `bson:"id" json:"id"`
	DisplayName string             `bson:"display_name" json:"display_name"`
	Category    IngredientCategory `bson:"category" json:"category"`
	Price       int64              `bson:"price" json:"price"`
}

// CartLineItem is one product entry in the cart with its own quantity and price.
// ID is unique within the cart; Quantity never drops below 1 except by removal.
type CartLineItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	UnitPrice    int64        `json:"unit_price"`
	Quantity     int          `json:"quantity"`
	Kind         ItemKind     `json:"kind"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
	PreviewImage string       `json:"preview_image,omitempty"`
}

// IsCustom reports whether the line item was built in the pizza builder.
func (li CartLineItem) IsCustom() bool { return li.Kind == KindCustom }

// LineTotal is unit price times quantity.
func (li CartLineItem) LineTotal() int64 { return li.UnitPrice * int64(li.Quantity) }

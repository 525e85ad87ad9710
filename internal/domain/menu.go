package domain

// Place is a restaurant or vendor whose menu constrains valid item names.
type Place struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	FoodType string `json:"food_type"`
}

// MenuItem is one orderable item at a place. PriceMinor is in minor currency
// units (pence); zero means unpriced. Position fixes catalog order: more
// specific names should sort after the shorter names they contain, since the
// parser lets the last substring match win.
type MenuItem struct {
	Name       string `json:"name"`
	PriceMinor int    `json:"price_minor"`
	Position   int    `json:"position"`
}

package formatting

import (
	"math/rand/v2"
	"strings"
)

var positiveEmojis = []string{
	"thumbsup",
	"heavy_check_mark",
	"white_check_mark",
	"ok_hand",
	"100",
}

var negativeEmojis = []string{
	"thumbsdown",
	"x",
	"heavy_multiplication_x",
	"no_entry_sign",
}

var curiousEmojis = []string{
	"thinking_face",
	"face_with_monocle",
	"question",
	"grey_question",
}

var foodEmojis = map[string]string{
	"kebab":     "stuffed_flatbread",
	"burger":    "hamburger",
	"pizza":     "pizza",
	"sandwich":  "sandwich",
	"curry":     "curry",
	"sushi":     "sushi",
	"fish":      "fried_shrimp",
	"chinese":   "takeout_box",
	"taco":      "taco",
	"burrito":   "burrito",
	"chicken":   "poultry_leg",
	"breakfast": "fried_egg",
}

// PositiveEmoji picks a random affirmative reaction name, without colons.
func PositiveEmoji() string {
	return positiveEmojis[rand.IntN(len(positiveEmojis))]
}

// NegativeEmoji picks a random rejection reaction name, without colons.
func NegativeEmoji() string {
	return negativeEmojis[rand.IntN(len(negativeEmojis))]
}

// CuriousEmoji picks a random "not sure what you meant" reaction name.
func CuriousEmoji() string {
	return curiousEmojis[rand.IntN(len(curiousEmojis))]
}

// FoodEmoji maps a food type to a Slack emoji code with colons, falling back
// to a knife and fork when the type is unknown.
func FoodEmoji(foodType string) string {
	if code, ok := foodEmojis[strings.ToLower(strings.TrimSpace(foodType))]; ok {
		return ":" + code + ":"
	}
	return ":fork_and_knife:"
}

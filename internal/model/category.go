package model

import "strings"

// Category tags a record by area of life.
type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryHealth    Category = "health"
	CategoryClass     Category = "class"
	CategoryStudy     Category = "study"
	CategoryWork      Category = "work"
	CategoryReligious Category = "religious"
	CategoryPrayer    Category = "prayer"
	CategoryMeal      Category = "meal"
	CategoryBreak     Category = "break"
	CategorySleep     Category = "sleep"
	CategoryOther     Category = "other"
)

var knownCategories = []Category{
	CategoryPersonal,
	CategoryHealth,
	CategoryClass,
	CategoryStudy,
	CategoryWork,
	CategoryReligious,
	CategoryPrayer,
	CategoryMeal,
	CategoryBreak,
	CategorySleep,
}

// Categories returns the known categories in display order.
func Categories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

// ParseCategory normalizes user input. Unknown non-empty values are kept
// as typed so user-edited data survives a round trip.
func ParseCategory(raw string) Category {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return CategoryOther
	}
	return Category(value)
}

// Known maps c onto the closed set, falling back to CategoryOther.
func (c Category) Known() Category {
	for _, k := range knownCategories {
		if c == k {
			return c
		}
	}
	return CategoryOther
}

// Special is an optional display marker such as "weekend" or "class-time".
type Special string

const (
	SpecialNone          Special = ""
	SpecialWeekend       Special = "weekend"
	SpecialClassTime     Special = "class-time"
	SpecialReligiousTime Special = "religious-time"
)

// ParseSpecial normalizes a marker; "-" and "none" clear it.
func ParseSpecial(raw string) Special {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "-", "none":
		return SpecialNone
	}
	return Special(value)
}

package store

import (
	"time"

	"github.com/saborlab/sabor/internal/models"
)

// Built-in default category ids referenced by the seed recipes.
const (
	seedCategoryDesserts = "cat-desserts"
	seedCategoryBakery   = "cat-bakery"
	seedCategoryMains    = "cat-mains"
	seedCategorySalads   = "cat-salads"
)

// SeedCategories returns the default category set used when no persisted
// category collection exists.
func SeedCategories() []*models.Category {
	return []*models.Category{
		{ID: seedCategoryDesserts, HE: "קינוחים", ES: "Postres"},
		{ID: seedCategoryBakery, HE: "מאפים", ES: "Panadería"},
		{ID: seedCategoryMains, HE: "מנות עיקריות", ES: "Platos Principales"},
		{ID: seedCategorySalads, HE: "סלטים", ES: "Ensaladas"},
	}
}

// SeedRecipes returns the built-in example recipes used when no persisted
// recipe collection exists. Content is Hebrew only; the Spanish slot is
// filled lazily on first display.
func SeedRecipes() []*models.Recipe {
	now := time.Now().UnixMilli()
	return []*models.Recipe{
		{
			ID:         "van-stapele",
			CreatedAt:  now - 1000,
			CategoryID: seedCategoryDesserts,
			Image:      "https://images.unsplash.com/photo-1558961363-fa8fdf82db35?q=80&w=1000&auto=format&fit=crop",
			HE: &models.RecipeContent{
				Title:       "עוגיות ואן-סטאפל",
				Description: "העוגיות המפורסמות מאמסטרדם - מעטפת קקאו עשירה עם לב שוקולד לבן נמס.",
				Ingredients: []models.Ingredient{
					{ID: models.NewID(), Name: "קמח", Amount: 250, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "אבקת קקאו", Amount: 60, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "אבקת חלב", Amount: 10, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "קורנפלור", Amount: 30, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "סודה לשתייה", Amount: 1, Unit: models.UnitTsp, Category: "בצק"},
					{ID: models.NewID(), Name: "קפה נמס", Amount: 1, Unit: models.UnitTsp, Category: "בצק"},
					{ID: models.NewID(), Name: "חמאה", Amount: 170, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "סוכר לבן", Amount: 85, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "סוכר חום", Amount: 112.5, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "ביצים", Amount: 2, Unit: models.UnitUnits, Category: "בצק"},
					{ID: models.NewID(), Name: "תמצית וניל", Amount: 1, Unit: models.UnitUnits, Category: "בצק"},
					{ID: models.NewID(), Name: "מטבעות שוקולד מריר/חלב", Amount: 100, Unit: models.UnitGram, Category: "תוספות"},
					{ID: models.NewID(), Name: "שוקולד לבן איכותי", Amount: 200, Unit: models.UnitGram, Category: "ליבה"},
				},
				Instructions: []models.PrepStep{
					{ID: models.NewID(), Text: "ממיסים 200 גרם שוקולד לבן בפולסים של 15 שניות עד המסה מלאה.", Category: "מטבעות שוקולד לבן"},
					{ID: models.NewID(), Text: "מעבירים לתבניות סיליקון קטנות ומקפיאים לחצי שעה.", Category: "מטבעות שוקולד לבן"},
					{ID: models.NewID(), Text: "מערבבים חמאה רכה עם שני סוגי הסוכר עד תערובת הומוגנית.", Category: "בצק העוגיה"},
					{ID: models.NewID(), Text: "מוסיפים ביצים בטמפרטורת החדר ומערבבים היטב.", Category: "בצק העוגיה"},
					{ID: models.NewID(), Text: "מוסיפים וניל ומנפים פנימה את כל המצרכים היבשים.", Category: "בצק העוגיה"},
					{ID: models.NewID(), Text: "יוצרים כדורים, מכניסים פנימה את מטבעות השוקולד הלבן הקפואים.", Category: "הרכבה"},
					{ID: models.NewID(), Text: "מקררים את הכדורים ל-15 דקות.", Category: "אפייה"},
					{ID: models.NewID(), Text: "אופים ב-180 מעלות כ-10 דקות.", Category: "אפייה"},
				},
				OvenInstructions: "180 מעלות צלזיוס למשך כ-10 דקות.",
			},
		},
		{
			ID:         "tiramisu",
			CreatedAt:  now - 2000,
			CategoryID: seedCategoryDesserts,
			Image:      "https://images.unsplash.com/photo-1571877223202-5362df505319?q=80&w=1000&auto=format&fit=crop",
			HE: &models.RecipeContent{
				Title:       "טירמיסו",
				Description: "קינוח איטלקי קלאסי המבוסס על בישקוטים ספוגים בקפה וקרם מסקרפונה עשיר.",
				Ingredients: []models.Ingredient{
					{ID: models.NewID(), Name: "אבקת קקאו", Amount: 200, Unit: models.UnitGram, Category: "עיטור"},
					{ID: models.NewID(), Name: "סוכר לבן", Amount: 100, Unit: models.UnitGram, Category: "קרם"},
					{ID: models.NewID(), Name: "בישקוטים", Amount: 20, Unit: models.UnitUnits, Category: "בסיס"},
					{ID: models.NewID(), Name: "גבינת מסקרפונה", Amount: 500, Unit: models.UnitGram, Category: "קרם"},
					{ID: models.NewID(), Name: "ביצים", Amount: 4, Unit: models.UnitUnits, Category: "קרם"},
					{ID: models.NewID(), Name: "שמנת מתוקה", Amount: 250, Unit: models.UnitMl, Category: "קרם"},
					{ID: models.NewID(), Name: "תמצית וניל", Amount: 1, Unit: models.UnitTbsp, Category: "קרם"},
				},
				Instructions: []models.PrepStep{
					{ID: models.NewID(), Text: "מקציפים ביצים וסוכר כ-10 דקות עד לקבלת קרם סמיך.", Category: "הכנת הקרם"},
					{ID: models.NewID(), Text: "מקציפים שמנת מתוקה, מוסיפים מסקרפונה ווניל ומקפלים לתערובת הביצים.", Category: "הכנת הקרם"},
					{ID: models.NewID(), Text: "טובלים בישקוטים בקפה חם מעורבב עם ליקר.", Category: "הרכבה"},
					{ID: models.NewID(), Text: "מסדרים שכבות של קרם ובישקוטים רטובים.", Category: "הרכבה"},
					{ID: models.NewID(), Text: "מפזרים קקאו מעל כל שכבה ובסיום.", Category: "גימור"},
					{ID: models.NewID(), Text: "מקררים לפחות 3 שעות לפני ההגשה.", Category: "גימור"},
				},
				Notes: "ניתן להשתמש בליקר קפה לטעם עמוק יותר.",
			},
		},
		{
			ID:         "garlic-rolls",
			CreatedAt:  now - 3000,
			CategoryID: seedCategoryBakery,
			Image:      "https://images.unsplash.com/photo-1619531006503-4f96446e109d?q=80&w=1000&auto=format&fit=crop",
			HE: &models.RecipeContent{
				Title:       "לחמניות שום-שמיר",
				Description: "לחמניות רכות ואווריריות עם ציפוי שום, פטרוזיליה ושמיר בניחוח משכר.",
				Ingredients: []models.Ingredient{
					{ID: models.NewID(), Name: "קמח לבן", Amount: 500, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "שמרים יבשים", Amount: 1, Unit: models.UnitTbsp, Category: "בצק"},
					{ID: models.NewID(), Name: "סוכר לבן", Amount: 12, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "דבש", Amount: 1, Unit: models.UnitTsp, Category: "בצק"},
					{ID: models.NewID(), Name: "שמן זית", Amount: 50, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "מלח", Amount: 6, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "מים פושרים", Amount: 300, Unit: models.UnitGram, Category: "בצק"},
					{ID: models.NewID(), Name: "שום כתוש", Amount: 2, Unit: models.UnitUnits, Category: "ציפוי"},
					{ID: models.NewID(), Name: "פטרוזיליה קצוצה", Amount: 30, Unit: models.UnitGram, Category: "ציפוי"},
					{ID: models.NewID(), Name: "שמיר קצוץ", Amount: 17.5, Unit: models.UnitGram, Category: "ציפוי"},
				},
				Instructions: []models.PrepStep{
					{ID: models.NewID(), Text: "מערבבים קמח, שמרים, סוכר ודבש במיקסר.", Category: "לישה"},
					{ID: models.NewID(), Text: "מוסיפים מים, שמן ומלח ולשים 10 דקות.", Category: "לישה"},
					{ID: models.NewID(), Text: "מתפיחים 45 דקות עד הכפלת הנפח.", Category: "התפחה"},
					{ID: models.NewID(), Text: "יוצרים כדורים קטנים ומניחים בתבנית להתפחה נוספת של 50 דקות.", Category: "עיצוב"},
					{ID: models.NewID(), Text: "מברישים בביצה ואופים ב-190 מעלות עד הזהבה.", Category: "אפייה"},
					{ID: models.NewID(), Text: "מיד ביציאה מהתנור מברישים בתערובת השום והתבלינים.", Category: "ציפוי"},
				},
				OvenInstructions: "190 מעלות עד להזהבה.",
			},
		},
	}
}

package categorizer

import "kharcha/expense-nlp/internal/models"

// DefaultPrimaryCategories is the built-in keyword table. Iteration order is
// priority order: when keywords of several categories occur in the same
// description, the earliest category wins.
var DefaultPrimaryCategories = []models.CategoryConfig{
	{Name: models.CategoryFood, Keywords: []string{
		"biryani", "pizza", "restaurant", "meal", "lunch", "dinner", "food", "eat", "cafe", "snack",
		"tea", "coffee", "breakfast", "momo", "momos", "noodles", "chowmein", "chowmin", "chow", "ramen",
		"pasta", "rice", "dal", "curry", "khana", "khaana", "chiya", "chai", "dudh", "milk",
		"bhat", "daal", "tarkari", "sabji", "machha", "fish", "chicken", "mutton", "buff", "pork",
		"egg", "anda", "roti", "chapati", "paratha", "samosa", "pakoda", "chaat", "lassi", "lasi",
		"juice", "paani", "water",
	}},
	{Name: models.CategoryTransport, Keywords: []string{
		"petrol", "fuel", "taxi", "uber", "bus", "train", "auto", "rickshaw", "metro", "flight",
		"travel", "tempo", "microbus", "bike", "scooter", "car", "gaadi",
	}},
	{Name: models.CategoryGroceries, Keywords: []string{
		"grocery", "groceries", "vegetables", "fruits", "market", "supermarket", "store", "milk", "bread", "apple",
		"garlic", "potato", "onion", "tomato", "sabji", "tarkari", "phal", "alu", "pyaj", "lasun",
		"dhaniya", "hariyo", "green",
	}},
	{Name: models.CategoryShopping, Keywords: []string{
		"clothes", "shoes", "shopping", "shirt", "dress", "bag", "accessories", "kapada", "jutta", "chappals",
		"sandals",
	}},
	{Name: models.CategoryUtilities, Keywords: []string{
		"electricity", "water", "internet", "phone", "mobile", "wifi", "bill", "current", "paani", "net",
		"recharge",
	}},
	{Name: models.CategoryEntertainment, Keywords: []string{
		"movie", "game", "party", "cinema", "show", "concert", "film", "picture", "khel",
	}},
	{Name: models.CategoryRent, Keywords: []string{
		"rent", "house", "apartment", "room", "ghar", "kotha", "bhada",
	}},
	{Name: models.CategoryLoan, Keywords: []string{
		"loan", "lend", "borrow", "debt", "rin", "gave", "diye", "liye", "udhar", "qarz",
	}},
	{Name: models.CategoryIncome, Keywords: []string{
		"salary", "bonus", "incentive", "refund", "income", "earning", "payment", "received",
	}},
}

// DefaultSecondaryCategories are the broader buckets tried when no primary
// category matched, in priority order.
var DefaultSecondaryCategories = []models.CategoryConfig{
	{Name: models.CategoryTravel, Keywords: []string{"hotel", "stay", "booking", "resort", "lodge", "airbnb", "hostel", "guest house"}},
	{Name: models.CategoryMedical, Keywords: []string{"doctor", "medicine", "hospital", "clinic", "pharmacy", "medical", "health"}},
	{Name: models.CategoryEducation, Keywords: []string{"book", "course", "class", "tuition", "school", "college", "education"}},
	{Name: models.CategoryPersonalCare, Keywords: []string{"salon", "haircut", "beauty", "cosmetic", "spa", "massage"}},
	{Name: models.CategoryGifts, Keywords: []string{"gift", "present", "donation", "charity", "birthday"}},
	{Name: models.CategoryFinance, Keywords: []string{"insurance", "premium", "policy", "bank", "fee", "charge"}},
	{Name: models.CategoryMaintenance, Keywords: []string{"repair", "fix", "maintenance", "service", "cleaning"}},
	{Name: models.CategoryFitness, Keywords: []string{"gym", "fitness", "sport", "exercise", "yoga", "swimming"}},
}

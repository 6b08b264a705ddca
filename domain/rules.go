package domain

// Uncategorized is the fallback label for items no rule matches.
const Uncategorized = "Uncategorized"

// CategoryRule maps a category label to its trigger keywords.
type CategoryRule struct {
	Category string
	Keywords []string
}

// Rules is the category rule table, evaluated top-down. The slice order is
// the precedence order: when a keyword appears under more than one category
// ("butter", "ghee"), the earlier rule owns it. The table is never mutated
// at runtime.
var Rules = []CategoryRule{
	{
		Category: "Vegetables",
		Keywords: []string{"tomato", "potato", "onion", "carrot", "cabbage", "cauliflower", "spinach", "palak", "brinjal", "bhindi", "okra", "capsicum", "cucumber", "beans", "peas", "garlic", "ginger", "chilli", "coriander", "mint", "beetroot", "radish", "pumpkin", "gourd", "drumstick"},
	},
	{
		Category: "Fruits",
		Keywords: []string{"apple", "banana", "mango", "orange", "grapes", "papaya", "guava", "pomegranate", "watermelon", "melon", "pineapple", "lemon", "lime", "chikoo", "sapota", "custard apple", "pear", "kiwi", "strawberry"},
	},
	{
		Category: "Dairy & Milk Products",
		Keywords: []string{"milk", "curd", "dahi", "yogurt", "paneer", "cheese", "butter", "ghee", "cream", "buttermilk", "lassi", "khoya", "condensed milk"},
	},
	{
		Category: "Grains & Pulses",
		Keywords: []string{"rice", "wheat", "atta", "flour", "maida", "rava", "sooji", "poha", "dal", "toor", "moong", "chana", "masoor", "urad", "rajma", "chickpea", "besan", "millet", "ragi", "oats", "quinoa"},
	},
	{
		Category: "Spices & Masalas",
		Keywords: []string{"salt", "turmeric", "haldi", "cumin", "jeera", "mustard seeds", "coriander powder", "garam masala", "masala", "pepper", "cardamom", "clove", "cinnamon", "bay leaf", "asafoetida", "hing", "fenugreek", "methi", "saffron", "chilli powder"},
	},
	{
		Category: "Oils & Ghee",
		Keywords: []string{"oil", "sunflower oil", "groundnut oil", "mustard oil", "coconut oil", "olive oil", "ghee", "vanaspati"},
	},
	{
		Category: "Bakery & Breads",
		Keywords: []string{"bread", "bun", "pav", "rusk", "toast", "cake", "biscuit", "cookie", "butter", "croissant", "khari"},
	},
	{
		Category: "Snacks & Beverages",
		Keywords: []string{"tea", "chai", "coffee", "juice", "soda", "chips", "namkeen", "mixture", "chivda", "popcorn", "chocolate", "sweets", "mithai", "noodles", "pasta", "ketchup", "jam", "honey", "pickle", "papad"},
	},
	{
		Category: "Household & Cleaning",
		Keywords: []string{"detergent", "soap bar", "dishwash", "phenyl", "floor cleaner", "broom", "mop", "scrub", "garbage bag", "tissue", "napkin", "matchbox", "agarbatti", "camphor", "naphthalene"},
	},
	{
		Category: "Personal Care",
		Keywords: []string{"soap", "shampoo", "toothpaste", "toothbrush", "comb", "talcum", "lotion", "face wash", "sanitizer", "razor", "shaving", "deodorant", "hair oil"},
	},
}

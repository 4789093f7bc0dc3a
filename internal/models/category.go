package models

// Category labels.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryGroceries     = "Groceries"
	CategoryShopping      = "Shopping"
	CategoryUtilities     = "Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryRent          = "Rent"
	CategoryLoan          = "Loan"
	CategoryIncome        = "Income"
	CategoryTravel        = "Travel"
	CategoryMedical       = "Medical"
	CategoryEducation     = "Education"
	CategoryPersonalCare  = "Personal Care"
	CategoryGifts         = "Gifts"
	CategoryFinance       = "Finance"
	CategoryMaintenance   = "Maintenance"
	CategoryFitness       = "Fitness"
	CategoryOther         = "Other"
)

// CategoryConfig represents a category and its trigger keywords in the YAML file
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// SlangMapping maps a romanized or slang token to its canonical English form.
type SlangMapping struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// SlangConfig represents the structure of the slang YAML file
type SlangConfig struct {
	Mappings []SlangMapping `yaml:"mappings"`
}

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

package specifier

// Link is a single external reference attached to a record.
type Link struct {
	Source string `yaml:"source"`
}

// Record is one validated specifier entry from a catalog document.
// Name is unique within its category; the same name may exist in a
// sibling category.
type Record struct {
	Name          string   `yaml:"name"`
	Comment       string   `yaml:"comment"`
	Samples       []string `yaml:"samples"`
	Incompatible  []string `yaml:"incompatible"`
	Documentation *Link    `yaml:"documentation"`
	Image         *Link    `yaml:"image"`
}

// Category identifies one of the four specifier kinds. Each category is
// backed by its own remote catalog document.
type Category string

const (
	CategoryProperty Category = "property"
	CategoryClass    Category = "class"
	CategoryEnum     Category = "enum"
	CategoryFunction Category = "function"
)

// Categories returns every category in the fixed iteration order used by
// cross-category lookup: property, class, enum, function. The order is
// externally observable (a name present in two categories always resolves
// to the earlier one), so it must not change.
func Categories() []Category {
	return []Category{CategoryProperty, CategoryClass, CategoryEnum, CategoryFunction}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryProperty, CategoryClass, CategoryEnum, CategoryFunction:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

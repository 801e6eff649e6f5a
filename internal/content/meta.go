package content

// Category is one of the fixed tax categories served by the portal.
type Category string

const (
	Acquisition Category = "acquisition"
	Property    Category = "property"
	Vehicle     Category = "vehicle"
)

// Categories lists every category in portal order.
var Categories = []Category{Acquisition, Property, Vehicle}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Meta is the front-matter of one content document plus derived fields.
type Meta struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	LegalBasis  string   `json:"legalBasis,omitempty"`
	Audience    string   `json:"audience,omitempty"`
}

// Document is one resolved, parsed content file. Body stays raw markup;
// rendering is the caller's concern.
type Document struct {
	Meta Meta   `json:"meta"`
	Body string `json:"body"`
}

// Version describes one published version file of a logical document.
type Version struct {
	Version  string `json:"version"`
	FilePath string `json:"filePath"`
	IsLatest bool   `json:"isLatest"`
}

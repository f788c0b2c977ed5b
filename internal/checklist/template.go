// internal/checklist/template.go
package checklist

// TemplateItem is a single inspectable point of interest within a category.
type TemplateItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Required bool   `json:"required"`
}

// Category groups template items under a display heading.
type Category struct {
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items"`
}

// Property types with dedicated templates. Anything else falls back to
// Residential.
const (
	PropertyTypeResidential = "Residential"
	PropertyTypeCommercial  = "Commercial"
)

var residentialTemplate = []Category{
	{
		Name: "Exterior",
		Items: []TemplateItem{
			{ID: "ext-roof", Text: "Roof condition", Required: true},
			{ID: "ext-gutters", Text: "Gutters and downspouts", Required: true},
			{ID: "ext-siding", Text: "Siding / exterior walls", Required: true},
			{ID: "ext-foundation", Text: "Foundation visible cracks", Required: true},
			{ID: "ext-drainage", Text: "Grading and drainage", Required: false},
			{ID: "ext-driveway", Text: "Driveway and walkways", Required: false},
		},
	},
	{
		Name: "Interior",
		Items: []TemplateItem{
			{ID: "int-walls", Text: "Walls and ceilings", Required: true},
			{ID: "int-floors", Text: "Flooring condition", Required: true},
			{ID: "int-windows", Text: "Windows and seals", Required: true},
			{ID: "int-doors", Text: "Doors and locks", Required: true},
			{ID: "int-plumbing", Text: "Plumbing fixtures and leaks", Required: true},
			{ID: "int-electrical", Text: "Outlets and switches", Required: true},
			{ID: "int-hvac", Text: "Heating / cooling operation", Required: false},
		},
	},
	{
		Name: "Safety",
		Items: []TemplateItem{
			{ID: "saf-smoke", Text: "Smoke detectors", Required: true},
			{ID: "saf-co", Text: "Carbon monoxide detectors", Required: true},
			{ID: "saf-egress", Text: "Emergency egress", Required: true},
			{ID: "saf-stairs", Text: "Stairs and railings", Required: false},
		},
	},
	{
		Name: "Amenities",
		Items: []TemplateItem{
			{ID: "amn-appliances", Text: "Included appliances", Required: false},
			{ID: "amn-laundry", Text: "Laundry hookups", Required: false},
			{ID: "amn-outdoor", Text: "Outdoor amenities", Required: false},
		},
	},
}

var commercialTemplate = []Category{
	{
		Name: "Exterior",
		Items: []TemplateItem{
			{ID: "ext-roof", Text: "Roof membrane and flashing", Required: true},
			{ID: "ext-facade", Text: "Facade and signage", Required: true},
			{ID: "ext-parking", Text: "Parking surfaces and striping", Required: true},
			{ID: "ext-access", Text: "ADA access routes", Required: true},
		},
	},
	{
		Name: "Interior",
		Items: []TemplateItem{
			{ID: "int-walls", Text: "Walls and ceilings", Required: true},
			{ID: "int-floors", Text: "Flooring condition", Required: true},
			{ID: "int-lighting", Text: "Lighting operation", Required: true},
			{ID: "int-restrooms", Text: "Restroom fixtures", Required: true},
			{ID: "int-hvac", Text: "HVAC operation", Required: true},
		},
	},
	{
		Name: "Safety",
		Items: []TemplateItem{
			{ID: "saf-fire", Text: "Fire suppression / extinguishers", Required: true},
			{ID: "saf-alarm", Text: "Alarm panel", Required: true},
			{ID: "saf-exits", Text: "Exit signage and egress", Required: true},
			{ID: "saf-electrical", Text: "Electrical panel clearance", Required: true},
		},
	},
	{
		Name: "Amenities",
		Items: []TemplateItem{
			{ID: "amn-elevator", Text: "Elevator operation", Required: false},
			{ID: "amn-loading", Text: "Loading dock", Required: false},
		},
	},
}

// Template returns the checklist template for a property type. Unknown or
// empty types default to Residential. Deterministic, never empty.
func Template(propertyType string) []Category {
	if propertyType == PropertyTypeCommercial {
		return commercialTemplate
	}
	return residentialTemplate
}

// CountItems returns the number of items across all categories.
func CountItems(tmpl []Category) int {
	n := 0
	for _, c := range tmpl {
		n += len(c.Items)
	}
	return n
}

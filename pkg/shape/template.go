package shape

// Template draws one entity as an SVG fragment.
type Template interface {
	// Draw returns the SVG fragment for the entity described by a.
	Draw(a Attrs) string
}

// TemplateFunc adapts an ordinary function to the Template interface.
type TemplateFunc func(a Attrs) string

// Draw calls f(a).
func (f TemplateFunc) Draw(a Attrs) string { return f(a) }

// Attrs is the full attribute set handed to a template.
//
// Node templates read the node fields and the position. Edge templates
// read the endpoint coordinates; the remaining edge fields are provided so
// templates can label or annotate the connection.
type Attrs struct {
	ID          string  // Entity identity
	Name        string  // Diagram-local name
	Label       string  // Display text (the entity name)
	Description string  // Free-form description
	Template    string  // Requested template name (before fallback)
	Size        float64 // Node radius/scale
	X, Y        float64 // Node center
	Dependent   bool    // Node is derived/non-primary

	Source, Target string  // Edge endpoint node names
	X1, Y1, X2, Y2 float64 // Edge endpoint coordinates
}

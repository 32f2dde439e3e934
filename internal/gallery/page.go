package gallery

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Page holds everything the HTML shell needs to boot a drawing
type Page struct {
	Fullscreen     bool
	SmallHeader    bool
	CSS            template.CSS
	ThreeJSVersion string
	Drawing        Animation
}

// RenderPage writes the HTML shell for p
func RenderPage(w io.Writer, p Page) error {
	if err := indexTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

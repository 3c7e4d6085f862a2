package render

import "strings"

// ExportFilename derives the default export file name from the root note,
// "#" spelled out so the name stays shell and URL safe: root A# exports as
// otelauta-Asharp.png.
func ExportFilename(root, ext string) string {
	return "otelauta-" + strings.ReplaceAll(root, "#", "sharp") + "." + ext
}

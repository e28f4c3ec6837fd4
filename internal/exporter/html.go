package exporter

import (
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"
)

// sceneMIMEType is the script-tag media type the downstream viewer looks for.
const sceneMIMEType = "application/vnd.sceneport.scene+json"

var htmlWrapperTmpl = template.Must(template.New("wrapper").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>{{.Name}}</title>

    <meta name="scene:id" content="{{.ID}}">
    <meta name="scene:name" content="{{.Name}}">
    <meta name="scene:author" content="{{.Author}}">
    <meta name="scene:rating" content="{{.Rating}}">
{{- if .Thumbnail}}
    <meta name="scene:thumbnail" content="{{.Thumbnail}}">
{{- end}}

    <script id="scene-data" type="{{.MIMEType}}">
    {{.SceneJSON}}
    </script>
</head>
<body>
    <h1>{{.Name}}</h1>
{{- if .Description}}
    <p>{{.Description}}</p>
{{- end}}
</body>
</html>
`))

type htmlWrapperData struct {
	Name        string
	ID          string
	Author      string
	Rating      string
	Thumbnail   string
	Description string
	MIMEType    string
	SceneJSON   template.JS
}

// WriteHTMLWrapper writes a static HTML document embedding the scene JSON in
// a script tag, with meta tags mirroring the document metadata, for simple
// web embedding. Failures here never abort the primary export; callers treat
// them as warnings.
func WriteHTMLWrapper(doc *Document, path string) error {
	payload, err := json.MarshalIndent(doc, "    ", "  ")
	if err != nil {
		return err
	}

	rating := doc.Rating
	if rating == "" {
		rating = "GENERAL"
	}

	data := htmlWrapperData{
		Name:        doc.Name,
		ID:          doc.ID,
		Author:      doc.Author,
		Rating:      rating,
		Thumbnail:   doc.Thumbnail,
		Description: doc.Description,
		MIMEType:    sceneMIMEType,
		SceneJSON:   template.JS(payload),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	execErr := htmlWrapperTmpl.Execute(f, data)
	if closeErr := f.Close(); execErr == nil {
		execErr = closeErr
	}
	return execErr
}

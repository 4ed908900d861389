package site

// pageTemplate wraps markdown pages so they share the site stylesheet
// and the hero property hook on <html>.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{if .Stylesheet}}<link rel="stylesheet" href="{{.BasePath}}{{.Stylesheet}}">{{end}}
</head>
<body>
<main class="page">
{{.Content}}
</main>
</body>
</html>
`

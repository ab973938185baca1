package web

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; background: #fafafa; }
    h1 { font-size: 1.4rem; }
    img { max-width: 100%; border: 1px solid #ddd; background: #fff; }
    footer { color: #888; font-size: 0.8rem; margin-top: 1rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <img src="{{.PlotURL}}" alt="Climbing conditions dashboard">
  <footer>Generated at {{.GeneratedAt}}</footer>
</body>
</html>
`

const errorTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    h1 { color: #8b0000; font-size: 1.4rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>{{.Message}}</p>
</body>
</html>
`

const noDataTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>No data available</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    h1 { font-size: 1.4rem; }
  </style>
</head>
<body>
  <h1>No data available to plot.</h1>
  <p>Every forecast fetch failed for this request. Refresh to try again.</p>
</body>
</html>
`

package web

import "html/template"

const layoutTmpl = `{{define "head"}}<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>vidrange</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; }
.section { margin: 1.5rem 0; }
.grid { display: grid; grid-template-columns: 1fr 1fr; gap: 8px; }
.list { max-height: 420px; overflow: auto; border: 1px solid #ddd; padding: 8px; }
.item { padding: 2px 0; }
.err { color: #b00020; }
.ok { color: #1b7f3b; }
.hint { color: #666; }
pre.log { background: #111; color: #eee; padding: 1rem; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>vidrange</h1>
{{end}}
{{define "foot"}}</body>
</html>
{{end}}`

const indexTmpl = `{{define "index"}}{{template "head"}}
<form method="post" action="/extract" class="section">
  <h2>1. Extract a channel</h2>
  <input type="text" name="user_input" placeholder="e.g. https://www.youtube.com/@GoogleDevelopers or tiktok username" required>
  <label><input type="checkbox" name="no_cache"> skip cache</label>
  <button type="submit">Extract</button>
</form>
<form method="post" action="/preview" class="section">
  <h2>2. Pick a list and range</h2>
  {{if .Lists}}
  <select name="file" required>
    {{range .Lists}}<option value="{{.Name}}">{{.Name}} ({{.Lines}} URLs)</option>
    {{end}}
  </select>
  <div class="grid">
    <div><label>Start #</label><input type="number" name="start" min="1" placeholder="e.g. 1"></div>
    <div><label>End #</label><input type="number" name="end" min="1" placeholder="e.g. 25"></div>
  </div>
  <button type="submit">Preview File</button>
  {{else}}
  <p class="hint">No .txt list files in {{.Dir}} yet.</p>
  {{end}}
</form>
{{template "foot"}}{{end}}`

const extractedTmpl = `{{define "extracted"}}{{template "head"}}
<h3>Extracting from platform: {{.Platform}}</h3>
<p class="ok">Saved to <code>{{.Dir}}/{{.File}}</code>{{if .FromCache}} (cached){{end}}</p>
<div class="list">
{{range .URLs}}<div class="item"><span>#{{.N}}</span> <code>{{.Text}}</code></div>
{{end}}
</div>
<p><a class="hint" href="/">Back</a></p>
{{template "foot"}}{{end}}`

const previewTmpl = `{{define "preview"}}{{template "head"}}
<h3>Preview: {{.File}} ({{.Total}} lines)</h3>
<div class="list">
{{range .Lines}}<div class="item"><strong>{{.N}}.</strong> <code>{{.Text}}</code></div>
{{end}}
</div>
<form method="post" action="/download" class="section">
  <input type="hidden" name="file" value="{{.File}}">
  <div class="grid">
    <div><label>Start #</label><input type="number" name="start" value="{{.Start}}" min="1"></div>
    <div><label>End #</label><input type="number" name="end" value="{{.End}}" min="1"></div>
  </div>
  <button type="submit">Start Downloads</button>
  <a class="hint" href="/">Back</a>
</form>
{{template "foot"}}{{end}}`

const errorTmpl = `{{define "error"}}{{template "head"}}
<p class="err">{{.Message}}</p>
{{if .Detail}}<pre class="log">{{.Detail}}</pre>{{end}}
<p><a class="hint" href="/">Back</a></p>
{{template "foot"}}{{end}}`

var pages = template.Must(template.New("pages").Parse(
	layoutTmpl + indexTmpl + extractedTmpl + previewTmpl + errorTmpl))

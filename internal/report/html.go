package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GenerateHTML renders report.html from the run report in dir.
func GenerateHTML(dir string) (string, error) {
	index, details, err := Read(dir)
	if err != nil {
		return "", err
	}

	data := htmlData{
		Index:   index,
		Details: details,
	}
	var sb strings.Builder
	if err := htmlTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	out := filepath.Join(dir, "report.html")
	if err := os.WriteFile(out, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write html: %w", err)
	}
	return out, nil
}

type htmlData struct {
	Index   *Index
	Details []CaseDetail
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"fmttime": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	"lower":   strings.ToLower,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>UI Harness Run {{.Index.RunID}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #ddd; }
.status { font-weight: 600; text-transform: uppercase; font-size: 0.8rem; }
.status.passed { color: #15803d; }
.status.failed { color: #b91c1c; }
.status.skipped { color: #a16207; }
.summary span { margin-right: 1.2rem; }
details { margin: 0.4rem 0; }
.step-error { color: #b91c1c; }
</style>
</head>
<body>
<h1>UI Harness Run <code>{{.Index.RunID}}</code>
  <span class="status {{lower (printf "%s" .Index.Status)}}">{{.Index.Status}}</span></h1>
<p>Environment: <b>{{.Index.Environment}}</b> &middot; Base URL: <code>{{.Index.BaseURL}}</code>
  &middot; Started {{fmttime .Index.StartTime}}</p>
<p class="summary">
  <span>Total: {{.Index.Summary.Total}}</span>
  <span>Passed: {{.Index.Summary.Passed}}</span>
  <span>Failed: {{.Index.Summary.Failed}}</span>
  <span>Skipped: {{.Index.Summary.Skipped}}</span>
</p>
<table>
<tr><th>Case</th><th>Status</th><th>Duration</th><th>Steps</th><th>Error</th></tr>
{{range .Index.Cases}}
<tr>
  <td>{{.Name}}</td>
  <td class="status {{lower (printf "%s" .Status)}}">{{.Status}}</td>
  <td>{{.Duration}} ms</td>
  <td>{{.Steps}}</td>
  <td>{{.Error}}</td>
</tr>
{{end}}
</table>
{{range .Details}}
<details>
  <summary>{{.Name}} ({{len .Steps}} steps)</summary>
  <ol>
  {{range .Steps}}
    <li>
      {{.Name}} &middot; <span class="status {{lower (printf "%s" .Status)}}">{{.Status}}</span>
      {{if .Error}}<div class="step-error">{{.Error}}</div>{{end}}
      {{if .Screenshot}}<div><code>{{.Screenshot}}</code></div>{{end}}
    </li>
  {{end}}
  </ol>
</details>
{{end}}
</body>
</html>
`))

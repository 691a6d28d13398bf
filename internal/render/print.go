package render

import (
	"bytes"
	"fmt"
	"html/template"

	"stepResume/internal/draft"
)

// printTemplateString 是打印版面的 Go HTML 模板。
// A4 尺寸按 96 DPI 固定为 794x1122，和 PDF 导出参数保持一致。
const printTemplateString = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: 'Helvetica', 'Arial', sans-serif;
            font-size: 10pt;
            color: #222;
        }
        .a4-page {
            width: 794px; /* A4 @ 96 DPI */
            min-height: 1122px; /* A4 @ 96 DPI */
            background: white;
            margin: 0;
            padding: 36px;
            box-sizing: border-box;
            display: flex;
            gap: 24px;
        }
        .column-main { flex: 1 1 auto; }
        .column-sidebar { flex: 0 0 220px; }
        .section { margin-bottom: 14px; }
        .section h2 {
            font-size: 11pt;
            text-transform: uppercase;
            letter-spacing: 0.08em;
            border-bottom: 1px solid {{.Accent | safeCSS}};
            color: {{.Accent | safeCSS}};
            padding-bottom: 2px;
            margin: 0 0 6px 0;
        }
        .section.kind-name h2 { display: none; }
        .section.kind-name p {
            font-size: 20pt;
            font-weight: bold;
            margin: 0 0 2px 0;
        }
        .section p { margin: 0 0 3px 0; }
        @media print {
            @page { size: A4; margin: 0; }
            body { background: white; }
        }
    </style>
</head>
<body>
    <div class="a4-page">
        <div class="column-main">
            {{range .Main}}
            <div class="section kind-{{.Kind}}">
                <h2>{{.Title}}</h2>
                {{range .Lines}}<p>{{.}}</p>
                {{end}}
            </div>
            {{end}}
        </div>
        {{if .Sidebar}}
        <div class="column-sidebar">
            {{range .Sidebar}}
            <div class="section kind-{{.Kind}}">
                <h2>{{.Title}}</h2>
                {{range .Lines}}<p>{{.}}</p>
                {{end}}
            </div>
            {{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
`

type printTemplateData struct {
	Accent  string
	Main    []Section
	Sidebar []Section
}

var printTemplate = template.Must(
	template.New("print").
		Funcs(template.FuncMap{
			// Accent 已由 NormalizeChoice 限定为 #hex 形式，可安全进 CSS。
			"safeCSS": func(s string) template.CSS { return template.CSS(s) },
		}).
		Parse(printTemplateString),
)

// PrintHTML 渲染打印版面。分节的包含规则与 PlainText/Sections 一致，
// 模板选择只影响主栏/侧栏的划分与强调色。
func PrintHTML(d draft.Draft, choice Choice) (string, error) {
	data := printTemplateData{Accent: choice.Accent}
	for _, section := range Sections(d, choice.Template) {
		if section.Placement == PlacementSidebar {
			data.Sidebar = append(data.Sidebar, section)
			continue
		}
		data.Main = append(data.Main, section)
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute print template: %w", err)
	}
	return buf.String(), nil
}

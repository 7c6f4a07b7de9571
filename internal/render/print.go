package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/tailorpro/backend/internal/models"
)

// PrintHTML renders the tree as one self-contained, print-styled HTML
// document for the print/PDF sink. The page box uses the same logical
// pixel mapping as the live form so shared elements land on identical
// positions; the physical size comes from the @page directive. The action
// bar at the bottom is for the on-screen preview only and is removed by
// the print media rules.
func PrintHTML(tree *Tree, ctx *Context) (string, error) {
	if ctx == nil {
		ctx = &Context{}
	}

	view := printView{
		Tree:  tree,
		Title: "Measurement Slip",
	}
	if ctx.Customer != nil {
		view.Title = fmt.Sprintf("Measurement Slip - %s", ctx.Customer.Name)
	}
	if ctx.Order != nil {
		view.OrderNo = fmt.Sprintf("%d", ctx.Order.ID)
		view.DueDate = ctx.Order.DueDate.Format("02/01/2006")
		view.Advance = ctx.Order.AdvancePayment
	}
	if ctx.Workers != nil {
		view.Workers = *ctx.Workers
	}

	var sb strings.Builder
	if err := printTemplate.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("rendering print html: %w", err)
	}
	return sb.String(), nil
}

type printView struct {
	*Tree
	Title   string
	OrderNo string
	DueDate string
	Advance string
	Workers models.WorkerNames
}

var printFuncs = template.FuncMap{
	"pct": func(v float64) string {
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
	},
	"svg": func(markup string) template.HTML {
		// Embedded assets only; never user input.
		return template.HTML(markup)
	},
	"selected": func(n Node) *OptionNode {
		for i := range n.Options {
			if n.Options[i].Selected {
				return &n.Options[i]
			}
		}
		return nil
	},
}

var printTemplate = template.Must(template.New("slip").Funcs(printFuncs).Parse(`<!DOCTYPE html>
<html lang="ur">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=Noto+Nastaliq+Urdu:wght@400;500;600;700&display=swap" rel="stylesheet">
<style>
*, *::before, *::after { margin: 0; padding: 0; box-sizing: border-box; }

body {
    font-family: Arial, sans-serif;
    background: #ccc;
    color: #0f172a;
    padding-bottom: 100px;
}

.slip {
    position: relative;
    width: {{.PageWidth}}px;
    height: {{.PageHeight}}px;
    margin: 10mm auto;
    background: #fff;
    border: 3px dashed #c00;
    direction: ltr;
}

.urdu { font-family: 'Noto Nastaliq Urdu', serif; }

@page {
    size: {{.PageSize}} portrait;
    margin: 0;
}

@media print {
    body {
        background: #fff;
        padding-bottom: 0;
        -webkit-print-color-adjust: exact;
        print-color-adjust: exact;
    }
    .slip {
        margin: 0 auto;
        border: none;
    }
    .action-bar { display: none !important; }
}

.el { position: absolute; }

.text-block {
    display: flex;
    align-items: center;
    justify-content: center;
    text-align: center;
    font-weight: 700;
}

.field {
    display: flex;
    align-items: center;
}
.field .lbl {
    font-weight: 600;
    color: #475569;
    font-size: 13px;
    padding: 0 6px;
    white-space: nowrap;
    background: #fff;
    flex-shrink: 0;
}
.field .val {
    flex: 1;
    min-width: 0;
    font-weight: 700;
    font-size: 14px;
    padding: 0 6px;
    direction: ltr;
}
.field .val.centered { text-align: center; font-size: 16px; }
.field .underline {
    position: absolute;
    left: 0; right: 0; bottom: 0;
    border-bottom: 1px solid #cbd5e1;
}
.field .underline.dotted {
    left: 24px; right: 4px; bottom: 4px;
    border-bottom-style: dashed;
}

.shape svg { width: 100%; height: 100%; }
.shape .meas {
    position: absolute;
    font-weight: 700;
    font-size: 14px;
    text-align: center;
    direction: ltr;
    white-space: nowrap;
}

.choice {
    display: flex;
    align-items: flex-end;
    justify-content: center;
    gap: 10px;
}
.choice .opt { text-align: center; }
.choice .opt svg { width: 40px; height: 32px; }
.choice .opt .cap {
    font-size: 11px;
    font-weight: 600;
    color: #475569;
    white-space: nowrap;
}
.choice .pick {
    width: 100%;
    text-align: right;
    direction: rtl;
    font-size: 13px;
    font-weight: 600;
    color: #0f172a;
    border: 1px solid #cbd5e1;
    border-radius: 4px;
    padding: 2px 6px;
    background: #fff;
}

.action-bar {
    position: fixed;
    bottom: 30px;
    left: 50%;
    transform: translateX(-50%);
    background: #fff;
    padding: 12px 25px;
    border-radius: 16px;
    box-shadow: 0 10px 40px rgba(0,0,0,0.2), 0 0 0 1px rgba(0,0,0,0.05);
    display: flex;
    gap: 20px;
    z-index: 9999;
}
.action-bar button {
    border: 1px solid rgba(0,0,0,0.1);
    border-bottom-width: 4px;
    padding: 10px 24px;
    border-radius: 10px;
    cursor: pointer;
    font-weight: 700;
    font-size: 15px;
}
.action-bar .primary { background: #0ea5e9; color: #fff; }
.action-bar .danger { background: #ef4444; color: #fff; }
.action-bar .ctx { align-self: center; font-size: 13px; color: #475569; }
</style>
</head>
<body>

<div class="action-bar">
    {{- if .OrderNo}}
    <span class="ctx">Order #{{.OrderNo}} · Due {{.DueDate}}{{if .Advance}} · Advance {{.Advance}}{{end}}{{if .Workers.Cutter}} · Cutter {{.Workers.Cutter}}{{end}}{{if .Workers.Checker}} · Checker {{.Workers.Checker}}{{end}}</span>
    {{- end}}
    <button onclick="window.print()" class="primary">Print</button>
    <button onclick="window.close()" class="danger">Close</button>
</div>

<div class="slip">
{{- range .Nodes}}
{{- if eq .Kind "rule"}}
    <div class="el" style="left: {{pct .X}}%; top: {{pct .Y}}%; width: {{pct .Width}}%; height: {{pct .Height}}%; background-color: {{.Color}};"></div>
{{- else if eq .Kind "text"}}
    <div class="el text-block{{if eq .Direction "rtl"}} urdu{{end}}" style="left: {{pct .X}}%; top: {{pct .Y}}%; {{if .Width}}width: {{pct .Width}}%;{{end}} {{if .Height}}height: {{pct .Height}}%;{{end}} font-size: {{if .FontSize}}{{.FontSize}}{{else}}14{{end}}px; color: {{if .Color}}{{.Color}}{{else}}#0f172a{{end}}; direction: {{if .Direction}}{{.Direction}}{{else}}ltr{{end}};">
        <div>{{range .Lines}}<div>{{.}}</div>{{end}}</div>
    </div>
{{- else if eq .Kind "input"}}
    <div class="el field" style="left: {{pct .X}}%; top: {{pct .Y}}%; {{if .Width}}width: {{pct .Width}}%;{{end}} {{if .Height}}height: {{pct .Height}}%;{{end}}">
        {{- if not .HideLabel}}<span class="lbl">{{.Label}}</span>{{end}}
        <span class="val{{if .HideLabel}} centered{{end}}">{{.Value}}</span>
        <span class="underline{{if .DottedLine}} dotted{{end}}"></span>
    </div>
{{- else if eq .Kind "shape"}}
    <div class="el shape" style="left: {{pct .X}}%; top: {{pct .Y}}%; width: {{pct .Width}}%; height: {{pct .Height}}%;">
        {{svg .AssetSVG}}
        {{- range .Inputs}}
        <span class="meas" style="left: {{pct .LeftPct}}%; top: {{pct .TopPct}}%; width: {{pct .WidthCh}}ch; transform: translate({{pct .ShiftX}}%, {{pct .ShiftY}}%);">{{.Value}}</span>
        {{- end}}
    </div>
{{- else if eq .Kind "choice"}}
    <div class="el choice" style="left: {{pct .X}}%; top: {{pct .Y}}%; width: {{pct .Width}}%; height: {{pct .Height}}%;">
        {{- with selected .}}
        {{- if .AssetSVG}}
        <div class="opt">{{svg .AssetSVG}}<div class="cap urdu">{{.Label}}</div></div>
        {{- else}}
        <div class="pick urdu">{{.Label}}</div>
        {{- end}}
        {{- end}}
    </div>
{{- end}}
{{- end}}
</div>

</body>
</html>
`))

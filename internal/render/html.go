package render

import (
	"strconv"
	"strings"

	"github.com/dekarrin/elops/internal/analysis"
	"github.com/dekarrin/elops/internal/grammar"
)

const tableStyle = `
    <style type="text/css">
        .tg {
            border-collapse: collapse;
            border-color: #bbb;
            border-spacing: 0;
        }

        .tg td {
            background-color: #E0FFEB;
            border-color: #bbb;
            border-style: solid;
            border-width: 1px;
            color: #202020;
            font-family: Monospace, sans-serif, Arial;
            font-size: 14px;
            overflow: hidden;
            padding: 3px 8px;
            word-break: normal;
        }

        .tg th {
            background-color: #9DE0AD;
            border-color: #bbb;
            border-style: solid;
            border-width: 1px;
            color: #202020;
            font-family: Monospace, sans-serif, Arial;
            font-size: 14px;
            font-weight: normal;
            overflow: hidden;
            padding: 3px 8px;
            word-break: normal;
        }

        .tg .tg-head {
            border-color: #202020;
            color: #202020;
            font-weight: bold;
            text-align: center;
            vertical-align: middle
        }

        .tg .tg-cell-center {
            border-color: #202020;
            color: #202020;
            font-family: Monospace, sans-serif, Arial !important;
            font-size: 14px;
            text-align: center;
            vertical-align: top
        }

        .tg .tg-cell-left {
            border-color: #202020;
            color: #202020;
            font-family: Monospace, sans-serif, Arial !important;
            font-size: 14px;
            text-align: left;
            vertical-align: top
        }
    </style>
`

// formatCell escapes text for use inside an HTML table cell. Spaces become
// non-breaking so set contents keep their separation.
func formatCell(text string) string {
	var sb strings.Builder
	for _, c := range text {
		switch c {
		case ' ':
			sb.WriteString("&nbsp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '&':
			sb.WriteString("&amp;")
		case '"':
			sb.WriteString("&quot;")
		case '\'':
			sb.WriteString("&apos;")
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func line(text string) string {
	return text + "\n"
}

// setCell renders a symbol set as its sorted names, space-separated.
func setCell(st *grammar.SymbolTable, set analysis.SymbolSet) string {
	return strings.Join(analysis.Names(st, set), " ")
}

// HTML renders the analysis results as a standalone HTML document with the
// sections selected by opts. Output is deterministic for a given grammar:
// row and column orders come from the table projector and set contents are
// sorted by name.
func HTML(gc *grammar.Context, a *analysis.Analyzer, opts Options) string {
	var sb strings.Builder

	sb.WriteString(line("<!DOCTYPE html>"))
	sb.WriteString(line("<html>"))
	sb.WriteString(line("<head><title>" + formatCell(opts.Title) + "</title></head>"))
	sb.WriteString(line("<body>"))

	if opts.ProductionTable {
		buildProductionTable(&sb, gc, a)
	}
	if opts.LL1Table {
		buildLL1Table(&sb, a.Table())
	}

	sb.WriteString(line("</body>"))
	sb.WriteString(line("</html>"))

	return sb.String()
}

func buildProductionTable(sb *strings.Builder, gc *grammar.Context, a *analysis.Analyzer) {
	st := gc.Symbols

	sb.WriteString(line("<h2>Production Table</h2>"))
	sb.WriteString(tableStyle)
	sb.WriteString(line(`<table class="tg">`))

	sb.WriteString(line("<thead>"))
	sb.WriteString(line("<tr>"))
	sb.WriteString(line(`<th class="tg-head">Id</th>`))
	sb.WriteString(line(`<th class="tg-head">Production(A -&gt; XYZ)</th>`))
	sb.WriteString(line(`<th class="tg-head">FirstSet(XYZ)</th>`))
	sb.WriteString(line(`<th class="tg-head">FollowSet(A)</th>`))
	sb.WriteString(line(`<th class="tg-head">PredictSet(XYZ)</th>`))
	sb.WriteString(line(`<th class="tg-head">IsNillable(XYZ)</th>`))
	sb.WriteString(line("</tr>"))
	sb.WriteString(line("</thead>"))

	sb.WriteString(line("<tbody>"))
	for _, p := range gc.Prods.Productions() {
		nillable := "no"
		if a.RHSNullable(p.ID) {
			nillable = "yes"
		}

		sb.WriteString(line("<tr>"))
		sb.WriteString(line(`<td class="tg-cell-center">` + strconv.Itoa(p.ID) + "</td>"))
		sb.WriteString(line(`<td class="tg-cell-left">` + formatCell(gc.Prods.Format(st, p, true)) + "</td>"))
		sb.WriteString(line(`<td class="tg-cell-left">` + formatCell(setCell(st, a.RHSFirst(p.ID))) + "</td>"))
		sb.WriteString(line(`<td class="tg-cell-left">` + formatCell(setCell(st, a.Follow(p.LHS))) + "</td>"))
		sb.WriteString(line(`<td class="tg-cell-left">` + formatCell(setCell(st, a.Predict(p.ID))) + "</td>"))
		sb.WriteString(line(`<td class="tg-cell-center">` + nillable + "</td>"))
		sb.WriteString(line("</tr>"))
	}
	sb.WriteString(line("</tbody>"))

	sb.WriteString(line("</table>"))
}

func buildLL1Table(sb *strings.Builder, t *analysis.LL1Table) {
	termNames := t.TerminalNames()

	sb.WriteString(line("<h2>LL(1) Table</h2>"))
	sb.WriteString(tableStyle)
	sb.WriteString(line(`<table class="tg">`))

	sb.WriteString(line("<thead>"))
	sb.WriteString(line("<tr>"))
	sb.WriteString(line(`<th class="tg-head" rowspan="2">Nonterminal</th>`))
	sb.WriteString(line(`<th class="tg-head" colspan="` + strconv.Itoa(len(termNames)) + `">Terminal</th>`))
	sb.WriteString(line("</tr>"))
	sb.WriteString(line("<tr>"))
	for _, name := range termNames {
		sb.WriteString(line(`<th class="tg-head">` + formatCell(name) + "</th>"))
	}
	sb.WriteString(line("</tr>"))
	sb.WriteString(line("</thead>"))

	sb.WriteString(line("<tbody>"))
	nts := t.NonTerminals()
	terms := t.Terminals()
	ntNames := t.NonTerminalNames()
	for i, nt := range nts {
		sb.WriteString(line("<tr>"))
		sb.WriteString(line(`<td class="tg-cell-center">` + formatCell(ntNames[i]) + "</td>"))
		for _, term := range terms {
			sb.WriteString(line(`<td class="tg-cell-left">` + formatCell(t.CellString(nt, term)) + "</td>"))
		}
		sb.WriteString(line("</tr>"))
	}
	sb.WriteString(line("</tbody>"))

	sb.WriteString(line("</table>"))
}

package render

import (
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/elops/internal/analysis"
	"github.com/dekarrin/elops/internal/grammar"
)

// Text renders the analysis results as bordered text tables for terminal
// output, with the sections selected by opts.
func Text(gc *grammar.Context, a *analysis.Analyzer, opts Options) string {
	var sb strings.Builder

	if opts.ProductionTable {
		sb.WriteString("Production Table\n")
		sb.WriteString(productionTableText(gc, a))
		sb.WriteString("\n")
	}

	if opts.LL1Table {
		sb.WriteString("LL(1) Table\n")
		sb.WriteString(a.Table().String())
		sb.WriteString("\n")
	}

	return sb.String()
}

func productionTableText(gc *grammar.Context, a *analysis.Analyzer) string {
	st := gc.Symbols

	data := [][]string{
		{"Id", "Production", "First", "Follow", "Predict", "Nillable"},
	}

	for _, p := range gc.Prods.Productions() {
		nillable := "no"
		if a.RHSNullable(p.ID) {
			nillable = "yes"
		}

		data = append(data, []string{
			strconv.Itoa(p.ID),
			gc.Prods.Format(st, p, false),
			setCell(st, a.RHSFirst(p.ID)),
			setCell(st, a.Follow(p.LHS)),
			setCell(st, a.Predict(p.ID)),
			nillable,
		})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableBorders: true,
		}).
		String()
}

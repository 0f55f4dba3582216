// Package renderer renders report models to markdown text.
//
// Rendering is presentation only: section order and the explicit
// "no signals" statement are contractual, the exact markdown syntax is not.
// Writing the result anywhere is the caller's business.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/Rhymond/go-money"
	"github.com/dipwatch/stockwatch"
	"github.com/shopspring/decimal"
)

// timeFormat is the generation-timestamp format used in report headers.
const timeFormat = "2006-01-02 15:04:05"

// TrackingMarkdown renders the daily tracking report. Identical report
// models produce byte-identical markdown.
func TrackingMarkdown(r *stockwatch.TrackingReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	day := r.Time.Format("2006-01-02")
	doc.H1(fmt.Sprintf("Daily Tracking Report (%s)", day))
	doc.Blockquote(fmt.Sprintf("Generated: %s", r.Time.Format(timeFormat)))

	doc.H2("Overview")
	overview(doc, r)

	doc.H2("Buy Signals")
	if !r.HasSignals() {
		doc.PlainText("No symbol has reached its target buy point yet. Keep waiting.")
	} else {
		doc.PlainText("The following symbols have reached their target buy point. Run a full analysis before buying:")
		for _, sig := range r.Signals {
			signal(doc, sig)
		}
	}

	if len(r.Failed) > 0 {
		doc.H2("Failed Updates")
		doc.PlainTextf("Price fetch failed this cycle for: %s. The previous observations were kept.",
			joinSymbols(r.Failed))
	}

	doc.H2("Next Steps")
	doc.OrderedList(
		"Check buy candidates: run a deep analysis on every symbol marked BUY.",
		"Revisit targets: reset a baseline price if the thesis for a symbol changed.",
		"Record decisions: write down the reason for buying or passing.",
	)

	doc.PlainTextf("*Report generated at %s*", r.Time.Format(timeFormat))

	return doc.String()
}

func overview(doc *md.Markdown, r *stockwatch.TrackingReport) {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{
			"Symbol", "Name", "Category", "Baseline", "Price",
			"Change", "Target Drop", "Target Price", "Distance", "Status",
		},
	}
	for _, row := range r.Rows {
		status := row.Status.String()
		if row.Status == stockwatch.Buy {
			status = md.Bold(status)
		}
		table.Rows = append(table.Rows, []string{
			row.Symbol,
			row.Name,
			row.Category,
			price(row.Baseline),
			price(row.Price),
			row.ChangePct.SignedString(),
			row.TargetDrop.String(),
			price(row.TargetPrice),
			row.DistancePct.SignedString(),
			status,
		})
	}
	doc.Table(table)
}

func signal(doc *md.Markdown, sig stockwatch.BuySignal) {
	doc.H3(fmt.Sprintf("%s (%s)", sig.Name, sig.Symbol))
	doc.BulletList(
		fmt.Sprintf("Current price: %s", Price(sig.Price, sig.Currency)),
		fmt.Sprintf("Cumulative drawdown: %s", sig.DrawdownPct.String1()),
		fmt.Sprintf("Target price: %s", Price(sig.TargetPrice, sig.Currency)),
	)
}

// price formats a bare table value with two decimals.
func price(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// Price formats a price in its currency, e.g. "HK$ 86.40". Used in signal
// call-outs and chart labels where the currency matters.
func Price(v float64, code string) string {
	// The Money constructor is the only way to get a never-nil currency.
	cur := money.New(0, code).Currency()
	shifted := decimal.NewFromFloat(v).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.IntPart())
}

func joinSymbols(symbols []string) string {
	var buf bytes.Buffer
	for i, s := range symbols {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s)
	}
	return buf.String()
}

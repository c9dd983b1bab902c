package tracker

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/gridmdp/sweep"
)

// Chart tracks the value change of each sweep and renders the histories
// as an HTML line chart, one line per solver run
type Chart struct {
	history  *Delta
	title    string
	filename string
}

// NewChart creates and returns a new *Chart Tracker which saves to
// filename
func NewChart(filename, title string) *Chart {
	return &Chart{history: NewDelta(""), title: title, filename: filename}
}

// Track records the value change of a sweep
func (c *Chart) Track(s sweep.Sweep) {
	c.history.Track(s)
}

// Render writes the chart as an HTML page to w
func (c *Chart) Render(w io.Writer) error {
	traces := c.history.Traces()

	numSweeps := 0
	for _, trace := range traces {
		if len(trace.Deltas) > numSweeps {
			numSweeps = len(trace.Deltas)
		}
	}

	var steps []string
	for i := 1; i <= numSweeps; i++ {
		steps = append(steps, fmt.Sprintf("%d", i))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    c.title,
			Subtitle: "largest value change per sweep",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "sweep"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "delta"}),
	)

	line = line.SetXAxis(steps)
	for _, trace := range traces {
		items := make([]opts.LineData, 0, len(trace.Deltas))
		for _, delta := range trace.Deltas {
			items = append(items, opts.LineData{Value: delta})
		}
		line.AddSeries(seriesName(trace), items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

// Save renders the chart to the Chart's file
func (c *Chart) Save() error {
	file, err := os.Create(c.filename)
	if err != nil {
		return fmt.Errorf("save: could not open chart file: %w", err)
	}
	defer file.Close()

	if err := c.Render(file); err != nil {
		return fmt.Errorf("save: could not render chart: %w", err)
	}
	return nil
}

func seriesName(t Trace) string {
	if t.Round > 0 {
		return fmt.Sprintf("%v (round %d)", t.Procedure, t.Round)
	}
	return t.Procedure.String()
}

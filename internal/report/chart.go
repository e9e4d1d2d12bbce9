package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"oelmerger/internal/oel"
)

// RenderChart writes an HTML page with one bar per grid interval, coloured by
// the summary status, labelled by centre frequency.
func RenderChart(w io.Writer, m *oel.Matrix, o Options) error {
	free, err := ParseColor(o.FreeColor)
	if err != nil {
		return err
	}
	used, err := ParseColor(o.UsedColor)
	if err != nil {
		return err
	}

	labels := make([]string, len(m.Edges))
	bars := make([]opts.BarData, len(m.Edges))
	freeCount := 0
	for i := range m.Edges {
		labels[i] = m.Center(i).String()
		color := used
		if m.Summary[i] {
			color = free
			freeCount++
		}
		bars[i] = opts.BarData{
			Name:      fmt.Sprintf("%s - %s %s", m.Edges[i], m.Upper(i), m.SummaryStatus(i)),
			Value:     1,
			ItemStyle: &opts.ItemStyle{Color: color},
		}
	}

	initOpts := opts.Initialization{PageTitle: "OEL merge chart", Width: "100%", Height: "480px"}
	if o.AssetsHost != "" {
		initOpts.AssetsHost = o.AssetsHost
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{
			Title:    "Free intervals (all OELs)",
			Subtitle: fmt.Sprintf("%d OELs, %d of %d intervals free, step %.1f GHz", len(m.Names), freeCount, len(m.Edges), m.Grid.Step().GHz()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "THz", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false), Max: 1}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	bar.SetXAxis(labels).
		AddSeries(oel.SummaryName, bars,
			charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "0%"}),
		)

	if err := bar.Render(w); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return nil
}

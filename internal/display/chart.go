package display

import (
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"sensor-dashboard/internal/sensor"
)

// WriteChartPNG renders temperature and humidity series to a PNG file.
// Called with the history snapshot after each tick when a chart path is
// configured, and by the export command.
func WriteChartPNG(path string, readings []sensor.Reading) error {
	if len(readings) < 2 {
		// go-chart cannot render a single-point series.
		return nil
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]float64, len(readings))
	temps := make([]float64, len(readings))
	hums := make([]float64, len(readings))
	for i, r := range readings {
		x[i] = float64(i)
		temps[i] = r.Temperature
		hums[i] = r.Humidity
	}

	valueFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.1f")
	}
	graph := chart.Chart{
		Width:  1000,
		Height: 500,
		XAxis: chart.XAxis{
			Name: "Samples (newest right)",
		},
		YAxis: chart.YAxis{
			Name:           "Temperature (°C)",
			ValueFormatter: valueFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Humidity (%)",
			ValueFormatter: valueFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Temperature",
				XValues: x,
				YValues: temps,
			},
			chart.ContinuousSeries{
				Name:    "Humidity",
				XValues: x,
				YValues: hums,
				YAxis:   chart.YAxisSecondary,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

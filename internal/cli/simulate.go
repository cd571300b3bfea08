package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"sensor-dashboard/internal/app"
)

var (
	simulateTemperature float64
	simulateHumidity    float64
	simulatePublish     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one pipeline pass with a fixed reading",
	RunE: func(cmd *cobra.Command, args []string) error {
		if simulateHumidity < 0 || simulateHumidity > 100 {
			return errors.New("--humidity must be between 0 and 100")
		}

		opts := app.SimulateOptions{
			Temperature: simulateTemperature,
			Humidity:    simulateHumidity,
			Publish:     simulatePublish,
		}
		return getApp().Simulate(cmd.Context(), opts)
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateTemperature, "temperature", 25.0, "Temperature in °C")
	simulateCmd.Flags().Float64Var(&simulateHumidity, "humidity", 50.0, "Relative humidity in %")
	simulateCmd.Flags().BoolVar(&simulatePublish, "publish", false, "Also publish the reading event to the broker")
}

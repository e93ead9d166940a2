// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openufo/ufoctl/pkg/ufolink"
)

var (
	// Vehicle connection flags
	vehicleHost string
	vehiclePort int

	// Input backend flags
	serialPort string
	serialBaud int

	// Session flags
	tickInterval time.Duration
	settingsPath string
	monitorAddr  string
	withVideo    bool
)

var rootCmd = &cobra.Command{
	Use:   "ufoctl",
	Short: "WiFi UFO quadcopter ground control",
	Long: `Ufoctl - fly cheap WiFi UFO class quadcopters from a joystick.

The vehicle exposes a UDP control port on its own access point and expects
a continuous stream of command frames. Ufoctl maps a joystick onto the
vehicle controls via a per-controller mapping file and keeps the stream
running at the required rate.

Input backends:
  SDL:    any joystick visible to SDL3 (the default)
  Serial: a controller behind an INSEN serial bridge, --input-port /dev/ttyUSB0

All flags can also be set in an ufoctl config file (current directory or
home) or through UFOCTL_* environment variables.`,
	Version: "1.0.0",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&vehicleHost, "host", ufolink.DefaultHost, "Vehicle address")
	rootCmd.PersistentFlags().IntVar(&vehiclePort, "port", ufolink.DefaultControlPort, "Vehicle control port")

	rootCmd.PersistentFlags().StringVar(&serialPort, "input-port", "", "Serial bridge device for joystick input (default: SDL)")
	rootCmd.PersistentFlags().IntVar(&serialBaud, "input-baud", 115200, "Serial bridge baud rate")

	rootCmd.PersistentFlags().DurationVar(&tickInterval, "interval", ufolink.UpdateInterval, "Control tick period")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "ufoctl_settings.json", "Persisted vehicle settings file")
	rootCmd.PersistentFlags().StringVar(&monitorAddr, "monitor", "", "Listen address for the websocket state monitor (disabled if empty)")
	rootCmd.PersistentFlags().BoolVar(&withVideo, "video", false, "Show the onboard camera stream via ffplay")
}

// initConfig layers the config file and environment under the flags:
// an explicitly set flag always wins.
func initConfig() {
	viper.SetConfigName("ufoctl")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
	viper.SetEnvPrefix("UFOCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			cobra.CheckErr(fmt.Errorf("config file: %w", err))
		}
	}

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			rootCmd.PersistentFlags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

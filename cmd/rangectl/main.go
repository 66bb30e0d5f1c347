package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/edgeoptics/rangelink/internal/config"
	"github.com/edgeoptics/rangelink/internal/device"
	"github.com/edgeoptics/rangelink/internal/grf250"
	"github.com/edgeoptics/rangelink/internal/observability"
	"github.com/edgeoptics/rangelink/internal/serialport"
)

func main() {
	configPath := flag.String("config", "rangectl.toml", "path to the TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "rangectl: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	observability.SetLevel(cfg.LogLevel)
	log := observability.InitLogger("rangectl")
	observability.RegisterMetrics()

	port, err := serialport.Open(cfg.Port, cfg.Baud, log)
	if err != nil {
		return err
	}
	defer port.Close()

	devCfg := device.DefaultConfig()
	devCfg.ResponseTimeout = cfg.ResponseTimeout
	devCfg.SendRetries = cfg.Retries
	sensor := grf250.New(device.New(port, devCfg, log))

	if err := sensor.Wake(); err != nil {
		return err
	}

	info, err := sensor.ProductInfo()
	if err != nil {
		return err
	}
	log.Info().
		Str("product", info.ProductName).
		Str("serial", info.SerialNumber).
		Uint32("hardware", info.HardwareVersion).
		Str("firmware", info.FirmwareVersion.String()).
		Msg("sensor connected")

	// Known state before configuring: no unsolicited packets while we
	// issue requests.
	if err := sensor.SetStream(grf250.StreamNone); err != nil {
		return err
	}
	if err := sensor.SetUpdateRate(cfg.UpdateRate); err != nil {
		return err
	}
	if err := sensor.SetDistanceConfig(grf250.DistanceAll); err != nil {
		return err
	}

	data, err := sensor.DistanceData(grf250.DistanceAll)
	if err != nil {
		return err
	}
	log.Info().
		Int32("first_raw_mm", data.FirstReturnRawMM).
		Int32("first_filtered_mm", data.FirstReturnFilteredMM).
		Int32("temperature", data.Temperature).
		Msg("polled distance")

	if cfg.StreamCount > 0 {
		if err := streamDistances(sensor, log, cfg.StreamCount); err != nil {
			return err
		}
	}

	return sensor.SetStream(grf250.StreamNone)
}

// streamDistances puts the sensor into distance streaming and reads
// count packets, half blocking and half via non-blocking polls.
func streamDistances(sensor *grf250.Sensor, log zerolog.Logger, count int) error {
	if err := sensor.SetStream(grf250.StreamDistance); err != nil {
		return err
	}

	blocking := (count + 1) / 2
	for i := 0; i < blocking; i++ {
		data, err := sensor.WaitForStreamedDistance(grf250.DistanceAll, time.Second)
		if err != nil {
			return err
		}
		log.Info().
			Int("n", i+1).
			Int32("first_filtered_mm", data.FirstReturnFilteredMM).
			Msg("streamed distance")
	}

	for i := blocking; i < count; {
		data, err := sensor.WaitForStreamedDistance(grf250.DistanceAll, 0)
		if errors.Is(err, device.ErrAgain) {
			sensor.Device().Transport().Sleep(10 * time.Millisecond)
			continue
		}
		if err != nil {
			return err
		}
		i++
		log.Info().
			Int("n", i).
			Int32("first_filtered_mm", data.FirstReturnFilteredMM).
			Msg("streamed distance (non-blocking)")
	}

	return nil
}

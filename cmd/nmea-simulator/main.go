package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"nmea-simulator/internal/config"
	"nmea-simulator/internal/nmea"
	"nmea-simulator/internal/pump"
	"nmea-simulator/internal/transport"
	"nmea-simulator/internal/web"
)

// Version information - populated at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.DefaultConfig()
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "YAML config file (replaces the other flags)")
	flag.StringVar(&cfg.PipePath, "pipe", "", "Named pipe path for NMEA output")
	flag.StringVar(&cfg.SerialPort, "serial", "", "Serial device for NMEA output (e.g. /dev/ttyUSB0)")
	flag.StringVar(&cfg.ReplayFile, "replay", "", "NMEA log file to replay cycle-by-cycle instead of generating")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Interval between cycles (e.g. 1s, 500ms)")
	flag.StringVar(&cfg.SymlinkPath, "link", cfg.SymlinkPath, "Symbolic link path for the PTY slave device")
	flag.StringVar(&cfg.Inertial, "inertial", cfg.Inertial, "Inertial sentence type: nfimu or imuag")
	flag.StringVar(&cfg.ListenAddr, "listen", "", "Optional HTTP address serving a websocket cycle monitor")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Random seed (0 = time-based)")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Only log warnings and errors")
	flag.BoolVar(&showVersion, "version", false, "Show version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nGNSS/IMU NMEA0183 Simulator\n")
		fmt.Fprintf(os.Stderr, "Emulates a GNSS/IMU receiver streaming NMEA sentences over a PTY, named pipe or serial device.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		if Version != "dev" {
			fmt.Printf("v%s\n", Version)
		} else {
			fmt.Printf("%s\n", Commit)
		}
		os.Exit(0)
	}

	log := logrus.New()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Quiet {
		log.SetLevel(logrus.WarnLevel)
	}

	tr := newTransport(cfg, log)
	if err := tr.Open(); err != nil {
		log.Errorf("transport setup failed: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var onCycle func(string)
	if cfg.ListenAddr != "" {
		monitor := web.NewMonitor(log)
		go func() {
			if err := monitor.Serve(ctx, cfg.ListenAddr); err != nil {
				log.Errorf("monitor server failed: %v", err)
			}
		}()
		log.Infof("cycle monitor listening on %s", cfg.ListenAddr)
		onCycle = monitor.Broadcast
	}

	errc := make(chan error, 1)
	go func() {
		if cfg.ReplayFile != "" {
			log.Infof("replaying NMEA log: %s", cfg.ReplayFile)
			r := &pump.Replayer{
				Path:      cfg.ReplayFile,
				Transport: tr,
				Interval:  cfg.Interval,
				Log:       log,
				OnCycle:   onCycle,
			}
			errc <- r.Run(ctx)
		} else {
			p := &pump.Pump{
				Transport: tr,
				Generator: nmea.NewGenerator(cfg.Seed, nmea.InertialSentence(cfg.Inertial)),
				Interval:  cfg.Interval,
				Log:       log,
				OnCycle:   onCycle,
			}
			errc <- p.Run(ctx)
		}
	}()

	err := <-errc
	stop()
	if cerr := tr.Close(); cerr != nil {
		log.Errorf("transport cleanup: %v", cerr)
	}
	if err != nil {
		log.Errorf("stream pump failed: %v", err)
		os.Exit(1)
	}
	log.Info("simulator exited gracefully")
}

// newTransport picks the output sink: a serial device wins over a
// named pipe, and a fresh PTY is the default.
func newTransport(cfg config.Config, log *logrus.Logger) transport.Transport {
	switch {
	case cfg.SerialPort != "":
		return transport.NewSerial(cfg.SerialPort, log)
	case cfg.PipePath != "":
		return transport.NewPipe(cfg.PipePath, log)
	default:
		return transport.NewPTY(cfg.SymlinkPath, log)
	}
}

// Package main provides the hdk-logger diagnostic tool: it lists connected
// HID devices, opens the OSVR HDK tracker and streams its raw reports for a
// short time window.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/osvr-tools/hdk-logger/internal/hid"
	"github.com/osvr-tools/hdk-logger/internal/hotplug"
	"github.com/osvr-tools/hdk-logger/internal/tracker"
)

var (
	verbose   bool
	vendorID  uint16
	productID uint16
	duration  time.Duration
	maxReport int

	rootCmd = &cobra.Command{
		Use:   "hdk-logger",
		Short: "Diagnostic logger for the OSVR HDK head tracker",
		Long: `hdk-logger enumerates all connected HID devices, locates the OSVR HDK
tracker (vendor 0x1532, product 0x0b00 unless overridden), opens it in
blocking mode and prints the size, version and sequence bytes of every
report received during the polling window.`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List connected HID devices without opening anything",
		Run: func(cmd *cobra.Command, args []string) {
			runList()
		},
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Watch for tracker attach/detach events until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			runWatch()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Uint16Var(&vendorID, "vid", tracker.VendorID, "Tracker vendor ID")
	rootCmd.PersistentFlags().Uint16Var(&productID, "pid", tracker.ProductID, "Tracker product ID")
	rootCmd.Flags().DurationVar(&duration, "duration", 500*time.Millisecond, "Polling window")
	rootCmd.Flags().IntVar(&maxReport, "max-report", hid.DefaultMaxLength, "Read buffer length")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func run() {
	setupLogging()

	session, err := hid.NewSession()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize hidapi")
	}
	defer session.Close()

	infos, err := session.Enumerate(hid.VendorAny, hid.ProductAny)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to enumerate HID devices")
	}
	printDevices(os.Stdout, infos, vendorID, productID)

	info, found := findTracker(infos, vendorID, productID)
	if !found {
		log.Error().
			Str("vid", fmt.Sprintf("%04x", vendorID)).
			Str("pid", fmt.Sprintf("%04x", productID)).
			Msg("Could not find an HDK tracker")
		session.Close()
		os.Exit(1)
	}

	dev, err := session.OpenPath(info.Path)
	if err != nil {
		log.Error().Err(err).Str("path", info.Path).Msg("Failed to open tracker")
		session.Close()
		os.Exit(1)
	}
	defer dev.Close()

	// Blocking mode, so the poll loop sleeps in the read instead of
	// spinning.
	if err := dev.SetNonblocking(false); err != nil {
		log.Error().Err(err).Msg("Failed to enable blocking mode")
		dev.Close()
		session.Close()
		os.Exit(1)
	}

	log.Info().Dur("duration", duration).Str("path", info.Path).Msg("Polling tracker")
	if err := pollReports(os.Stdout, dev, duration, maxReport); err != nil {
		log.Error().Err(err).Msg("Tracker read failed")
		dev.Close()
		session.Close()
		os.Exit(1)
	}
}

func runList() {
	setupLogging()

	session, err := hid.NewSession()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize hidapi")
	}
	defer session.Close()

	infos, err := session.Enumerate(hid.VendorAny, hid.ProductAny)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to enumerate HID devices")
	}
	printDevices(os.Stdout, infos, vendorID, productID)
	log.Info().Int("count", len(infos)).Msg("Enumeration complete")
}

const (
	// rescanPerSecond caps hot-plug driven re-enumerations; uevent storms
	// during USB enumeration would otherwise hammer hidapi.
	rescanPerSecond = 2
	rescanBurst     = 2
)

func runWatch() {
	setupLogging()

	session, err := hid.NewSession()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize hidapi")
	}
	defer session.Close()

	limiter := rate.NewLimiter(rescanPerSecond, rescanBurst)
	rescan := func() {
		infos, err := session.Enumerate(vendorID, productID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to re-enumerate trackers")
			return
		}
		log.Info().Int("trackers", len(infos)).Msg("Rescan complete")
	}

	monitor := hotplug.NewMonitor(func(event hotplug.Event) {
		switch event.Type {
		case hotplug.EventAttach:
			log.Info().Str("devpath", event.DevPath).Msg("Tracker attached")
		case hotplug.EventDetach:
			log.Info().Str("devpath", event.DevPath).Msg("Tracker detached")
		}
		if limiter.Allow() {
			rescan()
		} else {
			log.Debug().Msg("Rescan rate limit hit, skipping")
		}
	})
	monitor.SetRecoveryHandler(rescan)

	if err := monitor.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start hot-plug monitor")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Msg("Watching for tracker events, press Ctrl+C to stop")
	<-sigChan

	if err := monitor.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to stop hot-plug monitor")
	}
}

// printDevices writes the enumeration listing in the classic hidapi sample
// format, flagging the tracker when it appears.
func printDevices(w io.Writer, infos []hid.DeviceInfo, vendorID, productID uint16) {
	for _, info := range infos {
		fmt.Fprintf(w, "Device Found\n  type: %04x %04x\n  path: %s\n  serial_number: %s\n",
			info.VendorID, info.ProductID, info.Path, info.Serial)
		fmt.Fprintf(w, "  Manufacturer: %s\n", info.Manufacturer)
		fmt.Fprintf(w, "  Product:      %s\n", info.Product)
		fmt.Fprintf(w, "  Release:      %x\n", info.Release)
		fmt.Fprintf(w, "  Interface:    %d\n", info.Interface)
		if info.VendorID == vendorID && info.ProductID == productID {
			fmt.Fprintf(w, "  *** This is an HDK tracker! ***\n")
		}
		fmt.Fprintln(w)
	}
}

// findTracker returns the first enumerated device matching the given
// vendor/product pair.
func findTracker(infos []hid.DeviceInfo, vendorID, productID uint16) (hid.DeviceInfo, bool) {
	for _, info := range infos {
		if info.VendorID == vendorID && info.ProductID == productID {
			return info, true
		}
	}
	return hid.DeviceInfo{}, false
}

// pollReports reads reports from dev until the deadline passes, printing
// the header of each one. Empty reads mean nothing was available and are
// skipped; read errors end the loop.
func pollReports(w io.Writer, dev hid.Device, window time.Duration, maxLength int) error {
	deadline := time.Now().Add(window)
	for time.Now().Before(deadline) {
		data, err := dev.Read(maxLength)
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}
		if len(data) == 0 {
			continue
		}

		report, err := tracker.ParseReport(data)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping malformed report")
			continue
		}
		fmt.Fprintf(w, "Report: size=%d version=%d sequence=%d\n",
			report.Size, report.Version, report.Sequence)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}

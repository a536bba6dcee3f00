// Package hotplug watches for HDK tracker attach/detach events via
// netlink/udev.
package hotplug

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall"

	"github.com/pilebones/go-udev/netlink"
	"github.com/rs/zerolog/log"
)

// receiveBufferSize is the netlink socket receive buffer. USB hot-plug
// produces bursts of uevents; a generous buffer keeps ENOBUFS rare.
const receiveBufferSize = 2 * 1024 * 1024 // 2 MB

const (
	// trackerVendor is the HDK tracker's vendor ID in udev PRODUCT format
	// (hex, leading zeros stripped).
	trackerVendor = "1532"

	// trackerProduct is the HDK tracker's product ID in udev PRODUCT format.
	trackerProduct = "b00"
)

// EventType represents the type of device event.
type EventType int

const (
	// EventAttach indicates a tracker was connected.
	EventAttach EventType = iota
	// EventDetach indicates a tracker was disconnected.
	EventDetach
)

// Event represents one tracker hot-plug event.
type Event struct {
	Type    EventType
	DevPath string
}

// EventHandler is called for every tracker attach/detach event.
type EventHandler func(event Event)

// RecoveryHandler is called after the monitor recovers from a netlink
// buffer overflow, when events may have been dropped and the caller should
// re-enumerate.
type RecoveryHandler func()

// Monitor watches udev for HDK tracker connect/disconnect events.
type Monitor struct {
	conn            *netlink.UEventConn
	handler         EventHandler
	recoveryHandler RecoveryHandler
	quit            chan struct{}
	stopped         bool
	mu              sync.Mutex
}

// NewMonitor creates a monitor delivering events to handler.
func NewMonitor(handler EventHandler) *Monitor {
	return &Monitor{handler: handler}
}

// SetRecoveryHandler installs the handler invoked after a buffer overflow.
func (m *Monitor) SetRecoveryHandler(handler RecoveryHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recoveryHandler = handler
}

// Start connects to the kernel uevent socket and begins delivering events
// in a background goroutine.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		return fmt.Errorf("monitor already started")
	}

	m.conn = &netlink.UEventConn{}
	if err := m.conn.Connect(netlink.UdevEvent); err != nil {
		m.conn = nil
		return fmt.Errorf("failed to connect to netlink: %w", err)
	}

	if err := setSocketBufferSize(m.conn.Fd, receiveBufferSize); err != nil {
		log.Warn().Err(err).Int("size", receiveBufferSize).Msg("Failed to set netlink buffer size")
	}

	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.quit = m.conn.Monitor(queue, errs, trackerRules())
	m.stopped = false

	go m.processEvents(queue, errs)

	log.Info().Msg("Hot-plug monitor started")
	return nil
}

// Stop stops the monitor and releases the netlink socket.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil || m.stopped {
		return nil
	}
	m.stopped = true

	select {
	case m.quit <- struct{}{}:
	default:
	}

	if err := m.conn.Close(); err != nil {
		return fmt.Errorf("failed to close netlink connection: %w", err)
	}
	m.conn = nil

	log.Info().Msg("Hot-plug monitor stopped")
	return nil
}

// trackerRules matches add/remove uevents for the HDK tracker. The PRODUCT
// env var has the form "vendor/product/bcdDevice" with leading zeros
// stripped; the pattern is anchored so "1532/b001" cannot match.
func trackerRules() *netlink.RuleDefinitions {
	rules := &netlink.RuleDefinitions{}
	productPattern := fmt.Sprintf("^%s/%s/[^/]+$", trackerVendor, trackerProduct)

	for _, action := range []string{"add", "remove"} {
		rules.AddRule(netlink.RuleDefinition{
			Action: &action,
			Env: map[string]string{
				"SUBSYSTEM": "^usb$",
				"PRODUCT":   productPattern,
			},
		})
	}
	return rules
}

func (m *Monitor) processEvents(queue chan netlink.UEvent, errs chan error) {
	for {
		select {
		case uevent, ok := <-queue:
			if !ok {
				return
			}
			m.handleEvent(uevent)
		case err, ok := <-errs:
			if !ok {
				return
			}

			m.mu.Lock()
			stopped := m.stopped
			recovery := m.recoveryHandler
			m.mu.Unlock()
			if stopped {
				return
			}

			// On ENOBUFS the kernel dropped uevents; hand off to the
			// recovery handler so the caller can re-enumerate.
			if isBufferOverflow(err) {
				log.Warn().Msg("Netlink buffer overflow, triggering recovery")
				if recovery != nil {
					go recovery()
				}
				continue
			}

			log.Error().Err(err).Msg("Hot-plug monitor error")
		}
	}
}

// handleEvent maps one matched uevent to an Event. ADD events are filtered
// to the usb_device DEVTYPE so per-interface uevents do not double-fire;
// REMOVE events may lack DEVTYPE entirely, so they pass through.
func (m *Monitor) handleEvent(uevent netlink.UEvent) {
	if uevent.Action == netlink.ADD && uevent.Env["DEVTYPE"] != "usb_device" {
		return
	}

	var eventType EventType
	switch uevent.Action {
	case netlink.ADD:
		eventType = EventAttach
		log.Info().Str("product", uevent.Env["PRODUCT"]).Msg("HDK tracker connected")
	case netlink.REMOVE:
		eventType = EventDetach
		log.Info().Str("product", uevent.Env["PRODUCT"]).Msg("HDK tracker disconnected")
	default:
		return
	}

	if m.handler != nil {
		m.handler(Event{Type: eventType, DevPath: uevent.KObj})
	}
}

// setSocketBufferSize tries SO_RCVBUFFORCE first (needs CAP_NET_ADMIN,
// ignores rmem_max) and falls back to SO_RCVBUF.
func setSocketBufferSize(fd int, size int) error {
	if err := syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, syscall.SO_RCVBUFFORCE, size); err == nil {
		return nil
	}
	return syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, syscall.SO_RCVBUF, size)
}

func isBufferOverflow(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ENOBUFS) {
		return true
	}
	// The udev library surfaces the errno as text in some paths.
	return strings.Contains(strings.ToLower(err.Error()), "no buffer space available")
}

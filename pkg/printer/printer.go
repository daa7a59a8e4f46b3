// Package printer delivers raw ESC/POS bytes to a thermal printer over a USB
// device file or a TCP socket.
package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

const (
	dialTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	probeTimeout = 2 * time.Second
)

// Printer sends a prepared ESC/POS job to the hardware.
type Printer interface {
	Print(data []byte) error
	Close() error
	// IsConnected probes the device without printing anything.
	IsConnected() bool
}

// NewPrinterFromConfig builds the printer matching the configured type:
// "usb" writes to a device file like /dev/usb/lp0, "network" dials a raw
// socket like 192.168.1.100:9100, "none" or empty discards every job.
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB device path is required")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: network address is required")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown type %q (use usb, network, or none)", printerType)
	}
}

type devicePrinter struct {
	path string
}

// NewUSBPrinter returns a printer backed by a USB device file. The file is
// opened per job so an unplugged printer fails the print, not the startup.
func NewUSBPrinter(devicePath string) Printer {
	return &devicePrinter{path: devicePath}
}

func (p *devicePrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Close() error { return nil }

func (p *devicePrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

type socketPrinter struct {
	address string
}

// NewNetworkPrinter returns a printer that dials a raw TCP socket per job.
// The address must include the port, typically 9100.
func NewNetworkPrinter(address string) Printer {
	return &socketPrinter{address: address}
}

func (p *socketPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *socketPrinter) Close() error { return nil }

func (p *socketPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter returns a printer that silently discards every job. Used
// when no hardware is configured so receipt rendering still works.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (nullPrinter) Print(data []byte) error { return nil }
func (nullPrinter) Close() error            { return nil }
func (nullPrinter) IsConnected() bool       { return false }

// Package sysops wraps the host-level operations the assistant can perform:
// opening URLs and applications, capturing the screen and camera, and
// reporting battery and system status. Each capability is probed once so the
// assistant can advertise only what this machine supports.
package sysops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// ErrUnavailable indicates the requested operation has no working backend on
// this host.
var ErrUnavailable = errors.New("sysops: capability not available")

// Capture describes a file written by a screen or camera capture.
type Capture struct {
	Filename string
	URLPath  string
}

// BatteryStatus is a point-in-time reading of the primary battery.
type BatteryStatus struct {
	Percent  float64
	Charging bool
}

// SystemInfo summarizes host resource usage.
type SystemInfo struct {
	Hostname    string
	Platform    string
	Uptime      time.Duration
	CPUPercent  float64
	CPUCount    int
	MemUsedGB   float64
	MemTotalGB  float64
	MemPercent  float64
	DiskUsedGB  float64
	DiskTotalGB float64
	DiskPercent float64
}

// Ops performs host operations. Construct it with New so capability probes
// run once.
type Ops struct {
	log         *slog.Logger
	capturesDir string

	opener     []string
	calculator []string
	screenshot string
	camera     string
}

// New probes the host for available tools and returns an Ops ready for use.
func New(capturesDir string, log *slog.Logger) *Ops {
	o := &Ops{
		log:         log.With("component", "sysops"),
		capturesDir: capturesDir,
	}

	switch runtime.GOOS {
	case "darwin":
		o.opener = []string{"open"}
		o.calculator = []string{"open", "-a", "Calculator"}
		o.screenshot = firstInPath("screencapture")
		o.camera = firstInPath("imagesnap")
	case "windows":
		o.opener = []string{"cmd", "/c", "start", ""}
		o.calculator = []string{"cmd", "/c", "start", "", "calc"}
	default:
		if path := firstInPath("xdg-open"); path != "" {
			o.opener = []string{path}
		}
		if path := firstInPath("gnome-calculator", "kcalc", "xcalc"); path != "" {
			o.calculator = []string{path}
		}
		o.screenshot = firstInPath("gnome-screenshot", "scrot")
		o.camera = firstInPath("fswebcam")
	}

	o.log.Info("Host capabilities probed",
		"open_url", o.opener != nil,
		"calculator", o.calculator != nil,
		"screenshot", o.screenshot != "",
		"camera", o.camera != "")
	return o
}

func firstInPath(candidates ...string) string {
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
	}
	return ""
}

// CanOpenURL reports whether a URL opener exists on this host.
func (o *Ops) CanOpenURL() bool { return o.opener != nil }

// CanOpenCalculator reports whether a calculator app was found.
func (o *Ops) CanOpenCalculator() bool { return o.calculator != nil }

// CanScreenshot reports whether a screenshot tool was found.
func (o *Ops) CanScreenshot() bool { return o.screenshot != "" }

// CanTakePicture reports whether a camera capture tool was found.
func (o *Ops) CanTakePicture() bool { return o.camera != "" }

// OpenURL launches the host browser at url.
func (o *Ops) OpenURL(ctx context.Context, url string) error {
	if o.opener == nil {
		return ErrUnavailable
	}
	args := append(append([]string(nil), o.opener[1:]...), url)
	if err := exec.CommandContext(ctx, o.opener[0], args...).Start(); err != nil {
		return fmt.Errorf("failed to open url: %w", err)
	}
	o.log.DebugContext(ctx, "Opened URL", "url", url)
	return nil
}

// OpenCalculator launches the host calculator application.
func (o *Ops) OpenCalculator(ctx context.Context) error {
	if o.calculator == nil {
		return ErrUnavailable
	}
	args := append([]string(nil), o.calculator[1:]...)
	if err := exec.CommandContext(ctx, o.calculator[0], args...).Start(); err != nil {
		return fmt.Errorf("failed to open calculator: %w", err)
	}
	return nil
}

// Screenshot captures the screen into the captures directory.
func (o *Ops) Screenshot(ctx context.Context) (Capture, error) {
	if o.screenshot == "" {
		return Capture{}, ErrUnavailable
	}
	if err := os.MkdirAll(o.capturesDir, 0o755); err != nil {
		return Capture{}, fmt.Errorf("failed to create captures directory: %w", err)
	}

	filename := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(o.capturesDir, filename)

	var cmd *exec.Cmd
	switch filepath.Base(o.screenshot) {
	case "gnome-screenshot":
		cmd = exec.CommandContext(ctx, o.screenshot, "-f", path)
	default:
		cmd = exec.CommandContext(ctx, o.screenshot, path)
	}
	if err := cmd.Run(); err != nil {
		return Capture{}, fmt.Errorf("screenshot failed: %w", err)
	}

	o.log.InfoContext(ctx, "Screenshot captured", "file", filename)
	return Capture{Filename: filename, URLPath: "/captures/" + filename}, nil
}

// TakePicture captures a webcam frame into the captures directory.
func (o *Ops) TakePicture(ctx context.Context) (Capture, error) {
	if o.camera == "" {
		return Capture{}, ErrUnavailable
	}
	if err := os.MkdirAll(o.capturesDir, 0o755); err != nil {
		return Capture{}, fmt.Errorf("failed to create captures directory: %w", err)
	}

	filename := fmt.Sprintf("photo_%s.jpg", time.Now().Format("20060102_150405"))
	path := filepath.Join(o.capturesDir, filename)

	var cmd *exec.Cmd
	switch filepath.Base(o.camera) {
	case "imagesnap":
		cmd = exec.CommandContext(ctx, o.camera, path)
	default:
		cmd = exec.CommandContext(ctx, o.camera, "--no-banner", path)
	}
	if err := cmd.Run(); err != nil {
		return Capture{}, fmt.Errorf("camera capture failed: %w", err)
	}

	o.log.InfoContext(ctx, "Picture captured", "file", filename)
	return Capture{Filename: filename, URLPath: "/captures/" + filename}, nil
}

// Battery reads the primary battery. Hosts without a battery return
// ErrUnavailable.
func (o *Ops) Battery(_ context.Context) (BatteryStatus, error) {
	batteries, err := battery.GetAll()
	if err != nil || len(batteries) == 0 {
		return BatteryStatus{}, ErrUnavailable
	}

	b := batteries[0]
	percent := 0.0
	if b.Full > 0 {
		percent = b.Current / b.Full * 100
	}
	return BatteryStatus{
		Percent:  percent,
		Charging: b.State.Raw == battery.Charging,
	}, nil
}

// Info collects host resource usage via gopsutil.
func (o *Ops) Info(ctx context.Context) (SystemInfo, error) {
	var info SystemInfo

	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("failed to read host info: %w", err)
	}
	info.Hostname = hostInfo.Hostname
	info.Platform = fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion)
	info.Uptime = time.Duration(hostInfo.Uptime) * time.Second

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}
	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.CPUCount = count
	}

	const gb = 1024 * 1024 * 1024
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemUsedGB = float64(vm.Used) / gb
		info.MemTotalGB = float64(vm.Total) / gb
		info.MemPercent = vm.UsedPercent
	}

	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		info.DiskUsedGB = float64(usage.Used) / gb
		info.DiskTotalGB = float64(usage.Total) / gb
		info.DiskPercent = usage.UsedPercent
	}

	return info, nil
}

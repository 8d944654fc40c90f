package vulkan_test

import (
	"testing"

	vk "github.com/goki/vulkan"

	"github.com/drfreeman816/VulkanTest/engine/renderer/vulkan"
)

func TestChooseSurfaceFormatOpenChoice(t *testing.T) {
	formats := []vk.SurfaceFormat{{Format: vk.FormatUndefined}}

	got := vulkan.ChooseSurfaceFormat(formats)
	if got.Format != vk.FormatB8g8r8Unorm || got.ColorSpace != vk.ColorSpaceSrgbNonlinear {
		t.Errorf("open choice resolved to format %d / color space %d", got.Format, got.ColorSpace)
	}
}

func TestChooseSurfaceFormatPreferredAvailable(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	got := vulkan.ChooseSurfaceFormat(formats)
	if got.Format != vk.FormatB8g8r8Unorm {
		t.Errorf("got format %d, want the preferred FormatB8g8r8Unorm", got.Format)
	}
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	got := vulkan.ChooseSurfaceFormat(formats)
	if got.Format != vk.FormatR8g8b8a8Unorm {
		t.Errorf("got format %d, want the first supported entry", got.Format)
	}
}

func TestChoosePresentMode(t *testing.T) {
	tests := []struct {
		name  string
		modes []vk.PresentMode
		want  vk.PresentMode
	}{
		{"mailbox wins", []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate, vk.PresentModeMailbox}, vk.PresentModeMailbox},
		{"immediate beats fifo", []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate}, vk.PresentModeImmediate},
		{"fifo fallback", []vk.PresentMode{vk.PresentModeFifo}, vk.PresentModeFifo},
		{"empty list", nil, vk.PresentModeFifo},
	}

	for _, tt := range tests {
		if got := vulkan.ChoosePresentMode(tt.modes); got != tt.want {
			t.Errorf("%s: got mode %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestChooseExtentFixedBySurface(t *testing.T) {
	capabilities := vk.SurfaceCapabilities{
		CurrentExtent: vk.Extent2D{Width: 800, Height: 600},
	}

	got := vulkan.ChooseExtent(capabilities, 1024, 768)
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("got %dx%d, want the surface extent 800x600", got.Width, got.Height)
	}
}

func TestChooseExtentClampsFramebufferSize(t *testing.T) {
	capabilities := vk.SurfaceCapabilities{
		CurrentExtent: vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 640, Height: 480},
		MaxImageExtent: vk.Extent2D{Width: 1024, Height: 768},
	}

	got := vulkan.ChooseExtent(capabilities, 2000, 100)
	if got.Width != 1024 || got.Height != 480 {
		t.Errorf("got %dx%d, want 1024x480 after clamping", got.Width, got.Height)
	}
}

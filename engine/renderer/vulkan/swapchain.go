package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// SwapchainSupportInfo captures what a device can present to a surface.
// Query it fresh whenever it is needed, the capabilities change with the
// window.
type SwapchainSupportInfo struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// QuerySwapchainSupport collects the surface capabilities, formats and
// present modes the device offers for the surface.
func QuerySwapchainSupport(physicalDevice vk.PhysicalDevice, surface vk.Surface) (*SwapchainSupportInfo, error) {
	support := &SwapchainSupportInfo{}

	if res := vk.GetPhysicalDeviceSurfaceCapabilities(physicalDevice, surface, &support.Capabilities); !VulkanResultIsSuccess(res) {
		return nil, fmt.Errorf("failed to get physical device surface capabilities: %s", VulkanResultString(res))
	}
	support.Capabilities.Deref()
	support.Capabilities.CurrentExtent.Deref()
	support.Capabilities.MinImageExtent.Deref()
	support.Capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	if res := vk.GetPhysicalDeviceSurfaceFormats(physicalDevice, surface, &formatCount, nil); !VulkanResultIsSuccess(res) {
		return nil, fmt.Errorf("failed to get physical device surface formats: %s", VulkanResultString(res))
	}
	if formatCount != 0 {
		support.Formats = make([]vk.SurfaceFormat, formatCount)
		if res := vk.GetPhysicalDeviceSurfaceFormats(physicalDevice, surface, &formatCount, support.Formats); !VulkanResultIsSuccess(res) {
			return nil, fmt.Errorf("failed to get physical device surface formats: %s", VulkanResultString(res))
		}
		for i := range support.Formats {
			support.Formats[i].Deref()
		}
	}

	var presentModeCount uint32
	if res := vk.GetPhysicalDeviceSurfacePresentModes(physicalDevice, surface, &presentModeCount, nil); !VulkanResultIsSuccess(res) {
		return nil, fmt.Errorf("failed to get physical device surface present modes: %s", VulkanResultString(res))
	}
	if presentModeCount != 0 {
		support.PresentModes = make([]vk.PresentMode, presentModeCount)
		if res := vk.GetPhysicalDeviceSurfacePresentModes(physicalDevice, surface, &presentModeCount, support.PresentModes); !VulkanResultIsSuccess(res) {
			return nil, fmt.Errorf("failed to get physical device surface present modes: %s", VulkanResultString(res))
		}
	}

	return support, nil
}

// ChooseSurfaceFormat picks the preferred format when the surface leaves the
// choice open, otherwise the first supported entry.
func ChooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	// TODO: FormatB8g8r8Unorm carries no alpha channel; check against a real
	// surface once swapchain creation lands, presentation engines usually
	// advertise FormatB8g8r8a8Unorm instead.
	preferred := vk.SurfaceFormat{
		Format:     vk.FormatB8g8r8Unorm,
		ColorSpace: vk.ColorSpaceSrgbNonlinear,
	}

	if len(formats) == 0 {
		return preferred
	}
	if len(formats) == 1 && formats[0].Format == vk.FormatUndefined {
		return preferred
	}
	for _, format := range formats {
		if format.Format == preferred.Format && format.ColorSpace == preferred.ColorSpace {
			return format
		}
	}
	return formats[0]
}

// ChoosePresentMode prefers mailbox, falls back to immediate and finally to
// FIFO, which every driver provides.
func ChoosePresentMode(presentModes []vk.PresentMode) vk.PresentMode {
	best := vk.PresentModeFifo
	for _, mode := range presentModes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
		if mode == vk.PresentModeImmediate {
			best = mode
		}
	}
	return best
}

// ChooseExtent resolves the swap extent. Surfaces that fix their extent win;
// otherwise the framebuffer size is clamped into the supported range.
func ChooseExtent(capabilities vk.SurfaceCapabilities, framebufferWidth, framebufferHeight uint32) vk.Extent2D {
	if capabilities.CurrentExtent.Width != vk.MaxUint32 {
		return capabilities.CurrentExtent
	}
	return vk.Extent2D{
		Width:  MathClamp(framebufferWidth, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: MathClamp(framebufferHeight, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

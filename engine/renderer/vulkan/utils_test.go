package vulkan_test

import (
	"strings"
	"testing"

	vk "github.com/goki/vulkan"

	"github.com/drfreeman816/VulkanTest/engine/renderer/vulkan"
)

func TestVulkanSafeString(t *testing.T) {
	if got := vulkan.VulkanSafeString("VK_KHR_surface"); got != "VK_KHR_surface\x00" {
		t.Errorf("got %q, want NUL-terminated input", got)
	}
	if got := vulkan.VulkanSafeString("VK_KHR_surface\x00"); got != "VK_KHR_surface\x00" {
		t.Errorf("already terminated string changed to %q", got)
	}
}

func TestVulkanSafeStringsLeavesInputUntouched(t *testing.T) {
	names := []string{"VK_KHR_surface", "VK_KHR_swapchain"}

	safe := vulkan.VulkanSafeStrings(names)

	for i, name := range names {
		if strings.Contains(name, "\x00") {
			t.Errorf("input slice entry %d was rewritten to %q", i, name)
		}
		if safe[i] != name+"\x00" {
			t.Errorf("safe[%d] = %q, want %q", i, safe[i], name+"\x00")
		}
	}
}

func TestMissingNamesOrderIndependent(t *testing.T) {
	available := []string{"VK_KHR_swapchain", "VK_KHR_surface", "VK_EXT_debug_report"}

	if missing := vulkan.MissingNames([]string{"VK_KHR_surface", "VK_KHR_swapchain"}, available); len(missing) != 0 {
		t.Errorf("all requested names are available, got missing %v", missing)
	}
	if missing := vulkan.MissingNames([]string{"VK_KHR_swapchain", "VK_KHR_surface"}, available); len(missing) != 0 {
		t.Errorf("reversed request order reported missing %v", missing)
	}
}

func TestMissingNamesCaseSensitive(t *testing.T) {
	missing := vulkan.MissingNames([]string{"vk_khr_surface"}, []string{"VK_KHR_surface"})
	if len(missing) != 1 || missing[0] != "vk_khr_surface" {
		t.Errorf("case difference must not match, got missing %v", missing)
	}
}

func TestMissingNamesReportsEveryAbsence(t *testing.T) {
	missing := vulkan.MissingNames(
		[]string{"VK_KHR_surface", "VK_LAYER_KHRONOS_validation", "VK_KHR_swapchain"},
		[]string{"VK_KHR_surface"},
	)
	if len(missing) != 2 || missing[0] != "VK_LAYER_KHRONOS_validation" || missing[1] != "VK_KHR_swapchain" {
		t.Errorf("got missing %v, want the two absent names in request order", missing)
	}
}

func TestVulkanResultString(t *testing.T) {
	if got := vulkan.VulkanResultString(vk.Success); got != "VK_SUCCESS" {
		t.Errorf("vk.Success named %q", got)
	}
	if got := vulkan.VulkanResultString(vk.ErrorDeviceLost); got != "VK_ERROR_DEVICE_LOST" {
		t.Errorf("vk.ErrorDeviceLost named %q", got)
	}
	if got := vulkan.VulkanResultString(vk.Result(-12345)); !strings.Contains(got, "unrecognized") {
		t.Errorf("unknown result named %q", got)
	}
}

func TestVulkanResultIsSuccess(t *testing.T) {
	if !vulkan.VulkanResultIsSuccess(vk.Success) {
		t.Error("vk.Success reported as failure")
	}
	if !vulkan.VulkanResultIsSuccess(vk.Suboptimal) {
		t.Error("vk.Suboptimal is a status code, not an error")
	}
	if vulkan.VulkanResultIsSuccess(vk.ErrorDeviceLost) {
		t.Error("vk.ErrorDeviceLost reported as success")
	}
}

func TestMathClamp(t *testing.T) {
	if got := vulkan.MathClamp(uint32(5), 10, 20); got != 10 {
		t.Errorf("clamping below the range gave %d, want 10", got)
	}
	if got := vulkan.MathClamp(uint32(15), 10, 20); got != 15 {
		t.Errorf("value inside the range changed to %d", got)
	}
	if got := vulkan.MathClamp(uint32(25), 10, 20); got != 20 {
		t.Errorf("clamping above the range gave %d, want 20", got)
	}
}

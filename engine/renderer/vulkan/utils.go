package vulkan

import (
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
	"golang.org/x/exp/constraints"
)

var end = "\x00"

// VulkanSafeString terminates s with the NUL byte the loader expects.
func VulkanSafeString(s string) string {
	if strings.HasSuffix(s, end) {
		return s
	}
	return s + end
}

// VulkanSafeStrings returns a NUL-terminated copy of list. The input slice
// is left untouched so callers can keep comparing its entries as Go strings.
func VulkanSafeStrings(list []string) []string {
	safe := make([]string, len(list))
	for i, s := range list {
		safe[i] = VulkanSafeString(s)
	}
	return safe
}

// MissingNames returns the entries of requested that have no exact,
// case-sensitive match in available. The order of either list does not
// matter.
func MissingNames(requested, available []string) []string {
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range requested {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// VulkanResultIsSuccess reports whether result is a status code rather than
// an error. Error codes are negative in the registry.
func VulkanResultIsSuccess(result vk.Result) bool {
	return result >= vk.Success
}

var resultStrings = map[vk.Result]string{
	vk.Success:                   "VK_SUCCESS",
	vk.NotReady:                  "VK_NOT_READY",
	vk.Timeout:                   "VK_TIMEOUT",
	vk.EventSet:                  "VK_EVENT_SET",
	vk.EventReset:                "VK_EVENT_RESET",
	vk.Incomplete:                "VK_INCOMPLETE",
	vk.Suboptimal:                "VK_SUBOPTIMAL_KHR",
	vk.ErrorOutOfHostMemory:      "VK_ERROR_OUT_OF_HOST_MEMORY",
	vk.ErrorOutOfDeviceMemory:    "VK_ERROR_OUT_OF_DEVICE_MEMORY",
	vk.ErrorInitializationFailed: "VK_ERROR_INITIALIZATION_FAILED",
	vk.ErrorDeviceLost:           "VK_ERROR_DEVICE_LOST",
	vk.ErrorMemoryMapFailed:      "VK_ERROR_MEMORY_MAP_FAILED",
	vk.ErrorLayerNotPresent:      "VK_ERROR_LAYER_NOT_PRESENT",
	vk.ErrorExtensionNotPresent:  "VK_ERROR_EXTENSION_NOT_PRESENT",
	vk.ErrorFeatureNotPresent:    "VK_ERROR_FEATURE_NOT_PRESENT",
	vk.ErrorIncompatibleDriver:   "VK_ERROR_INCOMPATIBLE_DRIVER",
	vk.ErrorTooManyObjects:       "VK_ERROR_TOO_MANY_OBJECTS",
	vk.ErrorFormatNotSupported:   "VK_ERROR_FORMAT_NOT_SUPPORTED",
	vk.ErrorFragmentedPool:       "VK_ERROR_FRAGMENTED_POOL",
	vk.ErrorSurfaceLost:          "VK_ERROR_SURFACE_LOST_KHR",
	vk.ErrorNativeWindowInUse:    "VK_ERROR_NATIVE_WINDOW_IN_USE_KHR",
	vk.ErrorOutOfDate:            "VK_ERROR_OUT_OF_DATE_KHR",
	vk.ErrorIncompatibleDisplay:  "VK_ERROR_INCOMPATIBLE_DISPLAY_KHR",
	vk.ErrorUnknown:              "VK_ERROR_UNKNOWN",
}

// VulkanResultString names the result codes the bootstrap can run into.
func VulkanResultString(result vk.Result) string {
	if name, ok := resultStrings[result]; ok {
		return name
	}
	return fmt.Sprintf("unrecognized VkResult (%d)", int32(result))
}

// MathClamp keeps value within [min, max].
func MathClamp[T constraints.Ordered](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

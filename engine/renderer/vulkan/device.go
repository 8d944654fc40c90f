package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/drfreeman816/VulkanTest/engine/core"
)

type VulkanDevice struct {
	PhysicalDevice vk.PhysicalDevice
	LogicalDevice  vk.Device

	DeviceName         string
	GraphicsQueueIndex int32
	PresentQueueIndex  int32

	GraphicsQueue vk.Queue
	PresentQueue  vk.Queue

	// Extensions the physical device reported during selection.
	ExtensionNames []string

	Properties vk.PhysicalDeviceProperties
	Features   vk.PhysicalDeviceFeatures
	Memory     vk.PhysicalDeviceMemoryProperties

	Score int
}

// DeviceRequirements declares what a physical device must offer before it is
// considered at all.
type DeviceRequirements struct {
	GeometryShader       bool
	DeviceExtensionNames []string
}

// DefaultDeviceRequirements requires a geometry shader and the given device
// extensions.
func DefaultDeviceRequirements(extensionNames []string) *DeviceRequirements {
	return &DeviceRequirements{
		GeometryShader:       true,
		DeviceExtensionNames: extensionNames,
	}
}

// QueueFamilyCaps is the capability snapshot of one queue family.
type QueueFamilyCaps struct {
	QueueCount uint32
	Graphics   bool
	Present    bool
}

// QueueFamilyIndices holds the resolved family index per required
// capability. -1 marks a capability no family provides.
type QueueFamilyIndices struct {
	GraphicsFamilyIndex int32
	PresentFamilyIndex  int32
}

func (q QueueFamilyIndices) IsComplete() bool {
	return q.GraphicsFamilyIndex >= 0 && q.PresentFamilyIndex >= 0
}

// FindQueueFamilies walks the families in index order, keeping the latest
// provider of each capability, and stops as soon as every capability is
// covered. A family offering both graphics and present therefore wins over
// an earlier split across two families.
func FindQueueFamilies(families []QueueFamilyCaps) QueueFamilyIndices {
	indices := QueueFamilyIndices{
		GraphicsFamilyIndex: -1,
		PresentFamilyIndex:  -1,
	}
	for i, family := range families {
		if family.QueueCount == 0 {
			continue
		}
		if family.Graphics {
			indices.GraphicsFamilyIndex = int32(i)
		}
		if family.Present {
			indices.PresentFamilyIndex = int32(i)
		}
		if indices.IsComplete() {
			break
		}
	}
	return indices
}

// DeviceCandidate is one enumerated GPU plus everything scoring needs,
// collected up front so the decision itself touches no driver state.
type DeviceCandidate struct {
	Handle vk.PhysicalDevice

	DeviceName          string
	DeviceType          vk.PhysicalDeviceType
	MaxImageDimension2D uint32
	GeometryShader      bool
	QueueFamilies       []QueueFamilyCaps
	ExtensionNames      []string
	SurfaceFormatCount  uint32
	PresentModeCount    uint32

	Properties vk.PhysicalDeviceProperties
	Features   vk.PhysicalDeviceFeatures
	Memory     vk.PhysicalDeviceMemoryProperties
}

// ScoreDevice rates a candidate. Any unmet requirement yields 0, which marks
// the device unsuitable. Otherwise discrete GPUs get a 1000 point head start
// and the maximum 2D image dimension is added on top.
func ScoreDevice(candidate *DeviceCandidate, requirements *DeviceRequirements) int {
	if requirements.GeometryShader && !candidate.GeometryShader {
		core.LogDebug("device '%s' rejected: no geometry shader support", candidate.DeviceName)
		return 0
	}

	if !FindQueueFamilies(candidate.QueueFamilies).IsComplete() {
		core.LogDebug("device '%s' rejected: graphics and present queues not covered", candidate.DeviceName)
		return 0
	}

	if missing := MissingNames(requirements.DeviceExtensionNames, candidate.ExtensionNames); len(missing) > 0 {
		core.LogDebug("device '%s' rejected: missing device extensions %v", candidate.DeviceName, missing)
		return 0
	}

	if candidate.SurfaceFormatCount == 0 || candidate.PresentModeCount == 0 {
		core.LogDebug("device '%s' rejected: no surface formats or present modes", candidate.DeviceName)
		return 0
	}

	score := 0
	if candidate.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu {
		score += 1000
	}
	score += int(candidate.MaxImageDimension2D)
	return score
}

// SelectBestCandidate scores every candidate and returns the winner. Ties
// keep the earlier candidate in enumeration order.
func SelectBestCandidate(candidates []*DeviceCandidate, requirements *DeviceRequirements) (*DeviceCandidate, int, error) {
	if len(candidates) == 0 {
		return nil, 0, core.ErrNoGPUFound
	}

	var best *DeviceCandidate
	bestScore := 0
	for _, candidate := range candidates {
		score := ScoreDevice(candidate, requirements)
		core.LogInfo("Device '%s' scored %d.", candidate.DeviceName, score)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if best == nil {
		return nil, 0, core.ErrNoSuitableGPU
	}
	return best, bestScore, nil
}

// collectCandidate gathers the scoring snapshot for one physical device.
func collectCandidate(physicalDevice vk.PhysicalDevice, surface vk.Surface) (*DeviceCandidate, error) {
	candidate := &DeviceCandidate{Handle: physicalDevice}

	properties := vk.PhysicalDeviceProperties{}
	vk.GetPhysicalDeviceProperties(physicalDevice, &properties)
	properties.Deref()
	properties.Limits.Deref()

	features := vk.PhysicalDeviceFeatures{}
	vk.GetPhysicalDeviceFeatures(physicalDevice, &features)
	features.Deref()

	memory := vk.PhysicalDeviceMemoryProperties{}
	vk.GetPhysicalDeviceMemoryProperties(physicalDevice, &memory)
	memory.Deref()

	candidate.Properties = properties
	candidate.Features = features
	candidate.Memory = memory
	candidate.DeviceName = vk.ToString(properties.DeviceName[:])
	candidate.DeviceType = properties.DeviceType
	candidate.MaxImageDimension2D = properties.Limits.MaxImageDimension2D
	candidate.GeometryShader = features.GeometryShader == vk.True

	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, queueFamilies)

	candidate.QueueFamilies = make([]QueueFamilyCaps, queueFamilyCount)
	for i := uint32(0); i < queueFamilyCount; i++ {
		queueFamilies[i].Deref()

		var presentSupport vk.Bool32
		if res := vk.GetPhysicalDeviceSurfaceSupport(physicalDevice, i, surface, &presentSupport); !VulkanResultIsSuccess(res) {
			return nil, fmt.Errorf("surface support query failed for queue family %d of '%s': %s",
				i, candidate.DeviceName, VulkanResultString(res))
		}

		candidate.QueueFamilies[i] = QueueFamilyCaps{
			QueueCount: queueFamilies[i].QueueCount,
			Graphics:   vk.QueueFlagBits(queueFamilies[i].QueueFlags)&vk.QueueGraphicsBit > 0,
			Present:    presentSupport == vk.True,
		}
	}

	var extensionCount uint32
	if res := vk.EnumerateDeviceExtensionProperties(physicalDevice, "", &extensionCount, nil); !VulkanResultIsSuccess(res) {
		return nil, fmt.Errorf("device extension enumeration failed for '%s': %s",
			candidate.DeviceName, VulkanResultString(res))
	}
	if extensionCount != 0 {
		availableExtensions := make([]vk.ExtensionProperties, extensionCount)
		if res := vk.EnumerateDeviceExtensionProperties(physicalDevice, "", &extensionCount, availableExtensions); !VulkanResultIsSuccess(res) {
			return nil, fmt.Errorf("device extension enumeration failed for '%s': %s",
				candidate.DeviceName, VulkanResultString(res))
		}
		candidate.ExtensionNames = make([]string, 0, extensionCount)
		for i := range availableExtensions {
			availableExtensions[i].Deref()
			candidate.ExtensionNames = append(candidate.ExtensionNames, vk.ToString(availableExtensions[i].ExtensionName[:]))
		}
	}

	support, err := QuerySwapchainSupport(physicalDevice, surface)
	if err != nil {
		return nil, err
	}
	candidate.SurfaceFormatCount = uint32(len(support.Formats))
	candidate.PresentModeCount = uint32(len(support.PresentModes))

	return candidate, nil
}

// DeviceCreate builds the logical device with one queue per unique family on
// the physical device a previous SelectPhysicalDevice call bound.
func DeviceCreate(context *VulkanContext, requirements *DeviceRequirements, validationLayerNames []string) error {
	if context.Device == nil {
		return fmt.Errorf("no physical device has been selected")
	}

	core.LogInfo("Creating logical device...")

	// NOTE: Do not create additional queues for shared indices.
	presentSharesGraphicsQueue := context.Device.GraphicsQueueIndex == context.Device.PresentQueueIndex
	indices := []uint32{uint32(context.Device.GraphicsQueueIndex)}
	if !presentSharesGraphicsQueue {
		indices = append(indices, uint32(context.Device.PresentQueueIndex))
	}

	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(indices))
	for i := range indices {
		queueCreateInfos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: indices[i],
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}

	// No features beyond the ones scoring already verified.
	deviceFeatures := vk.PhysicalDeviceFeatures{}

	extensionNames := append([]string(nil), requirements.DeviceExtensionNames...)
	for _, name := range context.Device.ExtensionNames {
		// Portability implementations insist on this one being requested.
		if name == "VK_KHR_portability_subset" {
			core.LogInfo("Adding required extension 'VK_KHR_portability_subset'.")
			extensionNames = append(extensionNames, name)
			break
		}
	}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueCreateInfos)),
		PQueueCreateInfos:       queueCreateInfos,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{deviceFeatures},
		EnabledExtensionCount:   uint32(len(extensionNames)),
		PpEnabledExtensionNames: VulkanSafeStrings(extensionNames),
	}

	// Device layers are ignored by current loaders but older ones still
	// read them, so mirror the instance layers.
	if len(validationLayerNames) > 0 {
		deviceCreateInfo.EnabledLayerCount = uint32(len(validationLayerNames))
		deviceCreateInfo.PpEnabledLayerNames = VulkanSafeStrings(validationLayerNames)
	}

	var logicalDevice vk.Device
	if res := vk.CreateDevice(
		context.Device.PhysicalDevice,
		&deviceCreateInfo,
		context.Allocator,
		&logicalDevice); !VulkanResultIsSuccess(res) {
		return fmt.Errorf("failed to create logical device: %s", VulkanResultString(res))
	}
	context.Device.LogicalDevice = logicalDevice

	core.LogInfo("Logical device created.")

	vk.GetDeviceQueue(
		context.Device.LogicalDevice,
		uint32(context.Device.GraphicsQueueIndex),
		0,
		&context.Device.GraphicsQueue)

	vk.GetDeviceQueue(
		context.Device.LogicalDevice,
		uint32(context.Device.PresentQueueIndex),
		0,
		&context.Device.PresentQueue)
	core.LogInfo("Queues obtained.")

	return nil
}

// SelectPhysicalDevice scores every enumerated GPU and binds the winner to
// the context.
func SelectPhysicalDevice(context *VulkanContext, requirements *DeviceRequirements) error {
	var physicalDeviceCount uint32 = 0
	if res := vk.EnumeratePhysicalDevices(context.Instance, &physicalDeviceCount, nil); !VulkanResultIsSuccess(res) {
		return fmt.Errorf("physical device enumeration failed: %s", VulkanResultString(res))
	}
	if physicalDeviceCount == 0 {
		return core.ErrNoGPUFound
	}

	physicalDevices := make([]vk.PhysicalDevice, physicalDeviceCount)
	if res := vk.EnumeratePhysicalDevices(context.Instance, &physicalDeviceCount, physicalDevices); !VulkanResultIsSuccess(res) {
		return fmt.Errorf("physical device enumeration failed: %s", VulkanResultString(res))
	}
	core.LogInfo("Found %d device(s) with Vulkan support.", physicalDeviceCount)

	candidates := make([]*DeviceCandidate, 0, physicalDeviceCount)
	for _, physicalDevice := range physicalDevices {
		candidate, err := collectCandidate(physicalDevice, context.Surface)
		if err != nil {
			return err
		}
		candidates = append(candidates, candidate)
	}

	best, score, err := SelectBestCandidate(candidates, requirements)
	if err != nil {
		return err
	}

	queueInfo := FindQueueFamilies(best.QueueFamilies)
	context.Device = &VulkanDevice{
		PhysicalDevice:     best.Handle,
		DeviceName:         best.DeviceName,
		GraphicsQueueIndex: queueInfo.GraphicsFamilyIndex,
		PresentQueueIndex:  queueInfo.PresentFamilyIndex,
		ExtensionNames:     best.ExtensionNames,
		// Keep a copy of properties, features and memory info for later use.
		Properties: best.Properties,
		Features:   best.Features,
		Memory:     best.Memory,
		Score:      score,
	}

	logSelectedDevice(best, score)
	return nil
}

func logSelectedDevice(candidate *DeviceCandidate, score int) {
	core.LogInfo("Selected device: '%s' (score %d).", candidate.DeviceName, score)

	switch candidate.DeviceType {
	default:
		fallthrough
	case vk.PhysicalDeviceTypeOther:
		core.LogInfo("GPU type is Unknown.")
	case vk.PhysicalDeviceTypeIntegratedGpu:
		core.LogInfo("GPU type is Integrated.")
	case vk.PhysicalDeviceTypeDiscreteGpu:
		core.LogInfo("GPU type is Discrete.")
	case vk.PhysicalDeviceTypeVirtualGpu:
		core.LogInfo("GPU type is Virtual.")
	case vk.PhysicalDeviceTypeCpu:
		core.LogInfo("GPU type is CPU.")
	}

	core.LogInfo(
		"GPU Driver version: %d.%d.%d",
		vk.Version.Major(vk.Version(candidate.Properties.DriverVersion)),
		vk.Version.Minor(vk.Version(candidate.Properties.DriverVersion)),
		vk.Version.Patch(vk.Version(candidate.Properties.DriverVersion)),
	)
	core.LogInfo(
		"Vulkan API version: %d.%d.%d",
		vk.Version.Major(vk.Version(candidate.Properties.ApiVersion)),
		vk.Version.Minor(vk.Version(candidate.Properties.ApiVersion)),
		vk.Version.Patch(vk.Version(candidate.Properties.ApiVersion)),
	)

	for i := 0; i < int(candidate.Memory.MemoryHeapCount); i++ {
		candidate.Memory.MemoryHeaps[i].Deref()
		memorySizeGib := float32(candidate.Memory.MemoryHeaps[i].Size) / 1024.0 / 1024.0 / 1024.0
		if vk.MemoryHeapFlagBits(candidate.Memory.MemoryHeaps[i].Flags)&vk.MemoryHeapDeviceLocalBit > 0 {
			core.LogInfo("Local GPU memory: %.2f GiB", memorySizeGib)
		} else {
			core.LogInfo("Shared System memory: %.2f GiB", memorySizeGib)
		}
	}
}

// DeviceDestroy waits for the device to go idle and releases it. Physical
// devices are not destroyed.
func DeviceDestroy(context *VulkanContext) {
	if context.Device == nil {
		return
	}

	context.Device.GraphicsQueue = nil
	context.Device.PresentQueue = nil

	core.LogInfo("Destroying logical device...")
	if context.Device.LogicalDevice != nil {
		vk.DeviceWaitIdle(context.Device.LogicalDevice)
		vk.DestroyDevice(context.Device.LogicalDevice, context.Allocator)
		context.Device.LogicalDevice = nil
	}

	core.LogInfo("Releasing physical device resources...")
	context.Device.PhysicalDevice = nil
	context.Device.GraphicsQueueIndex = -1
	context.Device.PresentQueueIndex = -1
	context.Device = nil
}

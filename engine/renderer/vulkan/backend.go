package vulkan

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/drfreeman816/VulkanTest/engine/containers"
	"github.com/drfreeman816/VulkanTest/engine/core"
	"github.com/drfreeman816/VulkanTest/engine/platform"
)

// validationHistorySize bounds how many recent validation messages are kept
// for failure reports.
const validationHistorySize = 16

type VulkanBackend struct {
	platform *platform.Platform
	context  *VulkanContext

	debug                bool
	debugReportAvailable bool
	validationLayerNames []string

	validationHistory *containers.RingQueue[string]
	validationCount   uint64
}

func New(p *platform.Platform, debug bool, validationLayerNames []string) *VulkanBackend {
	if !debug {
		validationLayerNames = nil
	}
	return &VulkanBackend{
		platform: p,
		context: &VulkanContext{
			FramebufferWidth:  0,
			FramebufferHeight: 0,
			// TODO: custom allocator.
			Allocator: nil,
		},
		debug:                debug,
		validationLayerNames: validationLayerNames,
		validationHistory:    containers.NewRingQueue[string](validationHistorySize),
	}
}

// CreateInstance loads the Vulkan entry points, verifies every requested
// layer and instance extension against what the loader offers, and creates
// the instance.
func (vr *VulkanBackend) CreateInstance(appName, engineName string) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return fmt.Errorf("vkGetInstanceProcAddr is nil, no Vulkan loader is available")
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return fmt.Errorf("failed to initialize vulkan: %w", err)
	}

	width, height := vr.platform.FramebufferSize()
	vr.context.FramebufferWidth = width
	vr.context.FramebufferHeight = height

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString(engineName),
		EngineVersion:      uint32(vk.MakeVersion(1, 0, 0)),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	// The windowing layer dictates the surface extensions.
	requiredExtensions := vr.platform.GetRequiredExtensionNames()

	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		// Portability enumeration flag.
		createInfo.Flags |= 1
	}

	availableExtensions, err := availableInstanceExtensions()
	if err != nil {
		return err
	}
	core.LogDebug("Instance offers %d extension(s).", len(availableExtensions))

	if missing := MissingNames(requiredExtensions, availableExtensions); len(missing) > 0 {
		return fmt.Errorf("required instance extension(s) missing: %s", strings.Join(missing, ", "))
	}

	if vr.debug {
		// The debug report extension is optional. Without it the run
		// continues, just without validation output.
		if len(MissingNames([]string{vk.ExtDebugReportExtensionName}, availableExtensions)) == 0 {
			requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
			vr.debugReportAvailable = true
		} else {
			core.LogWarn("%s is not available; validation output will not be captured.", vk.ExtDebugReportExtensionName)
		}

		core.LogInfo("Required extensions:")
		for i := 0; i < len(requiredExtensions); i++ {
			core.LogInfo(requiredExtensions[i])
		}
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)

	// Verify all required layers are available.
	if len(vr.validationLayerNames) > 0 {
		core.LogInfo("Validation layers enabled. Enumerating...")

		var availableLayerCount uint32
		if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); !VulkanResultIsSuccess(res) {
			return fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res))
		}
		availableLayers := make([]vk.LayerProperties, availableLayerCount)
		if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); !VulkanResultIsSuccess(res) {
			return fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res))
		}

		availableLayerNames := make([]string, availableLayerCount)
		for i := range availableLayers {
			availableLayers[i].Deref()
			availableLayerNames[i] = vk.ToString(availableLayers[i].LayerName[:])
		}

		for _, name := range vr.validationLayerNames {
			core.LogInfo("Searching for layer: %s...", name)
			if len(MissingNames([]string{name}, availableLayerNames)) > 0 {
				return fmt.Errorf("required validation layer is missing: %s", name)
			}
			core.LogInfo("Found.")
		}
		core.LogInfo("All required validation layers are present.")

		createInfo.EnabledLayerCount = uint32(len(vr.validationLayerNames))
		createInfo.PpEnabledLayerNames = VulkanSafeStrings(vr.validationLayerNames)
	}

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &instance); !VulkanResultIsSuccess(res) {
		return fmt.Errorf("failed to create the Vulkan instance: %s", VulkanResultString(res))
	}
	vr.context.Instance = instance

	if err := vk.InitInstance(vr.context.Instance); err != nil {
		return fmt.Errorf("failed to load instance entry points: %w", err)
	}

	core.LogInfo("Vulkan Instance created.")
	return nil
}

func availableInstanceExtensions() ([]string, error) {
	var count uint32
	if res := vk.EnumerateInstanceExtensionProperties("", &count, nil); !VulkanResultIsSuccess(res) {
		return nil, fmt.Errorf("failed to enumerate instance extensions: %s", VulkanResultString(res))
	}
	properties := make([]vk.ExtensionProperties, count)
	if count > 0 {
		if res := vk.EnumerateInstanceExtensionProperties("", &count, properties); !VulkanResultIsSuccess(res) {
			return nil, fmt.Errorf("failed to enumerate instance extensions: %s", VulkanResultString(res))
		}
	}
	names := make([]string, count)
	for i := range properties {
		properties[i].Deref()
		names[i] = vk.ToString(properties[i].ExtensionName[:])
	}
	return names, nil
}

// InstallDebugCallback wires validation output into the logger. It reports
// false without an error when validation is off or the debug report
// extension is absent; an actual creation failure is an error.
func (vr *VulkanBackend) InstallDebugCallback() (bool, error) {
	if !vr.debug {
		core.LogDebug("Validation disabled; skipping debug callback.")
		return false, nil
	}
	if !vr.debugReportAvailable {
		core.LogWarn("Debug report extension absent; skipping debug callback.")
		return false, nil
	}

	core.LogDebug("Creating Vulkan debugger...")
	debugCreateInfo := vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
		PfnCallback: vr.onDebugReport,
		PNext:       nil,
	}

	var dbg vk.DebugReportCallback
	if err := vk.Error(vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, nil, &dbg)); err != nil {
		return false, fmt.Errorf("vk.CreateDebugReportCallback failed: %w", err)
	}
	vr.context.debugMessenger = dbg

	core.LogDebug("Vulkan debugger created.")
	return true, nil
}

func (vr *VulkanBackend) onDebugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string,
	pUserData unsafe.Pointer) vk.Bool32 {

	vr.validationCount++
	if vr.validationHistory.IsFull() {
		vr.validationHistory.Dequeue()
	}
	vr.validationHistory.Enqueue(fmt.Sprintf("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage))

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("ERROR: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogInfo("INFORMATION: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}

// CreateSurface asks the windowing layer for a presentable surface.
func (vr *VulkanBackend) CreateSurface() error {
	core.LogDebug("Creating Vulkan surface...")

	surface, err := vr.platform.Window.CreateWindowSurface(vr.context.Instance, nil)
	if err != nil {
		return fmt.Errorf("failed to create platform surface: %w", err)
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)

	// The surface tracks the framebuffer, so refresh the cached size.
	width, height := vr.platform.FramebufferSize()
	vr.context.FramebufferWidth = width
	vr.context.FramebufferHeight = height

	core.LogDebug("Vulkan surface created.")
	return nil
}

// SelectPhysicalDevice scores every GPU the instance can see and keeps the
// best one.
func (vr *VulkanBackend) SelectPhysicalDevice(requirements *DeviceRequirements) error {
	return SelectPhysicalDevice(vr.context, requirements)
}

// CreateLogicalDevice builds the logical device and its queues on the
// selected GPU, then reports what a swapchain would use.
func (vr *VulkanBackend) CreateLogicalDevice(requirements *DeviceRequirements) error {
	if err := DeviceCreate(vr.context, requirements, vr.validationLayerNames); err != nil {
		return err
	}
	vr.logPresentationPreview()
	return nil
}

func (vr *VulkanBackend) logPresentationPreview() {
	support, err := QuerySwapchainSupport(vr.context.Device.PhysicalDevice, vr.context.Surface)
	if err != nil {
		core.LogWarn("Presentation support query failed: %s", err)
		return
	}

	format := ChooseSurfaceFormat(support.Formats)
	presentMode := ChoosePresentMode(support.PresentModes)
	extent := ChooseExtent(support.Capabilities, vr.context.FramebufferWidth, vr.context.FramebufferHeight)

	core.LogDebug("Presentation would use format %d (color space %d), present mode %d, extent %dx%d.",
		format.Format, format.ColorSpace, presentMode, extent.Width, extent.Height)
}

// RecentValidationMessages drains the retained validation history, oldest
// first.
func (vr *VulkanBackend) RecentValidationMessages() []string {
	messages := make([]string, 0, vr.validationHistory.Len())
	for !vr.validationHistory.IsEmpty() {
		message, err := vr.validationHistory.Dequeue()
		if err != nil {
			break
		}
		messages = append(messages, message)
	}
	return messages
}

// Shutdown tears the Vulkan objects down in reverse creation order. Safe to
// call after a partial bootstrap and safe to call twice.
func (vr *VulkanBackend) Shutdown() error {
	if vr.context == nil {
		return nil
	}

	DeviceDestroy(vr.context)

	if vr.context.debugMessenger != vk.NullDebugReportCallback {
		core.LogDebug("Destroying Vulkan debugger...")
		vk.DestroyDebugReportCallback(vr.context.Instance, vr.context.debugMessenger, vr.context.Allocator)
		vr.context.debugMessenger = vk.NullDebugReportCallback
		if vr.validationCount > 0 {
			core.LogInfo("Recorded %d validation message(s) this session.", vr.validationCount)
		}
	}

	if vr.context.Surface != vk.NullSurface {
		core.LogDebug("Destroying Vulkan surface...")
		vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
		vr.context.Surface = vk.NullSurface
	}

	if vr.context.Instance != nil {
		core.LogDebug("Destroying Vulkan instance...")
		vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)
		vr.context.Instance = nil
	}

	vr.context = nil
	return nil
}

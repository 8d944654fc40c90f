package renderer

import (
	"fmt"

	"github.com/drfreeman816/VulkanTest/engine/platform"
	"github.com/drfreeman816/VulkanTest/engine/renderer/vulkan"
)

// Backend is one graphics API brought up far enough to own a logical device
// and its queues.
type Backend interface {
	CreateInstance(appName, engineName string) error
	InstallDebugCallback() (installed bool, err error)
	CreateSurface() error
	SelectPhysicalDevice(requirements *vulkan.DeviceRequirements) error
	CreateLogicalDevice(requirements *vulkan.DeviceRequirements) error
	RecentValidationMessages() []string
	Shutdown() error
}

type RendererType uint8

const (
	Vulkan RendererType = iota
	DirectX
	Metal
	OpenGL
)

func (rt RendererType) String() string {
	switch rt {
	case Vulkan:
		return "Vulkan"
	case DirectX:
		return "DirectX"
	case Metal:
		return "Metal"
	case OpenGL:
		return "OpenGL"
	default:
		return fmt.Sprintf("RendererType(%d)", uint8(rt))
	}
}

// Config carries the backend settings the application resolved.
type Config struct {
	ApplicationName  string
	EngineName       string
	EnableValidation bool
	ValidationLayers []string
	DeviceExtensions []string
}

type Renderer struct {
	backend      Backend
	config       Config
	requirements *vulkan.DeviceRequirements
}

// New binds the requested backend type. Only Vulkan is implemented.
func New(rendererType RendererType, p *platform.Platform, config Config) (*Renderer, error) {
	switch rendererType {
	case Vulkan:
		return &Renderer{
			backend:      vulkan.New(p, config.EnableValidation, config.ValidationLayers),
			config:       config,
			requirements: vulkan.DefaultDeviceRequirements(config.DeviceExtensions),
		}, nil
	default:
		return nil, fmt.Errorf("renderer type %s is not supported", rendererType)
	}
}

func (r *Renderer) CreateInstance() error {
	return r.backend.CreateInstance(r.config.ApplicationName, r.config.EngineName)
}

func (r *Renderer) InstallDebugCallback() (bool, error) {
	return r.backend.InstallDebugCallback()
}

func (r *Renderer) CreateSurface() error {
	return r.backend.CreateSurface()
}

func (r *Renderer) SelectPhysicalDevice() error {
	return r.backend.SelectPhysicalDevice(r.requirements)
}

func (r *Renderer) CreateLogicalDevice() error {
	return r.backend.CreateLogicalDevice(r.requirements)
}

// RecentValidationMessages surfaces the backend's retained validation
// history for failure reports.
func (r *Renderer) RecentValidationMessages() []string {
	return r.backend.RecentValidationMessages()
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

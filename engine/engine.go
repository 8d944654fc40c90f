package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drfreeman816/VulkanTest/engine/core"
	"github.com/drfreeman816/VulkanTest/engine/platform"
	"github.com/drfreeman816/VulkanTest/engine/renderer"
)

type Stage uint8

const (
	// Nothing has been created yet
	EngineStageUninitialized Stage = iota
	// The Vulkan instance exists
	EngineStageInstanceCreated
	// Validation output is wired into the logger
	EngineStageDebugCallbackInstalled
	// The window surface exists
	EngineStageSurfaceCreated
	// A physical device has been picked
	EngineStagePhysicalDeviceSelected
	// The logical device and its queues exist
	EngineStageLogicalDeviceCreated
	// The event loop is processing messages
	EngineStageRunning
	// Everything has been released in reverse order
	EngineStageTornDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "Uninitialized"
	case EngineStageInstanceCreated:
		return "InstanceCreated"
	case EngineStageDebugCallbackInstalled:
		return "DebugCallbackInstalled"
	case EngineStageSurfaceCreated:
		return "SurfaceCreated"
	case EngineStagePhysicalDeviceSelected:
		return "PhysicalDeviceSelected"
	case EngineStageLogicalDeviceCreated:
		return "LogicalDeviceCreated"
	case EngineStageRunning:
		return "Running"
	case EngineStageTornDown:
		return "TornDown"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

type Engine struct {
	sessionID    uuid.UUID
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	platform     *platform.Platform
	renderer     *renderer.Renderer
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("a game with an application config is required")
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}

	p, err := platform.New()
	if err != nil {
		return nil, err
	}

	return &Engine{
		sessionID:    uuid.New(),
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		platform:     p,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

// Initialize walks the bootstrap stages in order: window, instance, debug
// callback, surface, physical device, logical device. The first failure
// stops the walk and is returned.
func (e *Engine) Initialize() error {
	core.LogInfo("Session %s starting.", e.sessionID)

	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)

	config := e.gameInstance.ApplicationConfig

	if err := e.platform.Startup(config.Name,
		config.StartPosX,
		config.StartPosY,
		config.StartWidth,
		config.StartHeight); err != nil {
		return err
	}

	r, err := renderer.New(renderer.Vulkan, e.platform, renderer.Config{
		ApplicationName:  config.Name,
		EngineName:       config.EngineName,
		EnableValidation: config.EnableValidation,
		ValidationLayers: config.ValidationLayers,
		DeviceExtensions: config.DeviceExtensions,
	})
	if err != nil {
		return err
	}
	e.renderer = r

	if err := e.runStage("instance", e.renderer.CreateInstance, EngineStageInstanceCreated); err != nil {
		return err
	}

	start := time.Now()
	installed, err := e.renderer.InstallDebugCallback()
	if err != nil {
		return fmt.Errorf("debug callback stage failed: %w", err)
	}
	if installed {
		e.metrics.Record("debug callback", time.Since(start))
		e.currentStage = EngineStageDebugCallbackInstalled
	}

	if err := e.runStage("surface", e.renderer.CreateSurface, EngineStageSurfaceCreated); err != nil {
		return err
	}
	if err := e.runStage("device selection", e.renderer.SelectPhysicalDevice, EngineStagePhysicalDeviceSelected); err != nil {
		return err
	}
	if err := e.runStage("logical device", e.renderer.CreateLogicalDevice, EngineStageLogicalDeviceCreated); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	core.LogInfo("Bootstrap complete: %s.", e.metrics.Summary())
	return nil
}

func (e *Engine) runStage(name string, fn func() error, next Stage) error {
	start := time.Now()
	if err := fn(); err != nil {
		return fmt.Errorf("%s stage failed: %w", name, err)
	}
	e.metrics.Record(name, time.Since(start))
	e.currentStage = next
	return nil
}

// Run blocks on the windowing event queue until a quit is requested. The
// bootstrap must have completed first.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageLogicalDeviceCreated {
		return fmt.Errorf("engine cannot run from stage %s", e.currentStage)
	}

	e.clock.Start()
	e.isRunning = true
	e.currentStage = EngineStageRunning
	core.LogInfo("Entering main loop. Close the window or press Escape to quit.")

	for e.isRunning && !e.platform.ShouldClose() {
		e.platform.PumpMessages()
	}

	e.clock.Update()
	core.LogInfo("Main loop exited after %s.", e.clock.Elapsed())
	return nil
}

// Shutdown releases everything in reverse creation order. Safe to call
// after a failed bootstrap and safe to call twice.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageTornDown {
		return nil
	}
	core.LogInfo("Shutting down...")

	if e.gameInstance != nil && e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}

	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			return err
		}
		e.renderer = nil
	}

	if err := e.platform.Shutdown(); err != nil {
		return err
	}

	if err := core.EventSystemShutdown(); err != nil {
		core.LogError(err.Error())
	}

	e.currentStage = EngineStageTornDown
	core.LogInfo("Session %s closed.", e.sessionID)
	return nil
}

// RequestClose asks a running loop to exit. Safe from any goroutine, so
// signal handlers can use it.
func (e *Engine) RequestClose() {
	e.platform.RequestClose()
}

// ReportFailure logs the error together with any validation output retained
// by the backend, so driver complaints land next to the failure they caused.
func (e *Engine) ReportFailure(err error) {
	core.LogError("Fatal startup failure: %s", err)
	if e.renderer == nil {
		return
	}
	messages := e.renderer.RecentValidationMessages()
	if len(messages) == 0 {
		return
	}
	core.LogError("Last %d validation message(s):", len(messages))
	for _, message := range messages {
		core.LogError("  %s", message)
	}
}

// CurrentStage reports how far the bootstrap has come.
func (e *Engine) CurrentStage() Stage {
	return e.currentStage
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		e.platform.RequestClose()
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be
		// other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}
}

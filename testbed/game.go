package testbed

import (
	"github.com/drfreeman816/VulkanTest/engine"
	"github.com/drfreeman816/VulkanTest/engine/core"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32
}

// NewTestGame wires the demo application on top of config, which usually
// comes from config.toml.
func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				width:  config.StartWidth,
				height: config.StartHeight,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	state := g.State.(*gameState)
	core.LogInfo("%s is up at %dx%d. Nothing is drawn yet; close the window or press Escape to quit.",
		g.ApplicationConfig.Name, state.width, state.height)
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogDebug("TestGame Shutdown fn....")
	return nil
}

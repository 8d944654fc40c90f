/*
This is an example of application that will use the
engine package to bring Vulkan up and keep a window alive
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/drfreeman816/VulkanTest/engine"
	"github.com/drfreeman816/VulkanTest/engine/core"
	"github.com/drfreeman816/VulkanTest/testbed"
)

const configPath = "config.toml"

func main() {
	config, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := core.SetLogLevel(config.LogLevel); err != nil {
		core.LogFatal(err.Error())
	}

	tb, err := testbed.NewTestGame(config)
	if err != nil {
		core.LogFatal(err.Error())
	}

	eng, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	watcher, err := engine.NewConfigWatcher(configPath)
	if err != nil {
		core.LogWarn("Config watcher unavailable: %s", err)
	} else {
		defer watcher.Stop()
	}

	if err := eng.Initialize(); err != nil {
		eng.ReportFailure(err)
		eng.Shutdown()
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		core.LogInfo("Signal received, requesting close.")
		eng.RequestClose()
	}()

	if err := eng.Run(); err != nil {
		eng.ReportFailure(err)
		eng.Shutdown()
		core.LogFatal(err.Error())
	}

	if err := eng.Shutdown(); err != nil {
		core.LogFatal(err.Error())
	}
}

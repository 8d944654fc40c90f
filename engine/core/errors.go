package core

import (
	"errors"
)

var (
	ErrNoGPUFound    = errors.New("failed to detect GPUs with Vulkan support")
	ErrNoSuitableGPU = errors.New("failed to find a suitable GPU")
)

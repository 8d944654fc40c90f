package engine

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnShutdown        Shutdown
}

type Initialize func() error
type Shutdown func() error

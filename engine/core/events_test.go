package core_test

import (
	"testing"

	"github.com/drfreeman816/VulkanTest/engine/core"
)

func TestEventRegisterAndFire(t *testing.T) {
	if !core.EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	t.Cleanup(func() {
		if err := core.EventSystemShutdown(); err != nil {
			t.Errorf("event system shutdown failed: %v", err)
		}
	})

	var got []core.SystemEventCode
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, func(ctx core.EventContext) {
		got = append(got, ctx.Type)
	})
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, func(ctx core.EventContext) {
		got = append(got, ctx.Type)
	})

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})

	if len(got) != 2 {
		t.Fatalf("expected both listeners to run, got %d calls", len(got))
	}
	for _, code := range got {
		if code != core.EVENT_CODE_APPLICATION_QUIT {
			t.Errorf("listener received wrong code %d", code)
		}
	}
}

func TestEventFireUnknownCode(t *testing.T) {
	if !core.EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	t.Cleanup(func() { _ = core.EventSystemShutdown() })

	fired := false
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, func(core.EventContext) {
		fired = true
	})

	// Nobody listens on this code; the fire must be a silent no-op.
	core.EventFire(core.EventContext{Type: core.MAX_EVENT_CODE})

	if fired {
		t.Error("listener for a different code must not run")
	}
}

func TestEventKeyPayload(t *testing.T) {
	if !core.EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	t.Cleanup(func() { _ = core.EventSystemShutdown() })

	var gotKey uint16
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, func(ctx core.EventContext) {
		ke, ok := ctx.Data.(*core.KeyEvent)
		if !ok {
			t.Fatalf("expected *KeyEvent payload, got %T", ctx.Data)
		}
		gotKey = ke.KeyCode
	})

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_KEY_PRESSED,
		Data: &core.KeyEvent{KeyCode: core.KEY_ESCAPE},
	})

	if gotKey != core.KEY_ESCAPE {
		t.Errorf("expected escape key code %d, got %d", core.KEY_ESCAPE, gotKey)
	}
}

func TestEventSystemLifecycle(t *testing.T) {
	if !core.EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	if core.EventSystemInitialize() {
		t.Error("second initialize should report false")
	}
	if !core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, func(core.EventContext) {}) {
		t.Error("register on an initialized system should succeed")
	}
	if err := core.EventSystemShutdown(); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, func(core.EventContext) {}) {
		t.Error("register after shutdown should fail")
	}
	// Firing after shutdown must not panic.
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

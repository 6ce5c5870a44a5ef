// Package enginetest provides a scene testing harness: a fake clock,
// deterministic frame pumping, and error capture, without any real
// renderer or wall-clock dependence.
//
// # Quick Start
//
// Create a tester, register component types, attach content, and pump
// frames:
//
//	func TestSlideIn(t *testing.T) {
//	    tester := enginetest.NewSceneTesterWithT(t)
//	    tester.Register("panel", func(scene.Resolver) (any, error) {
//	        return &Panel{}, nil
//	    })
//
//	    node, _, err := tester.Attach(template.New("menu", "panel", nil))
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    panel := node.Behavior().(*Panel)
//	    panel.Offset.Set(0, 200*time.Millisecond, animation.EaseOut)
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	    if panel.Offset.Value() != 0 {
//	        t.Errorf("expected 0, got %v", panel.Offset.Value())
//	    }
//	}
//
// # Animation Testing
//
// Each Pump advances the fake clock and steps exactly one frame, so
// animation positions are reproducible to the nanosecond:
//
//	tester.Pump(500 * time.Millisecond)
package enginetest

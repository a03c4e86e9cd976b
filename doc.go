// Package nuclea is a retained-mode scene graph for scroll-driven pages on
// [Ebitengine].
//
// A page is a tall document of [Node]s that scrolls inside a [Viewport].
// Elements reveal themselves with short entrance animations as they scroll
// into view, and anchor links scroll smoothly to named sections.
//
// # Quick start
//
//	scene := nuclea.NewScene()
//	section := nuclea.NewContainer("services")
//	section.SetPosition(0, 1200)
//	scene.Root().AddChild(section)
//
//	scene.Reveals().FadeInOnScroll(section)
//	nuclea.Run(scene, nuclea.RunConfig{Title: "Nuclea", Width: 1280, Height: 800})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly. Headless code and tests call
// [Scene.Tick] with a fixed delta instead.
//
// # Layout and presentation
//
// Every node has a layout box (X, Y, Width, Height) relative to its parent,
// and a presentation (OffsetX, OffsetY, ScaleX, ScaleY, Rotation, Alpha)
// applied around the box center. Animations only touch the presentation, so
// an element sliding in never moves the box its scroll trigger measures.
//
// # Scroll triggers
//
// The [Evaluator] watches nodes against a line at a fraction of the viewport
// height and reports enter and exit crossings. Layout is read once per frame
// at most, and only after a new subscription, a [Evaluator.Refresh] or a
// resize; plain scrolling compares against cached values.
//
// # Animations
//
// The [Animator] runs [VisualState] transitions over one or more nodes with
// per-target stagger, reverse, loop and yoyo. [TweenGroup] is the lower-level
// primitive that tweens node fields directly.
//
// # Reveals
//
// The [Orchestrator] ties the two together: a [RevealBinding] hides its
// targets, plays when its trigger enters and reverses when it leaves.
// [Orchestrator.FadeInOnScroll], [Orchestrator.StaggerOnScroll],
// [Orchestrator.ScaleInOnScroll] and [Orchestrator.SlideInOnScroll] cover
// the common cases.
//
// # Navigation
//
// The [Navigator] scrolls to a section by name, clearing the fixed header:
//
//	scene.Navigator().ScrollToElement("contact")
//
// Fixed elements such as the header live under [Scene.Overlay], which is
// drawn in screen space on top of the document.
//
// [Ebitengine]: https://ebitengine.org
package nuclea

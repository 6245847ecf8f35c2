// Package heppi is an animated Christmas greeting for [Ebitengine]:
// fireworks that spell out a sequence of phrases, followed by an endless
// ambient display of radial bursts, over a layer of falling snow.
//
// # Quick start
//
// [Run] opens a window and drives the show on Ebitengine's loop:
//
//	show, err := heppi.NewShow(heppi.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	heppi.Run(show, heppi.RunConfig{Title: "Merry Christmas"})
//
// # Show and State
//
// A [Show] holds the configuration, the phrase [Schedule], the glyph
// rasterizer and a cache of particle sets. Everything that changes during a
// run lives in [State], which [Show.Step] takes and returns by value:
//
//	st := show.Start(960, 640)
//	for range 60 {
//		st = show.Step(st, time.Second/60)
//	}
//	show.Draw(canvas, st)
//
// Burst positions, sizes and colors are closed-form functions of the show
// clock, so any frame can be reproduced from a seed and a time. [RenderFrames]
// uses this to write frames without a window.
//
// # Modes
//
// A run starts in [ModeWaiting] for Config.StartDelay, then cycles
// [ModePhrases]: each phrase owns the sky for Config.Window while one glyph
// burst per visible character rises and explodes into the glyph's shape.
// After Config.AmbientAfter complete cycles the run switches to
// [ModeAmbient] for good and radial bursts spawn every
// AmbientConfig.Interval at points drawn from a weighted [Region] table.
//
// # Surfaces
//
// Shows draw onto any [Canvas]. [ImageCanvas] wraps an ebiten image,
// [RasterCanvas] rasterizes on the CPU into an image.RGBA, and the term
// package renders two pixels per terminal cell.
//
// [Ebitengine]: https://ebitengine.org
package heppi

package heppi

// InjectClick queues a synthetic click at the given screen coordinates. One
// queued click is consumed per Update, before real mouse input, and launches
// a click burst exactly as a real press would.
func (g *Game) InjectClick(x, y float64) {
	g.injectQueue = append(g.injectQueue, Vec2{X: x, Y: y})
}

// processInjectedClick pops one queued click and applies it to the show.
// Returns true if a click was consumed (real input is skipped that frame).
func (g *Game) processInjectedClick() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	p := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	g.state = g.show.Click(g.state, p.X, p.Y)
	return true
}

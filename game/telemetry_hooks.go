package game

// flushTelemetry closes the stats window when it is due and fans the
// result out to the callback, the log and the CSV output.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.world.Census())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		g.logger.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}

	for _, h := range g.highlights.Check(stats) {
		if g.logStats {
			h.LogHighlight()
		}
		if err := g.outputManager.WriteHighlight(h); err != nil {
			g.logger.Error("failed to write highlight", "error", err)
		}
	}
}

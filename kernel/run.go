package kernel

import (
	"context"
	"time"
)

// Run ticks the kernel at the configured timestep until the context is
// cancelled. Ticks that overrun their slot are not compensated for; the
// simulation slows down instead of dropping steps.
func (k *Kernel) Run(ctx context.Context) {
	interval := time.Duration(k.cfg.Control.DT * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infof("tick loop started (dt %.3fs)", k.cfg.Control.DT)
	for {
		select {
		case <-ctx.Done():
			log.Info("tick loop stopped")
			return
		case <-ticker.C:
			k.RunTick()
		}
	}
}

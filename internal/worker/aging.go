// Package worker contém as rotinas de fundo da API.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// Sweeper executa a varredura de cotas vencidas
type Sweeper interface {
	SweepOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// AgingWorker roda a varredura na partida e depois a cada intervalo
type AgingWorker struct {
	sweeper  Sweeper
	interval time.Duration
	log      logger.Logger

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewAgingWorker cria um AgingWorker
func NewAgingWorker(sweeper Sweeper, interval time.Duration, log logger.Logger) *AgingWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AgingWorker{
		sweeper:  sweeper,
		interval: interval,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start inicia a rotina em uma goroutine
func (w *AgingWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.sweep()
		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.sweep()
			}
		}
	}()
	w.log.Info("rotina de vencimentos iniciada", "interval", w.interval.String())
}

func (w *AgingWorker) sweep() {
	// O relógio do serviço define asOf
	changed, err := w.sweeper.SweepOverdue(w.ctx, time.Time{})
	if err != nil {
		if w.ctx.Err() == nil {
			w.log.Error("falha na varredura de vencidos", "error", err)
		}
		return
	}
	w.log.Debug("varredura de vencidos concluída", "changed", changed)
}

// Shutdown interrompe a rotina e aguarda a varredura em andamento
func (w *AgingWorker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

// Package metrics exports build-queue gauges for the dashboard and
// for alerting on dispatcher backlog.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"k8s.io/klog/v2"

	"github.com/buildhub-lab/buildhub/internal/logic"
)

var queueSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "buildhub_build_queue_size",
	Help: "Number of builds per queue state. Refreshed periodically; eventually consistent.",
}, []string{"state"})

// QueueSizer is what the exporter needs from the logic layer.
type QueueSizer interface {
	QueueSizes(ctx context.Context) (logic.QueueSizes, error)
}

type Exporter struct {
	sizer QueueSizer
	cron  *cron.Cron
}

// NewExporter refreshes the queue gauges on the given cron spec,
// e.g. "@every 30s".
func NewExporter(sizer QueueSizer, spec string) (*Exporter, error) {
	e := &Exporter{
		sizer: sizer,
		cron:  cron.New(),
	}
	if _, err := e.cron.AddFunc(spec, e.refresh); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Exporter) Start() {
	e.refresh()
	e.cron.Start()
}

func (e *Exporter) Stop() {
	e.cron.Stop()
}

func (e *Exporter) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sizes, err := e.sizer.QueueSizes(ctx)
	if err != nil {
		klog.Errorf("refresh queue size gauges: %v", err)
		return
	}
	queueSize.WithLabelValues("waiting").Set(float64(sizes.Waiting))
	queueSize.WithLabelValues("running").Set(float64(sizes.Running))
	queueSize.WithLabelValues("importing").Set(float64(sizes.Importing))
}

// Handler exposes the default prometheus registry, mounted on the gin
// router at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

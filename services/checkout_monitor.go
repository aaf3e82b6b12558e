package services

import (
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-pos/utils"
)

// CheckoutMetrics counts settlement calls made by this terminal.
type CheckoutMetrics struct {
	BillsGenerated     int64 `json:"billsGenerated"`
	FailedBills        int64 `json:"failedBills"`
	TotalTransactions  int64 `json:"totalTransactions"`
	SuccessfulPayments int64 `json:"successfulPayments"`
	FailedPayments     int64 `json:"failedPayments"`
	AvgResponseTime    int64 `json:"avgResponseTimeMs"`
}

// CheckoutMonitor keeps checkout metrics and logs them periodically.
type CheckoutMonitor struct {
	metrics     CheckoutMetrics
	calls       int64
	totalMillis int64
	interval    time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
	mutex       sync.Mutex
}

func NewCheckoutMonitor(interval time.Duration) *CheckoutMonitor {
	return &CheckoutMonitor{
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (m *CheckoutMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.report()
			case <-m.stop:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Checkout monitor started")
}

func (m *CheckoutMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *CheckoutMonitor) report() {
	mt := m.GetMetrics()
	if mt.BillsGenerated+mt.FailedBills+mt.TotalTransactions == 0 {
		return
	}
	utils.WithFields(map[string]interface{}{
		"bills":        mt.BillsGenerated,
		"failed_bills": mt.FailedBills,
		"payments":     mt.TotalTransactions,
		"succeeded":    mt.SuccessfulPayments,
		"failed":       mt.FailedPayments,
		"avg_ms":       mt.AvgResponseTime,
	}).Info("Checkout metrics")
}

func (m *CheckoutMonitor) observeLocked(d time.Duration) {
	m.calls++
	m.totalMillis += d.Milliseconds()
	m.metrics.AvgResponseTime = m.totalMillis / m.calls
}

// RecordBill counts one bill generation call.
func (m *CheckoutMonitor) RecordBill(d time.Duration, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.observeLocked(d)
	if err != nil {
		m.metrics.FailedBills++
		return
	}
	m.metrics.BillsGenerated++
}

// RecordPayment counts one payment call.
func (m *CheckoutMonitor) RecordPayment(d time.Duration, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.observeLocked(d)
	m.metrics.TotalTransactions++
	if err != nil {
		m.metrics.FailedPayments++
		return
	}
	m.metrics.SuccessfulPayments++
}

func (m *CheckoutMonitor) GetMetrics() CheckoutMetrics {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.metrics
}

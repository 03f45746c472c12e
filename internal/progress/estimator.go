package progress

import (
	"math"
	"sync"
	"time"
)

// Snapshot is a point-in-time view of how many patterns have been analyzed.
type Snapshot struct {
	Total     int           `json:"total"`
	Done      int           `json:"done"`
	Remaining int           `json:"remaining"`
	RateEMA   float64       `json:"rate_per_sec"`
	RateP50   float64       `json:"rate_p50"`
	ETA       time.Duration `json:"eta"`
	Warmup    bool          `json:"warmup"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

type Config struct {
	Alpha          float64
	WindowSize     int
	WarmupSamples  int
	WarmupDuration time.Duration
	NotifyInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Alpha:          0.2,
		WindowSize:     60,
		WarmupSamples:  50,
		WarmupDuration: time.Second,
		NotifyInterval: 200 * time.Millisecond,
	}
}

// Estimator is safe for concurrent Advance calls from worker goroutines.
type Estimator struct {
	mu         sync.Mutex
	cfg        Config
	start      time.Time
	lastUpdate time.Time
	lastNotify time.Time
	total      int
	done       int
	ema        float64
	rates      *window
}

func NewEstimator(total int, cfg Config) *Estimator {
	base := DefaultConfig()
	if cfg.Alpha > 0 {
		base.Alpha = cfg.Alpha
	}
	if cfg.WindowSize > 0 {
		base.WindowSize = cfg.WindowSize
	}
	if cfg.WarmupSamples > 0 {
		base.WarmupSamples = cfg.WarmupSamples
	}
	if cfg.WarmupDuration > 0 {
		base.WarmupDuration = cfg.WarmupDuration
	}
	if cfg.NotifyInterval > 0 {
		base.NotifyInterval = cfg.NotifyInterval
	}
	now := time.Now()
	return &Estimator{
		cfg:        base,
		start:      now,
		lastUpdate: now,
		total:      total,
		rates:      newWindow(base.WindowSize),
	}
}

// Advance records delta finished patterns. notify is true when enough time
// has passed since the last published snapshot, or when the run is complete.
func (e *Estimator) Advance(delta int) (snap Snapshot, notify bool) {
	if delta <= 0 {
		return e.Snapshot(), false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if now.Before(e.lastUpdate) {
		now = e.lastUpdate
	}
	dt := now.Sub(e.lastUpdate).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	e.done += delta
	instant := float64(delta) / dt
	if math.IsNaN(instant) || math.IsInf(instant, 0) || instant < 0 {
		instant = 0
	}
	if e.ema == 0 {
		e.ema = instant
	} else {
		e.ema = e.cfg.Alpha*instant + (1-e.cfg.Alpha)*e.ema
	}
	e.rates.Add(instant)
	e.lastUpdate = now
	snap = e.snapshotLocked(now)
	notify = now.Sub(e.lastNotify) >= e.cfg.NotifyInterval || snap.Remaining == 0
	if notify {
		e.lastNotify = now
	}
	return snap, notify
}

func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(time.Now())
}

// Complete marks every pattern as done and returns the final snapshot.
func (e *Estimator) Complete() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done < e.total {
		e.done = e.total
	}
	now := time.Now()
	e.lastNotify = now
	return e.snapshotLocked(now)
}

func (e *Estimator) snapshotLocked(now time.Time) Snapshot {
	remain := e.total - e.done
	if remain < 0 {
		remain = 0
	}
	elapsed := now.Sub(e.start)
	warm := e.done >= e.cfg.WarmupSamples && elapsed >= e.cfg.WarmupDuration
	p50 := e.rates.Median()
	if p50 <= 0 {
		p50 = e.ema
	}
	var eta time.Duration
	if warm && remain > 0 {
		eta = durationFrom(float64(remain), p50)
	}
	return Snapshot{
		Total:     e.total,
		Done:      e.done,
		Remaining: remain,
		RateEMA:   e.ema,
		RateP50:   p50,
		ETA:       eta,
		Warmup:    !warm,
		StartedAt: e.start,
		UpdatedAt: now,
		Elapsed:   elapsed,
	}
}

func durationFrom(count, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	seconds := count / rate
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	if seconds > float64(math.MaxInt64/int64(time.Second)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}

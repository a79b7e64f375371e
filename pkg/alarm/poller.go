package alarm

import (
	"sync"
	"time"
)

// DefaultTickInterval is the alarm evaluation rate
const DefaultTickInterval = time.Second

// Poller drives a Manager at a fixed interval and publishes what happened on each tick.
type Poller struct {
	mu       sync.Mutex
	manager  *Manager
	interval time.Duration
	events   []chan Event
	stopCh   chan struct{}
	running  bool
}

// NewPoller creates a poller for manager. Non-positive intervals fall back to one second.
func NewPoller(manager *Manager, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Poller{
		manager:  manager,
		interval: interval,
	}
}

// Subscribe registers a new observer channel. Slow observers miss events instead of blocking the tick.
func (p *Poller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	p.mu.Lock()
	p.events = append(p.events, ch)
	p.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	stopCh := p.stopCh
	p.mu.Unlock()

	go p.run(stopCh)
}

// Stop terminates the ticking loop and closes observers.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	close(p.stopCh)
	p.running = false
	events := p.events
	p.events = nil
	p.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (p *Poller) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			p.Tick(tickTime)
		}
	}
}

// Tick runs one evaluation pass: ring the first due alarm, then fade in every ringing alarm.
// It returns the alarm that fired on this tick, if any.
func (p *Poller) Tick(now time.Time) *Alarm {
	fired := p.manager.CheckAlarms()
	p.manager.IncreaseVolumes()

	if fired != nil {
		p.emit(Event{Type: EventFired, Alarm: fired, At: now})
	}
	p.emit(Event{Type: EventTick, At: now})

	return fired
}

func (p *Poller) emit(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ch := range p.events {
		select {
		case ch <- event:
		default:
		}
	}
}

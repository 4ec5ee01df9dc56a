package observ

import (
	"fmt"
	"sync"
	"time"
)

// Phase records one timed step of the repair loop (a compile or a processing round).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the phases of one repair. It is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 16)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// TotalReport sums every phase with the same name.
type TotalReport struct {
	Name       string  `json:"name" msgpack:"name"`
	Count      int     `json:"count" msgpack:"count"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
	Totals  []TotalReport `json:"totals" msgpack:"totals"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	byName := make(map[string]int)
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		ms := durationToMillis(phase.Dur)
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: ms,
			Note:       phase.Note,
		}
		j, ok := byName[phase.Name]
		if !ok {
			j = len(report.Totals)
			byName[phase.Name] = j
			report.Totals = append(report.Totals, TotalReport{Name: phase.Name})
		}
		report.Totals[j].Count++
		report.Totals[j].DurationMS += ms
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary returns a human-readable string with per-phase totals.
func (t *Timer) Summary() string {
	report := t.Report()
	out := "timings:\n"
	for _, p := range report.Totals {
		out += fmt.Sprintf("  %-12s %3dx %9.2f ms\n", p.Name, p.Count, p.DurationMS)
	}
	out += fmt.Sprintf("  %-12s      %9.2f ms\n", "total", report.TotalMS)
	return out
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

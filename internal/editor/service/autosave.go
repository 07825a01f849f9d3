package service

import (
	"sync"
	"time"
)

// ============================================================
// Autosave Scheduler
// ============================================================

// Autosave откладывает сохранение проекта до паузы в редактировании.
// Повторный Schedule перезапускает таймер: более поздняя запись всегда
// побеждает более раннюю (last-write-wins, без merge). Интерактивные
// операции не блокируются — flush уходит в горутину таймера.
type Autosave struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer // projectID -> отложенный flush
	flush  func(projectID string)
}

func NewAutosave(delay time.Duration, flush func(projectID string)) *Autosave {
	return &Autosave{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		flush:  flush,
	}
}

// Schedule ставит (или переносит) отложенное сохранение проекта.
func (a *Autosave) Schedule(projectID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.timers[projectID]; ok {
		t.Stop()
	}
	a.timers[projectID] = time.AfterFunc(a.delay, func() {
		a.mu.Lock()
		delete(a.timers, projectID)
		a.mu.Unlock()
		a.flush(projectID)
	})
}

// Cancel снимает отложенное сохранение (проект удален).
func (a *Autosave) Cancel(projectID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.timers[projectID]; ok {
		t.Stop()
		delete(a.timers, projectID)
	}
}

// FlushNow сохраняет немедленно, снимая таймер.
func (a *Autosave) FlushNow(projectID string) {
	a.Cancel(projectID)
	a.flush(projectID)
}

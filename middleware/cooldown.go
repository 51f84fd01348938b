package middleware

import (
	"sync"
	"time"
)

// maxCooldownEntries ограничивает карту кулдаунов; при переполнении уборка
// происходит немедленно, не дожидаясь планировщика.
const maxCooldownEntries = 4096

// CooldownGuard хранит время последнего действия каждого принципала.
// Карта ограничена по размеру и периодически чистится.
type CooldownGuard struct {
	mu     sync.Mutex
	last   map[string]time.Time
	window time.Duration
	now    func() time.Time // подменяется в тестах
}

func NewCooldownGuard(window time.Duration) *CooldownGuard {
	return &CooldownGuard{
		last:   make(map[string]time.Time),
		window: window,
		now:    time.Now,
	}
}

// Allow отмечает действие принципала и отвечает, не слишком ли оно частое.
// Нулевое окно выключает кулдауны совсем.
func (g *CooldownGuard) Allow(principalID string) bool {
	if g.window <= 0 || principalID == "" {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if last, ok := g.last[principalID]; ok && now.Sub(last) < g.window {
		return false
	}
	if len(g.last) >= maxCooldownEntries {
		g.evictStaleLocked(now)
	}
	g.last[principalID] = now
	return true
}

// Sweep выбрасывает записи старше окна. Дёргается планировщиком.
func (g *CooldownGuard) Sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.evictStaleLocked(g.now())
}

func (g *CooldownGuard) evictStaleLocked(now time.Time) {
	for principal, last := range g.last {
		if now.Sub(last) >= g.window {
			delete(g.last, principal)
		}
	}
}

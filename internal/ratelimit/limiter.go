package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count       int
	windowStart time.Time
}

// Limiter - счетчик с фиксированным окном (N действий за окно) на пользователя.
// Окно сбрасывается целиком: всплеск из limit действий в конце одного окна и
// еще limit в начале следующего допустим - это осознанное поведение прототипа,
// а не ошибка. Состояние живет в памяти процесса: при нескольких инстансах
// лимит действует на инстанс, а не глобально.
type Limiter struct {
	mu     sync.Mutex
	users  map[string]*entry
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		users:  make(map[string]*entry),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow регистрирует действие пользователя и сообщает, разрешено ли оно
func (l *Limiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.users[userID]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.users[userID] = &entry{count: 1, windowStart: now}
		return true
	}

	if e.count < l.limit {
		e.count++
		return true
	}

	return false
}

// Remaining возвращает остаток действий в текущем окне пользователя
func (l *Limiter) Remaining(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.users[userID]
	if !ok || l.now().Sub(e.windowStart) >= l.window {
		return l.limit
	}

	remaining := l.limit - e.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Limit возвращает настроенный лимит окна
func (l *Limiter) Limit() int {
	return l.limit
}

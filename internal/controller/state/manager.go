package state

import (
	"sync"
	"time"
)

// Manager хранит диалоги пользователей в памяти.
// Диалог, не тронутый дольше ttl, считается завершённым.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	ttl    time.Duration
	now    func() time.Time
}

// NewManager создаёт менеджер состояний; ttl <= 0 означает DefaultTTL
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		states: make(map[int64]*UserData),
		ttl:    ttl,
		now:    time.Now,
	}
}

// lookup возвращает живую запись; вызывать под блокировкой
func (sm *Manager) lookup(telegramID int64) (*UserData, bool) {
	userData, exists := sm.states[telegramID]
	if !exists || sm.now().Sub(userData.UpdatedAt) > sm.ttl {
		return nil, false
	}
	return userData, true
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, ok := sm.lookup(telegramID); ok {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}

	userData, ok := sm.lookup(telegramID)
	if !ok {
		userData = &UserData{Data: make(map[string]interface{})}
		sm.states[telegramID] = userData
	}
	userData.State = state
	userData.UpdatedAt = sm.now()
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, ok := sm.lookup(telegramID); ok {
		value, found := userData.Data[key]
		return value, found
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, ok := sm.lookup(telegramID)
	if !ok {
		userData = &UserData{State: StateNone, Data: make(map[string]interface{})}
		sm.states[telegramID] = userData
	}
	userData.Data[key] = value
	userData.UpdatedAt = sm.now()
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// Sweep удаляет просроченные диалоги и возвращает их количество
func (sm *Manager) Sweep() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	for id := range sm.states {
		if _, ok := sm.lookup(id); !ok {
			delete(sm.states, id)
			removed++
		}
	}
	return removed
}

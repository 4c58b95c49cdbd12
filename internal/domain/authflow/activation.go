// activation.go — конечный автомат активации учётной записи.
// Фаза 1: валидация токена из ссылки. Фаза 2 (только из valid):
// установка пароля. Невалидный токен — терминальное состояние без retry.
package authflow

import (
	"fmt"
	"sync"
	"time"
)

// ActivationState — состояние потока активации.
type ActivationState string

const (
	// ActivationValidating — токен проверяется у backend
	ActivationValidating ActivationState = "validating"
	// ActivationValid — токен принят, доступна установка пароля
	ActivationValid ActivationState = "valid"
	// ActivationInvalid — токен отклонён (терминальное, без retry)
	ActivationInvalid ActivationState = "invalid"
	// ActivationSetting — пароль отправлен, ожидание ответа
	ActivationSetting ActivationState = "setting"
	// ActivationDone — пароль установлен (терминальное)
	ActivationDone ActivationState = "done"
	// ActivationFailed — backend отклонил пароль, возможен retry
	ActivationFailed ActivationState = "failed"
)

// activationTransitions — матрица допустимых переходов активации.
var activationTransitions = map[ActivationState]map[ActivationState]bool{
	ActivationValidating: {ActivationValid: true, ActivationInvalid: true},
	ActivationValid:      {ActivationSetting: true},
	ActivationInvalid:    {}, // терминальное — ссылка недействительна
	ActivationSetting:    {ActivationDone: true, ActivationFailed: true},
	ActivationFailed:     {ActivationSetting: true}, // retry
	ActivationDone:       {},                        // терминальное
}

// ActivationTransition — запись о переходе состояния.
type ActivationTransition struct {
	From      ActivationState `json:"from"`
	To        ActivationState `json:"to"`
	Timestamp time.Time       `json:"timestamp"`
}

// ActivationFlow — конечный автомат одной активации.
type ActivationFlow struct {
	mu      sync.RWMutex
	current ActivationState
	// message — сообщение об ошибке (для invalid/failed)
	message string
	history []ActivationTransition
}

// NewActivationFlow создаёт поток активации в состоянии validating.
func NewActivationFlow() *ActivationFlow {
	return &ActivationFlow{
		current: ActivationValidating,
		history: make([]ActivationTransition, 0),
	}
}

// State возвращает текущее состояние.
func (f *ActivationFlow) State() ActivationState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Message возвращает сообщение об ошибке (пустое вне invalid/failed).
func (f *ActivationFlow) Message() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.message
}

// MarkValid — токен принят backend.
func (f *ActivationFlow) MarkValid() error {
	return f.transition(ActivationValid, "")
}

// MarkInvalid — токен отклонён; состояние терминальное.
func (f *ActivationFlow) MarkInvalid(message string) error {
	return f.transition(ActivationInvalid, message)
}

// SubmitPassword переводит поток в setting (из valid или failed при retry).
func (f *ActivationFlow) SubmitPassword() error {
	return f.transition(ActivationSetting, "")
}

// Complete — пароль установлен.
func (f *ActivationFlow) Complete() error {
	return f.transition(ActivationDone, "")
}

// FailPassword — backend отклонил установку пароля, retry разрешён.
func (f *ActivationFlow) FailPassword(message string) error {
	return f.transition(ActivationFailed, message)
}

// transition выполняет переход с проверкой по матрице.
func (f *ActivationFlow) transition(to ActivationState, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !activationTransitions[f.current][to] {
		return fmt.Errorf("недопустимый переход активации: %s → %s", f.current, to)
	}

	f.history = append(f.history, ActivationTransition{
		From:      f.current,
		To:        to,
		Timestamp: time.Now().UTC(),
	})
	f.current = to
	f.message = message
	return nil
}

// Пакет authflow — конечные автоматы аутентификационных потоков портала.
//
// Два автомата:
//   - LoginFlow: idle → submitting → {success, error}; error → submitting (retry)
//   - ActivationFlow: двухфазный — validating → {valid, invalid};
//     из valid: setting → {done, failed}; failed → setting (retry);
//     invalid — терминальное состояние без retry
//
// Потокобезопасны через sync.RWMutex.
package authflow

import (
	"fmt"
	"sync"
	"time"
)

// LoginState — состояние потока логина.
type LoginState string

const (
	// LoginIdle — форма показана, запрос не отправлен
	LoginIdle LoginState = "idle"
	// LoginSubmitting — учётные данные отправлены, ожидание ответа
	LoginSubmitting LoginState = "submitting"
	// LoginSuccess — сессия создана (терминальное)
	LoginSuccess LoginState = "success"
	// LoginError — backend отклонил запрос, возможен retry
	LoginError LoginState = "error"
)

// loginTransitions — матрица допустимых переходов потока логина.
var loginTransitions = map[LoginState]map[LoginState]bool{
	LoginIdle:       {LoginSubmitting: true},
	LoginSubmitting: {LoginSuccess: true, LoginError: true},
	LoginError:      {LoginSubmitting: true}, // retry
	LoginSuccess:    {},                      // терминальное
}

// LoginTransition — запись о переходе состояния.
type LoginTransition struct {
	From      LoginState `json:"from"`
	To        LoginState `json:"to"`
	Timestamp time.Time  `json:"timestamp"`
}

// LoginFlow — конечный автомат одного логина.
// Создаётся per-попытка, не переиспользуется между пользователями.
type LoginFlow struct {
	mu      sync.RWMutex
	current LoginState
	// message — человекочитаемое сообщение об ошибке (для LoginError)
	message string
	history []LoginTransition
}

// NewLoginFlow создаёт поток логина в состоянии idle.
func NewLoginFlow() *LoginFlow {
	return &LoginFlow{
		current: LoginIdle,
		history: make([]LoginTransition, 0),
	}
}

// State возвращает текущее состояние.
func (f *LoginFlow) State() LoginState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Message возвращает сообщение об ошибке (пустое вне состояния error).
func (f *LoginFlow) Message() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.message
}

// History возвращает копию истории переходов.
func (f *LoginFlow) History() []LoginTransition {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]LoginTransition, len(f.history))
	copy(out, f.history)
	return out
}

// Submit переводит поток в submitting (из idle или error при retry).
func (f *LoginFlow) Submit() error {
	return f.transition(LoginSubmitting, "")
}

// Succeed переводит поток в success.
func (f *LoginFlow) Succeed() error {
	return f.transition(LoginSuccess, "")
}

// Fail переводит поток в error с сообщением для пользователя.
func (f *LoginFlow) Fail(message string) error {
	return f.transition(LoginError, message)
}

// transition выполняет переход с проверкой по матрице.
func (f *LoginFlow) transition(to LoginState, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !loginTransitions[f.current][to] {
		return fmt.Errorf("недопустимый переход логина: %s → %s", f.current, to)
	}

	f.history = append(f.history, LoginTransition{
		From:      f.current,
		To:        to,
		Timestamp: time.Now().UTC(),
	})
	f.current = to
	f.message = message
	return nil
}

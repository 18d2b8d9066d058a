// Package entitlement вычисляет доступ пользователя: премиум, пробный период,
// истечение пробного периода и количество оставшихся дней.
//
// Пакет не выполняет ввода-вывода. Запись флага trial_expired обратно в хранилище
// выполняет вызывающий код по признаку Result.ShouldPersistExpiry.
package entitlement

import (
	"math"
	"time"
)

const (
	// TrialDays длина пробного периода в днях.
	TrialDays = 7
	// PremiumDaysLeft значение DaysLeft для премиум-аккаунта.
	PremiumDaysLeft = 999

	day = 24 * time.Hour
)

// State состояние пробного периода.
type State string

const (
	StateNotStarted State = "not_started"
	StateActive     State = "active"
	StateExpired    State = "expired"
	StatePremium    State = "premium"
)

// Profile поля профиля, участвующие в расчёте доступа.
// Нулевое время в TrialStart равнозначно nil.
type Profile struct {
	IsPremium    bool
	TrialStart   *time.Time
	TrialEnd     *time.Time
	TrialExpired bool
}

// Result итог вычисления доступа.
type Result struct {
	IsPremium           bool  `json:"is_premium"`
	TrialExpired        bool  `json:"trial_expired"`
	DaysLeft            int   `json:"days_left"`
	ShouldPersistExpiry bool  `json:"-"`
	State               State `json:"state"`
}

// Evaluate вычисляет доступ для профиля p на момент now.
func Evaluate(p Profile, now time.Time) Result {
	if p.IsPremium {
		return Result{IsPremium: true, DaysLeft: PremiumDaysLeft, State: StatePremium}
	}

	if p.TrialStart == nil || p.TrialStart.IsZero() {
		return Result{State: StateNotStarted}
	}

	elapsed := ElapsedDays(*p.TrialStart, now)
	expired := elapsed >= TrialDays

	res := Result{
		TrialExpired: expired,
		DaysLeft:     max(0, TrialDays-elapsed),
		State:        StateActive,
	}
	if expired {
		res.State = StateExpired
		res.ShouldPersistExpiry = !p.TrialExpired
	}
	return res
}

// ElapsedDays возвращает число полных суток от start до now.
// Если now раньше start, возвращается 0.
func ElapsedDays(start, now time.Time) int {
	d := now.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(math.Floor(float64(d) / float64(day)))
}

// Window возвращает границы пробного периода, начинающегося в start.
func Window(start time.Time) (time.Time, time.Time) {
	return start, start.Add(TrialDays * day)
}

// Allowed сообщает, есть ли у пользователя доступ к платным действиям.
// Не начатый пробный период доступ не закрывает.
func (r Result) Allowed() bool {
	return r.IsPremium || !r.TrialExpired
}

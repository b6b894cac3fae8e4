package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// SlotParams параметры генерации слотов на один день
type SlotParams struct {
	Date                   time.Time      // локальная дата (полночь UTC)
	Location               *time.Location // таймзона салона
	Day                    domain.EffectiveDay
	ServiceDurationMinutes int
	BufferMinutes          int // пауза после записи до начала следующей
	StepMinutes            int // шаг сетки слотов
	Appointments           []*domain.Appointment
}

// GenerateSlots генерирует упорядоченный список слотов-кандидатов на день
//
// Слоты идут с фиксированным шагом StepMinutes от начала рабочего интервала
// до последнего старта, при котором конец услуги не выходит за закрытие.
// Слот помечается недоступным с причиной APPOINTMENT_CONFLICT, если интервал
// [start, end+buffer) пересекается с активной записью мастера.
//
// Закрытый день дает пустой список без причин по слотам. Услуга длиннее
// всего рабочего интервала дает ноль слотов - это не ошибка.
//
// Каждый слот несет и локальные (таймзона салона), и UTC границы, чтобы
// вызывающие стороны в других таймзонах отображали время без пересчета
func GenerateSlots(p SlotParams) ([]domain.Slot, error) {
	if !p.Day.Working {
		return []domain.Slot{}, nil
	}

	if p.ServiceDurationMinutes <= 0 {
		return nil, fmt.Errorf("scheduling: service duration must be positive, got %d", p.ServiceDurationMinutes)
	}
	if p.BufferMinutes < 0 {
		return nil, fmt.Errorf("scheduling: buffer must not be negative, got %d", p.BufferMinutes)
	}

	step := p.StepMinutes
	if step <= 0 {
		step = domain.DefaultSlotStepMinutes
	}

	openMin, err := p.Day.Start.Minutes()
	if err != nil {
		return nil, err
	}

	closeMin, err := p.Day.End.Minutes()
	if err != nil {
		return nil, err
	}

	if openMin >= closeMin {
		return nil, ErrInvalidRange
	}

	slots := make([]domain.Slot, 0, (closeMin-openMin)/step+1)

	// Идем по сетке: слот, чей конец выходит за закрытие, не генерируется
	for startMin := openMin; startMin+p.ServiceDurationMinutes <= closeMin; startMin += step {
		endMin := startMin + p.ServiceDurationMinutes

		startLocal, err := types.NewTimeStringFromMinutes(startMin)
		if err != nil {
			return nil, err
		}

		endLocal, err := types.NewTimeStringFromMinutes(endMin)
		if err != nil {
			return nil, err
		}

		// UTC границы считаются через резолвинг wall-clock времени:
		// на датах DST переходов фиксированный офсет дал бы неверный момент
		startUTC, err := ToUTCInstant(p.Date, startLocal, p.Location)
		if err != nil {
			return nil, err
		}

		endUTC, err := ToUTCInstant(p.Date, endLocal, p.Location)
		if err != nil {
			return nil, err
		}

		slot := domain.Slot{
			StartLocal: startLocal,
			EndLocal:   endLocal,
			StartUTC:   startUTC,
			EndUTC:     endUTC,
			Available:  true,
		}

		// Буфер учитывается только при проверке конфликтов: слот должен
		// оставлять паузу перед следующей записью
		bufferedEnd := endUTC.Add(time.Duration(p.BufferMinutes) * time.Minute)
		if HasConflict(startUTC, bufferedEnd, p.Appointments) {
			slot.Available = false
			slot.Reason = domain.ReasonAppointmentConflict
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

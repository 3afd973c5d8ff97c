package storage

import "errors"

var (
	ErrNotFound = errors.New("запись не найдена")
	// Возвращается при оптимистичном обновлении, если график уже изменён
	// параллельным расчётом
	ErrScheduleModified = errors.New("график изменён конкурентно")
)

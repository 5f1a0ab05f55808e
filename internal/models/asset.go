// Package models содержит доменные структуры зарплатного сервиса,
// а также вспомогательные типы для приема данных из JSON-запросов.
package models

import (
	"time"

	"github.com/google/uuid"
)

// JobGroup представляет группу профессий (справочные данные).
type JobGroup struct {
	ID   int64  // Уникальный идентификатор группы
	Name string // Название группы, уникальное
}

// Job представляет профессию внутри группы (справочные данные).
type Job struct {
	ID      int64  // Уникальный идентификатор профессии
	GroupID int64  // Идентификатор группы
	Name    string // Название, уникальное внутри группы
}

// SalaryStat представляет заранее посчитанный агрегат зарплат
// для пары (профессия, опыт). Данные только для чтения,
// загружаются миграциями и батч-скриптами.
type SalaryStat struct {
	ID         int64
	JobID      *int64 // Профессия, может отсутствовать
	Experience *int   // Опыт в годах, может отсутствовать
	Avg        int64  // Средняя годовая зарплата в вонах
}

// UserSalary представляет одну отправку зарплаты.
// ID генерируется клиентом и служит ключом идемпотентности:
// повторная отправка с тем же UUID обновляет запись, а не создает новую.
type UserSalary struct {
	ID         uuid.UUID
	UserID     *int64 // Заполняется только после привязки к пользователю
	JobID      int64
	Experience int
	Salary     int64 // Годовая зарплата в вонах
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserProfile представляет профиль потребления, привязанный к отправке зарплаты.
// На одну запись UserSalary приходится не более одного профиля.
type UserProfile struct {
	ID            int64
	SalaryID      uuid.UUID
	Age           *int
	SaveRate      *int // Доля сбережений, 0-100
	HasCar        *bool
	IsMonthlyRent *bool
}

// DummySalary используется для приема данных из JSON-запроса на отправку зарплаты.
// Зарплата приходит в тысячах вон и нормализуется сервисом перед сохранением.
type DummySalary struct {
	UniqueID   string `json:"uniqueId" validate:"required,uuid"`       // Клиентский UUID-коррелятор
	JobID      int64  `json:"jobId" validate:"required,gt=0"`          // Профессия
	Experience int    `json:"experience" validate:"gte=0,lte=10"`      // Опыт в годах
	Salary     int64  `json:"salary" validate:"required,gt=0,lte=1000000000"` // Годовая зарплата
}

// DummyProfile используется для приема данных из JSON-запроса на отправку профиля.
type DummyProfile struct {
	UniqueID      string `json:"uniqueId" validate:"required,uuid"`
	Age           int    `json:"age" validate:"required,gte=18,lte=50"` // Возраст
	SaveRate      int    `json:"saveRate" validate:"gte=0,lte=100"`     // Доля сбережений
	HasCar        bool   `json:"hasCar"`                                // Есть ли машина
	IsMonthlyRent bool   `json:"isMonthlyRent"`                         // Живет ли в аренде
}

// SalaryCompareResult результат сравнения зарплаты с агрегатом по профессии.
type SalaryCompareResult struct {
	UserExperience int   `json:"userExperience"`
	UserSalary     int64 `json:"userSalary"`
	JobSalary      int64 `json:"jobSalary"`
}

// ProfileResult результат расчета ранга и перцентиля по профилю.
type ProfileResult struct {
	Car        string `json:"car"`
	Percentage int    `json:"percentage"`
}

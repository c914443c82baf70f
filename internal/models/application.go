// Package models содержит доменные структуры заявки на подписку:
// каноническое представление Application, плоскую строку таблицы Record
// и сообщения, которые передаются через очередь уведомлений.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/catalog"
)

// Status статус рассмотрения заявки. Меняет его только оператор.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Application каноническое представление заявки, используемое в бизнес-логике и API.
type Application struct {
	ID                int64                  `json:"id"`
	FullName          string                 `json:"full_name"`
	Email             string                 `json:"email"`
	Phone             string                 `json:"phone"`
	Telegram          string                 `json:"telegram"`
	Country           catalog.Country        `json:"country"`
	Plan              catalog.Tier           `json:"plan"`
	Duration          catalog.Duration       `json:"duration"`
	Format            catalog.SoftwareFormat `json:"format"`
	IsStudent         bool                   `json:"is_student"`
	StudentClasses    []string               `json:"student_classes"`
	OtherStudentClass string                 `json:"other_student_class,omitempty"`
	PaymentSlipURL    string                 `json:"payment_slip_url"`
	Amount            decimal.Decimal        `json:"amount"`
	Currency          catalog.Currency       `json:"currency"`
	PaymentMethod     string                 `json:"payment_method"`
	Status            Status                 `json:"status"`
	EndDate           *time.Time             `json:"end_date,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}

// AmountDisplay сумма оплаты в локальной валюте для показа пользователю.
func (a *Application) AmountDisplay() string {
	return catalog.FormatAmount(a.Amount, a.Currency)
}

// IsApproved доступ к каналам открыт только одобренной заявке.
func (a *Application) IsApproved() bool {
	return a.Status == StatusApproved
}

// Record строка таблицы subscriptions.
// AmountMMK/AmountTHB — отформатированная сумма, заполнена ровно одна из них.
type Record struct {
	ID               int64
	FullName         string
	Email            string
	PhoneNumber      string
	TelegramUsername string
	PlanTier         string
	PlanDuration     string
	AmountMMK        *string
	AmountTHB        *string
	Amount           decimal.Decimal
	Currency         string
	IsRtaStudent     bool
	RtaClassName     string
	SoftwareFormat   string
	PaymentMethod    string
	PaymentSlipURL   string
	Status           string
	EndDate          *time.Time
	CreatedAt        time.Time
}

// SubmittedEvent публикуется после сохранения новой заявки, для письма оператору.
type SubmittedEvent struct {
	ApplicationID  int64  `json:"application_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Telegram       string `json:"telegram"`
	Plan           string `json:"plan"`
	Duration       string `json:"duration"`
	Amount         string `json:"amount"`
	PaymentMethod  string `json:"payment_method"`
	PaymentSlipURL string `json:"payment_slip_url"`
}

// ExpiringInfo данные для письма о скором окончании доступа.
type ExpiringInfo struct {
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Plan     string    `json:"plan"`
	EndDate  time.Time `json:"end_date"`
}

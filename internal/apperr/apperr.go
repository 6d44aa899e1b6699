// Package apperr: çekirdeğin hata taksonomisi. Handler'lar bu hataları
// döner, HTTP status eşlemesi main.go'daki merkezi ErrorHandler'da yapılır.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindInvalidTransition
	KindInsufficientStock
	KindRateLimited
	KindConflict
	KindPersistence
)

type Error struct {
	Kind    Kind
	Message string // kullanıcıya gösterilen mesaj
	Err     error  // iç detay, loglanır ama dışarı sızmaz
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error          { return &Error{Kind: KindNotFound, Message: msg} }
func Validation(msg string) *Error        { return &Error{Kind: KindValidation, Message: msg} }
func InvalidTransition(msg string) *Error { return &Error{Kind: KindInvalidTransition, Message: msg} }
func InsufficientStock(msg string) *Error { return &Error{Kind: KindInsufficientStock, Message: msg} }
func RateLimited(msg string) *Error       { return &Error{Kind: KindRateLimited, Message: msg} }
func Conflict(msg string) *Error          { return &Error{Kind: KindConflict, Message: msg} }

func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}

// HTTPStatus: taksonomi → HTTP status kodu
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation:
		return fiber.StatusBadRequest
	case KindInvalidTransition, KindInsufficientStock, KindConflict:
		return fiber.StatusConflict
	case KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// As: hata zincirinden *Error çıkarır
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

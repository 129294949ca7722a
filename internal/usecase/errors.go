package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 事前条件違反（空カート・不正な数量・壊れたIDなど）。変更前に検出して400で返す。
func NewValidationError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// 参照先（商品・注文・明細）が存在しない。
func NewNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// ストアが書き込みを拒否した。トランザクションは全てロールバック済み。
func NewIntegrityError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}

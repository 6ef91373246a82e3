package services

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("painting not found")

// PersistenceError хранилище не выполнило операцию; черновик остаётся у
// вызывающего и запрос можно отправить повторно.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: persistence failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

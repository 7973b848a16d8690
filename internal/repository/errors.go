package repository

import "errors"

// ErrNotFound целевая строка для UPDATE/DELETE не найдена.
// Чтения возвращают nil, nil вместо этой ошибки.
var ErrNotFound = errors.New("record not found")

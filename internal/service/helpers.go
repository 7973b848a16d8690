package service

import (
	"errors"

	"github.com/Freeeeeet/salon_bot/internal/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

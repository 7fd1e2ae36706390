package booking

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("booking not found")
	ErrInvalidStatus = errors.New("invalid booking status")
	ErrInvalidDate   = errors.New("invalid date")
)

// notFound maps a store miss to ErrNotFound, keeping other errors intact.
func notFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

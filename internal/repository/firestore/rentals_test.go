package firestore

import (
	"errors"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
)

func TestRentalReplay(t *testing.T) {
	t.Run("missing document proceeds to the conflict check", func(t *testing.T) {
		// A not-found read carries a non-nil snapshot with Exists false.
		committed, err := rentalReplay(&firestore.DocumentSnapshot{}, errors.New("rpc error: code = NotFound"))
		assert.NoError(t, err)
		assert.False(t, committed)
	})

	t.Run("transient read failure aborts the transaction", func(t *testing.T) {
		readErr := errors.New("rpc error: code = Unavailable")
		committed, err := rentalReplay(nil, readErr)
		assert.ErrorIs(t, err, readErr)
		assert.False(t, committed)
	})

	t.Run("clean read of an absent document proceeds", func(t *testing.T) {
		committed, err := rentalReplay(&firestore.DocumentSnapshot{}, nil)
		assert.NoError(t, err)
		assert.False(t, committed)
	})
}

package unitofwork

import (
	"testing"

	"zeorag-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
)

func TestNewRepositoryFactoryRequiresConnection(t *testing.T) {
	factory, err := NewRepositoryFactory(nil)
	assert.Nil(t, factory)
	assert.ErrorIs(t, err, contract.ErrNoWriteConnection)
}

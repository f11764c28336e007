package apperr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityNotFoundCarriesTypeAndID(t *testing.T) {
	err := fmt.Errorf("get: %w", NewEntityNotFound("task", 999))

	nf, ok := IsEntityNotFound(err)
	require.True(t, ok)
	assert.Equal(t, "task", nf.Entity)
	assert.Equal(t, "999", nf.ID)
	assert.True(t, errors.Is(err, ErrEntityNotFound))
	assert.False(t, errors.Is(err, ErrStorage))
	assert.Equal(t, "task 999 not found", nf.Error())
}

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", cause, KindUnknown},
		{"connection", &ConnectionError{Host: "localhost", Database: "app_db", User: "app_user", Err: cause}, KindConnection},
		{"io", &IOError{Path: "sql/01.sql", Err: fs.ErrNotExist}, KindIO},
		{"not found", NewEntityNotFound("task", 1), KindNotFound},
		{"storage", NewStorageError("create", cause), KindStorage},
		{"wrapped storage", fmt.Errorf("dao: %w", NewStorageError("list", cause)), KindStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestWrappedCausesStayReachable(t *testing.T) {
	ioErr := &IOError{Path: "sql/missing.sql", Err: fs.ErrNotExist}
	assert.True(t, errors.Is(ioErr, fs.ErrNotExist))
	assert.True(t, errors.Is(ioErr, ErrIO))

	cause := errors.New("password authentication failed")
	connErr := &ConnectionError{Host: "localhost", Database: "postgres", User: "postgres", Err: cause}
	assert.ErrorIs(t, connErr, cause)
	assert.ErrorIs(t, connErr, ErrConnection)
	assert.Contains(t, connErr.Error(), "postgres@localhost/postgres")
}

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrUnparseableSosa, "use digits only, e.g. 38")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "use digits only, e.g. 38", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsSDNConversionError(nil))
	assert.False(t, IsMalformedValueError(nil))
	assert.False(t, IsNotFoundError(nil))
}

func TestDateKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"incomplete", Wrap(ErrIncompleteDate, "gregorian")},
		{"invalid", Wrapf(ErrInvalidDate, "month %d", 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsSDNConversionError(tt.err))
			assert.False(t, IsValidationError(tt.err))
			assert.False(t, IsMalformedValueError(tt.err))
		})
	}

	assert.True(t, Is(Wrap(ErrIncompleteDate, "x"), ErrIncompleteDate))
	assert.False(t, Is(Wrap(ErrIncompleteDate, "x"), ErrInvalidDate))
}

func TestMalformedValueKinds(t *testing.T) {
	for _, sentinel := range []error{ErrNegativeSosa, ErrUnparseableSosa, ErrZeroDivisor, ErrNoChildSosa, ErrSosaOverflow} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			err := Wrapf(sentinel, "value %q", "x")
			assert.True(t, IsMalformedValueError(err))
			assert.True(t, Is(err, sentinel))
			assert.False(t, IsSDNConversionError(err))
		})
	}
}

func TestSentinelsStayDistinct(t *testing.T) {
	groups := [][]error{
		{ErrSDNConversion, ErrIncompleteDate, ErrInvalidDate},
		{ErrMalformedValue, ErrNegativeSosa, ErrUnparseableSosa, ErrZeroDivisor, ErrNoChildSosa, ErrSosaOverflow},
	}
	for _, group := range groups {
		for i, a := range group {
			for j, b := range group {
				if i == j {
					continue
				}
				assert.False(t, Is(Wrap(a, "x"), b), "%q must not match %q", a, b)
			}
		}
	}

	assert.False(t, Is(ErrSDNConversion, ErrIncompleteDate))
	assert.False(t, Is(ErrMalformedValue, ErrSosaOverflow))
	assert.True(t, IsSDNConversionError(Wrap(ErrSDNConversion, "calendar")))
	assert.True(t, IsMalformedValueError(Wrap(ErrMalformedValue, "key")))
}

func TestNotFound(t *testing.T) {
	err := NewNotFoundError("person %d", 7)
	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "person 7")
}

func TestInvalidRequest(t *testing.T) {
	err := NewInvalidRequestError("unknown calendar %q", "mayan")
	assert.True(t, Is(err, ErrInvalidRequest))
	assert.Contains(t, err.Error(), `unknown calendar "mayan"`)
}

func ExampleWrap() {
	err := Wrap(ErrIncompleteDate, "cannot convert 1850-03")
	fmt.Println(err)
	// Output: cannot convert 1850-03: date is incomplete
}

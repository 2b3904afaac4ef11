package errors

import (
	"github.com/stretchr/testify/require"
	"log/slog"
	"slices"
	"testing"
)

func TestAnnotatedError(t *testing.T) {
	err := New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	// Assert that wrapping sentinel errors work as expected.
	sentinel := NewSentinel("sentinel")
	require.NotErrorIs(t, err, NewSentinel("sentinel"))
	wrapped := Wrap(sentinel, "load content", slog.String("source", "content.json"))
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, "load content: sentinel", wrapped.Error())

	// Ensure log values are coming through.
	var annotated AnnotatedError
	require.True(t, As(err, &annotated))
	group := annotated.LogValue().Group()
	require.Contains(t, group, slog.String("id", "123"))

	// Assert there's a valid source
	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.GreaterOrEqual(t, sourceIdx, 0)
	require.Contains(t, group[sourceIdx].Value.String(), "annotatederror_test.go")
}

func TestWrap_collectsAttributesAlongTheChain(t *testing.T) {
	inner := New("missing region", slog.String("hook", "data-stars"))
	outer := Wrap(inner, "resolve hooks", slog.String("page", "index"))

	var annotated AnnotatedError
	require.True(t, As(outer, &annotated))
	group := annotated.LogValue().Group()
	require.Contains(t, group, slog.String("hook", "data-stars"))
	require.Contains(t, group, slog.String("page", "index"))
}

func TestWrap_nil(t *testing.T) {
	require.NoError(t, Wrap(nil, "nothing to wrap"))
}

func TestSlogError(t *testing.T) {
	plain := NewSentinel("plain")
	require.Equal(t, slog.String("error", "plain"), SlogError(plain))

	attr := SlogError(New("annotated"))
	require.Equal(t, "error", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Resolve().Kind())
}

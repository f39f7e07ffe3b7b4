package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProblemFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusBadRequest, KindRejected},
		{http.StatusConflict, KindRejected},
		{http.StatusUnprocessableEntity, KindRejected},
		{http.StatusInternalServerError, KindUnknown},
		{http.StatusBadGateway, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			prob := problemFromStatus(tt.status)
			assert.Equal(t, tt.want, prob.Kind)
			assert.Equal(t, tt.status, prob.Status)
		})
	}
}

func TestProblemFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"session expired", fmt.Errorf("%w: refresh rejected", ErrSessionExpired), KindUnauthorized},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"connection refused", errors.New("dial tcp: connection refused"), KindCannotConnect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, problemFromError(tt.err).Kind)
		})
	}
}

func TestProblemError(t *testing.T) {
	assert.Equal(t, "not-found", (&Problem{Kind: KindNotFound}).Error())
	assert.Equal(t, "bad-data: truncated body", (&Problem{Kind: KindBadData, Detail: "truncated body"}).Error())
}

func TestDecodePage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		page, prob := decodePage[int]([]byte(`{"items":[1,2],"pageNumber":1,"totalPages":3,"totalCount":25}`))
		assert.Nil(t, prob)
		assert.Equal(t, []int{1, 2}, page.Items)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, prob := decodePage[int]([]byte(`{"items":`))
		assert.Equal(t, KindBadData, prob.Kind)
	})

	t.Run("missing metadata", func(t *testing.T) {
		_, prob := decodePage[int]([]byte(`{"items":[1]}`))
		assert.Equal(t, KindBadData, prob.Kind)
	})
}

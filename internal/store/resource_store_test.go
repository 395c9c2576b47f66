package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

var errPlain = errors.New("plain failure")

func TestOffsetFor(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		wantLimit  int
		wantOffset int
	}{
		{name: "first page", page: 1, perPage: 10, wantLimit: 10, wantOffset: 0},
		{name: "third page", page: 3, perPage: 10, wantLimit: 10, wantOffset: 20},
		{name: "custom page size", page: 2, perPage: 25, wantLimit: 25, wantOffset: 25},
		{name: "zero page normalizes", page: 0, perPage: 10, wantLimit: 10, wantOffset: 0},
		{name: "negative page normalizes", page: -5, perPage: 10, wantLimit: 10, wantOffset: 0},
		{name: "zero per_page gets default", page: 2, perPage: 0, wantLimit: DefaultPerPage, wantOffset: DefaultPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := offsetFor(tt.page, tt.perPage)
			if limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", limit, tt.wantLimit)
			}
			if offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", offset, tt.wantOffset)
			}
		})
	}
}

func TestIsMissingConstraint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "no matching unique constraint",
			err:  &pgconn.PgError{Code: "42P10"},
			want: true,
		},
		{
			name: "other postgres error",
			err:  &pgconn.PgError{Code: "23505"},
			want: false,
		},
		{
			name: "plain error",
			err:  errPlain,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMissingConstraint(tt.err); got != tt.want {
				t.Errorf("isMissingConstraint = %v, want %v", got, tt.want)
			}
		})
	}
}
